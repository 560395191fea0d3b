package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStockAddRecomputesWeightedAverage(t *testing.T) {
	stock := Stock{}

	if err := stock.Add(10, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !stock.CostAverage.Equal(decimal.NewFromInt(100)) {
		t.Errorf("CostAverage = %s, want 100", stock.CostAverage)
	}

	// 10 @ 100 + 20 @ 130 -> 30 @ 120
	if err := stock.Add(20, decimal.NewFromInt(130)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !stock.CostAverage.Equal(decimal.NewFromInt(120)) {
		t.Errorf("CostAverage = %s, want 120", stock.CostAverage)
	}
	if stock.QtyOnHand != 30 || stock.QtyAvailable != 30 {
		t.Errorf("on hand/available = %d/%d, want 30/30", stock.QtyOnHand, stock.QtyAvailable)
	}
}

func TestStockAddKeepsAverageOnZeroCost(t *testing.T) {
	stock := Stock{QtyOnHand: 10, QtyAvailable: 10, CostAverage: decimal.NewFromInt(100)}

	if err := stock.Add(5, decimal.Zero); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !stock.CostAverage.Equal(decimal.NewFromInt(100)) {
		t.Errorf("CostAverage = %s, want 100", stock.CostAverage)
	}
}

func TestStockRemove(t *testing.T) {
	stock := Stock{QtyOnHand: 10, QtyAvailable: 10}

	if err := stock.Remove(11); err != ErrInsufficientQuantity {
		t.Errorf("over-remove: got %v, want ErrInsufficientQuantity", err)
	}
	if err := stock.Remove(0); err != ErrInvalidQuantity {
		t.Errorf("zero remove: got %v, want ErrInvalidQuantity", err)
	}
	if err := stock.Remove(4); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if stock.QtyOnHand != 6 || stock.QtyAvailable != 6 {
		t.Errorf("on hand/available = %d/%d, want 6/6", stock.QtyOnHand, stock.QtyAvailable)
	}
}

func TestStockReserveAndRelease(t *testing.T) {
	stock := Stock{QtyOnHand: 10, QtyAvailable: 10}

	if err := stock.Reserve(6); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if stock.QtyAvailable != 4 || stock.QtyReserved != 6 {
		t.Errorf("available/reserved = %d/%d, want 4/6", stock.QtyAvailable, stock.QtyReserved)
	}
	if err := stock.Reserve(5); err != ErrInsufficientQuantity {
		t.Errorf("over-reserve: got %v, want ErrInsufficientQuantity", err)
	}

	if err := stock.Release(7); err != ErrInsufficientQuantity {
		t.Errorf("over-release: got %v, want ErrInsufficientQuantity", err)
	}
	if err := stock.Release(6); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if stock.QtyAvailable != 10 || stock.QtyReserved != 0 {
		t.Errorf("available/reserved = %d/%d, want 10/0", stock.QtyAvailable, stock.QtyReserved)
	}
}
