package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newDelegation(qty int, price int64) ServerStock {
	return ServerStock{
		QuantityDelegated: qty,
		QuantityRemaining: qty,
		UnitPrice:         decimal.NewFromInt(price),
		Status:            ServerStockActive,
	}
}

func conserved(s *ServerStock) bool {
	return s.QuantityDelegated == s.QuantitySold+s.QuantityRemaining+s.QuantityReturned+s.QuantityLost
}

func TestServerStockRecordSale(t *testing.T) {
	tests := []struct {
		name      string
		stock     ServerStock
		qty       int
		wantErr   error
		wantSold  int
		wantTotal int64
	}{
		{"simple sale", newDelegation(100, 500), 30, nil, 30, 15000},
		{"entire remaining", newDelegation(10, 500), 10, nil, 10, 5000},
		{"oversell", newDelegation(10, 500), 11, ErrInsufficientQuantity, 0, 0},
		{"zero quantity", newDelegation(10, 500), 0, ErrInvalidQuantity, 0, 0},
		{"negative quantity", newDelegation(10, 500), -3, ErrInvalidQuantity, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stock.RecordSale(tt.qty, tt.stock.UnitPrice)
			if err != tt.wantErr {
				t.Fatalf("RecordSale(%d) error = %v, want %v", tt.qty, err, tt.wantErr)
			}
			if tt.stock.QuantitySold != tt.wantSold {
				t.Errorf("QuantitySold = %d, want %d", tt.stock.QuantitySold, tt.wantSold)
			}
			if !tt.stock.TotalSalesAmount.Equal(decimal.NewFromInt(tt.wantTotal)) {
				t.Errorf("TotalSalesAmount = %s, want %d", tt.stock.TotalSalesAmount, tt.wantTotal)
			}
			if !conserved(&tt.stock) {
				t.Errorf("counters not conserved: %+v", tt.stock)
			}
		})
	}
}

func TestServerStockMutationsAreNoOpsOnFailure(t *testing.T) {
	stock := newDelegation(20, 500)
	before := stock

	if err := stock.RecordSale(25, stock.UnitPrice); err != ErrInsufficientQuantity {
		t.Fatalf("expected ErrInsufficientQuantity, got %v", err)
	}
	if stock != before {
		t.Errorf("failed sale mutated the row: %+v", stock)
	}
}

func TestServerStockDeclareLoss(t *testing.T) {
	stock := newDelegation(50, 500)

	if err := stock.DeclareLoss(5, ""); err != ErrReasonRequired {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
	if err := stock.DeclareLoss(5, "breakage"); err != nil {
		t.Fatalf("DeclareLoss: %v", err)
	}
	if stock.QuantityLost != 5 || stock.QuantityRemaining != 45 {
		t.Errorf("lost=%d remaining=%d, want 5/45", stock.QuantityLost, stock.QuantityRemaining)
	}
	if !conserved(&stock) {
		t.Errorf("counters not conserved: %+v", stock)
	}
}

func TestServerStockLifecycle(t *testing.T) {
	stock := newDelegation(10, 500)
	now := time.Now()

	if err := stock.MarkReconciling(now); err != nil {
		t.Fatalf("MarkReconciling: %v", err)
	}
	// Reconciling delegations are frozen.
	if err := stock.RecordSale(1, stock.UnitPrice); err != ErrInvalidTransition {
		t.Errorf("sale on reconciling stock: got %v, want ErrInvalidTransition", err)
	}
	if err := stock.ReturnStock(1); err != ErrInvalidTransition {
		t.Errorf("return on reconciling stock: got %v, want ErrInvalidTransition", err)
	}
	if err := stock.MarkReconciling(now); err != ErrInvalidTransition {
		t.Errorf("double MarkReconciling: got %v, want ErrInvalidTransition", err)
	}

	if err := stock.Close(now); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := stock.Close(now); err != ErrInvalidTransition {
		t.Errorf("double Close: got %v, want ErrInvalidTransition", err)
	}
}

func TestServerStockConservationUnderMixedMutations(t *testing.T) {
	stock := newDelegation(100, 500)
	price := stock.UnitPrice

	steps := []func() error{
		func() error { return stock.RecordSale(30, price) },
		func() error { return stock.ReturnStock(10) },
		func() error { return stock.DeclareLoss(5, "spillage") },
		func() error { return stock.RecordSale(40, price) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if !conserved(&stock) {
			t.Fatalf("step %d broke conservation: %+v", i, stock)
		}
	}

	if stock.QuantityRemaining != 15 {
		t.Errorf("remaining = %d, want 15", stock.QuantityRemaining)
	}
	if !stock.TotalSalesAmount.Equal(decimal.NewFromInt(35000)) {
		t.Errorf("TotalSalesAmount = %s, want 35000", stock.TotalSalesAmount)
	}
}
