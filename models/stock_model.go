package models

import (
	"time"

	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock movement types.
const (
	StockMoveIn          = "in"
	StockMoveOut         = "out"
	StockMoveTransferIn  = "transfer_in"
	StockMoveTransferOut = "transfer_out"
	StockMoveAdjustment  = "adjustment"
	StockMoveDelegation  = "delegation"
	StockMoveReturn      = "return"
)

// Stock is the per (tenant, product, warehouse) quantity counter.
type Stock struct {
	gorm.Model
	ID           types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID     types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	ProductID    types.SnowflakeID `json:"product_id" gorm:"index;not null"`
	WarehouseID  types.SnowflakeID `json:"warehouse_id" gorm:"index;not null"`
	QtyOnHand    int               `json:"qty_on_hand" gorm:"default:0"`
	QtyReserved  int               `json:"qty_reserved" gorm:"default:0"`
	QtyAvailable int               `json:"qty_available" gorm:"default:0"`
	// CostAverage is the warehouse-level CMP used for stock valuation.
	CostAverage decimal.Decimal `json:"cost_average" gorm:"type:decimal(12,2);default:0"`
}

// Add receives quantity and recomputes the weighted-average cost.
func (s *Stock) Add(qty int, unitCost decimal.Decimal) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if s.QtyOnHand+qty > 0 && unitCost.Sign() > 0 {
		onHand := decimal.NewFromInt(int64(s.QtyOnHand))
		incoming := decimal.NewFromInt(int64(qty))
		total := s.CostAverage.Mul(onHand).Add(unitCost.Mul(incoming))
		s.CostAverage = total.DivRound(onHand.Add(incoming), 2)
	}
	s.QtyOnHand += qty
	s.QtyAvailable += qty
	return nil
}

// Remove takes quantity out of the available pool.
func (s *Stock) Remove(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > s.QtyAvailable {
		return ErrInsufficientQuantity
	}
	s.QtyOnHand -= qty
	s.QtyAvailable -= qty
	return nil
}

// Reserve moves quantity from available to reserved without leaving the warehouse.
func (s *Stock) Reserve(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > s.QtyAvailable {
		return ErrInsufficientQuantity
	}
	s.QtyAvailable -= qty
	s.QtyReserved += qty
	return nil
}

// Release returns reserved quantity to the available pool.
func (s *Stock) Release(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > s.QtyReserved {
		return ErrInsufficientQuantity
	}
	s.QtyReserved -= qty
	s.QtyAvailable += qty
	return nil
}

// StockMovement is the append-only warehouse ledger entry. Rows are never
// updated or deleted; corrections are new adjustment rows.
type StockMovement struct {
	gorm.Model
	ID          types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID    types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	ProductID   types.SnowflakeID `json:"product_id" gorm:"index;not null"`
	WarehouseID types.SnowflakeID `json:"warehouse_id" gorm:"index;not null"`
	Type        string            `json:"type" gorm:"not null"`
	Quantity    int               `json:"quantity" gorm:"not null"` // signed
	QtyBefore   int               `json:"qty_before"`
	QtyAfter    int               `json:"qty_after"`
	UnitCost    decimal.Decimal   `json:"unit_cost" gorm:"type:decimal(12,2);default:0"`
	Reference   string            `json:"reference"`
	Notes       string            `json:"notes"`
	PerformedBy types.SnowflakeID `json:"performed_by"`
	MovedAt     time.Time         `json:"moved_at"`
}
