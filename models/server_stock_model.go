package models

import (
	"time"

	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServerStock statuses.
const (
	ServerStockActive      = "active"
	ServerStockReconciling = "reconciling"
	ServerStockClosed      = "closed"
	ServerStockCancelled   = "cancelled"
)

// ServerStockMovement types.
const (
	ServerMoveDelegation = "delegation"
	ServerMoveSale       = "sale"
	ServerMoveReturn     = "return"
	ServerMoveLoss       = "loss"
	ServerMoveAdjustment = "adjustment"
)

// ServerStock is one delegation of a product quantity to a mobile seller at a
// point of sale. The four counters always satisfy:
//
//	QuantityDelegated == QuantitySold + QuantityRemaining + QuantityReturned + QuantityLost
type ServerStock struct {
	gorm.Model
	ID            types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID      types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	ServerID      types.SnowflakeID `json:"server_id" gorm:"index;not null"`
	ProductID     types.SnowflakeID `json:"product_id" gorm:"index;not null"`
	PointOfSaleID types.SnowflakeID `json:"point_of_sale_id" gorm:"index"`
	DelegatedBy   types.SnowflakeID `json:"delegated_by"`
	Reference     string            `json:"reference" gorm:"index"`

	QuantityDelegated int `json:"quantity_delegated" gorm:"not null"`
	QuantitySold      int `json:"quantity_sold" gorm:"default:0"`
	QuantityRemaining int `json:"quantity_remaining" gorm:"default:0"`
	QuantityReturned  int `json:"quantity_returned" gorm:"default:0"`
	QuantityLost      int `json:"quantity_lost" gorm:"default:0"`

	UnitPrice        decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	UnitCost         decimal.Decimal `json:"unit_cost" gorm:"type:decimal(12,2);default:0"`
	TotalSalesAmount decimal.Decimal `json:"total_sales_amount" gorm:"type:decimal(12,2);default:0"`
	AmountCollected  decimal.Decimal `json:"amount_collected" gorm:"type:decimal(12,2);default:0"`

	Status       string     `json:"status" gorm:"default:active;index"`
	DelegatedAt  time.Time  `json:"delegated_at"`
	ReconciledAt *time.Time `json:"reconciled_at"`
	ClosedAt     *time.Time `json:"closed_at"`
}

// RecordSale moves qty from remaining to sold and accumulates the sale amount.
// No field is touched when the guard fails.
func (s *ServerStock) RecordSale(qty int, unitPrice decimal.Decimal) error {
	if err := s.guardMutation(qty); err != nil {
		return err
	}
	s.QuantityRemaining -= qty
	s.QuantitySold += qty
	s.TotalSalesAmount = s.TotalSalesAmount.Add(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
	return nil
}

// ReturnStock moves qty from remaining to returned.
func (s *ServerStock) ReturnStock(qty int) error {
	if err := s.guardMutation(qty); err != nil {
		return err
	}
	s.QuantityRemaining -= qty
	s.QuantityReturned += qty
	return nil
}

// DeclareLoss moves qty from remaining to lost. A reason is mandatory.
func (s *ServerStock) DeclareLoss(qty int, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if err := s.guardMutation(qty); err != nil {
		return err
	}
	s.QuantityRemaining -= qty
	s.QuantityLost += qty
	return nil
}

// MarkReconciling flips an active delegation into a reconciliation window.
func (s *ServerStock) MarkReconciling(at time.Time) error {
	if s.Status != ServerStockActive {
		return ErrInvalidTransition
	}
	s.Status = ServerStockReconciling
	s.ReconciledAt = &at
	return nil
}

// Close ends the delegation. Closed rows accept no further mutation.
func (s *ServerStock) Close(at time.Time) error {
	if s.Status == ServerStockClosed || s.Status == ServerStockCancelled {
		return ErrInvalidTransition
	}
	s.Status = ServerStockClosed
	s.ClosedAt = &at
	return nil
}

func (s *ServerStock) guardMutation(qty int) error {
	if s.Status != ServerStockActive {
		return ErrInvalidTransition
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > s.QuantityRemaining {
		return ErrInsufficientQuantity
	}
	return nil
}

// ServerStockMovement is the append-only audit entry for one delegation, sale,
// return, loss or adjustment event. Never updated or deleted.
type ServerStockMovement struct {
	gorm.Model
	ID             types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID       types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	ServerStockID  types.SnowflakeID `json:"server_stock_id" gorm:"index;not null"`
	Type           string            `json:"type" gorm:"not null"`
	Quantity       int               `json:"quantity" gorm:"not null"` // signed: delegation +, sale/return/loss -
	QuantityBefore int               `json:"quantity_before"`
	QuantityAfter  int               `json:"quantity_after"`
	UnitPrice      decimal.Decimal   `json:"unit_price" gorm:"type:decimal(12,2);default:0"`
	TotalAmount    decimal.Decimal   `json:"total_amount" gorm:"type:decimal(12,2);default:0"`
	Reference      string            `json:"reference"`
	Notes          string            `json:"notes"`
	PerformedBy    types.SnowflakeID `json:"performed_by"`
}
