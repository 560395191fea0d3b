package models

import (
	"time"

	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServerReconciliation statuses: open -> pending -> {validated | disputed},
// validated -> closed.
const (
	ReconciliationOpen      = "open"
	ReconciliationPending   = "pending"
	ReconciliationValidated = "validated"
	ReconciliationDisputed  = "disputed"
	ReconciliationClosed    = "closed"
)

// ServerReconciliation is one seller's settlement session against a manager:
// the value of goods sold from delegated stock versus the cash handed over.
type ServerReconciliation struct {
	gorm.Model
	ID            types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID      types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	ServerID      types.SnowflakeID `json:"server_id" gorm:"index;not null"`
	ManagerID     types.SnowflakeID `json:"manager_id"`
	PointOfSaleID types.SnowflakeID `json:"point_of_sale_id" gorm:"index"`
	Reference     string            `json:"reference" gorm:"index"`

	SessionStart time.Time  `json:"session_start"`
	SessionEnd   *time.Time `json:"session_end"`

	TotalDelegatedValue decimal.Decimal `json:"total_delegated_value" gorm:"type:decimal(12,2);default:0"`
	TotalSales          decimal.Decimal `json:"total_sales" gorm:"type:decimal(12,2);default:0"`
	TotalReturnedValue  decimal.Decimal `json:"total_returned_value" gorm:"type:decimal(12,2);default:0"`
	TotalLossesValue    decimal.Decimal `json:"total_losses_value" gorm:"type:decimal(12,2);default:0"`

	// CashExpected always equals TotalSales; CashDifference = CashCollected - CashExpected.
	CashExpected   decimal.Decimal `json:"cash_expected" gorm:"type:decimal(12,2);default:0"`
	CashCollected  decimal.Decimal `json:"cash_collected" gorm:"type:decimal(12,2);default:0"`
	CashDifference decimal.Decimal `json:"cash_difference" gorm:"type:decimal(12,2);default:0"`

	Status        string            `json:"status" gorm:"default:open;index"`
	ServerNotes   string            `json:"server_notes"`
	ManagerNotes  string            `json:"manager_notes"`
	DisputeReason string            `json:"dispute_reason"`
	ValidatedBy   types.SnowflakeID `json:"validated_by"`
	ValidatedAt   *time.Time        `json:"validated_at"`
}

var reconciliationTransitions = map[string][]string{
	ReconciliationOpen:      {ReconciliationPending},
	ReconciliationPending:   {ReconciliationValidated, ReconciliationDisputed},
	ReconciliationDisputed:  {ReconciliationPending},
	ReconciliationValidated: {ReconciliationClosed},
	ReconciliationClosed:    {},
}

// CanTransition reports whether the session may move to the target status.
func (r *ServerReconciliation) CanTransition(target string) bool {
	for _, next := range reconciliationTransitions[r.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// ApplyCollected records the seller-declared cash and recomputes the difference.
func (r *ServerReconciliation) ApplyCollected(cashCollected decimal.Decimal) {
	r.CashCollected = cashCollected
	r.CashDifference = r.CashCollected.Sub(r.CashExpected)
}

// IsAcceptableDifference reports whether the absolute gap between collected and
// expected cash is within the threshold.
func (r *ServerReconciliation) IsAcceptableDifference(threshold decimal.Decimal) bool {
	return r.CashDifference.Abs().LessThanOrEqual(threshold)
}

// DefaultDifferenceThreshold is the tolerated cash gap when the caller does not
// supply one.
var DefaultDifferenceThreshold = decimal.NewFromInt(1000)
