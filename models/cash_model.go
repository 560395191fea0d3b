package models

import (
	"time"

	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cash register session statuses.
const (
	CashSessionOpen   = "open"
	CashSessionClosed = "closed"
)

// Cash movement directions.
const (
	CashMoveIn  = "in"
	CashMoveOut = "out"
)

// Cash movement categories.
const (
	CashCategorySale       = "sale"
	CashCategoryRemittance = "remittance"
	CashCategoryExpense    = "expense"
	CashCategorySupply     = "supply"
	CashCategoryAdjustment = "adjustment"
	CashCategoryOther      = "other"
)

// Payment methods.
const (
	PaymentCash        = "cash"
	PaymentCard        = "card"
	PaymentMobileMoney = "mobile_money"
	PaymentOther       = "other"
)

// CashRemittance statuses.
const (
	RemittancePending   = "pending"
	RemittanceReceived  = "received"
	RemittanceValidated = "validated"
	RemittanceRejected  = "rejected"
)

// CashRegisterSession is one till session at a point of sale.
type CashRegisterSession struct {
	gorm.Model
	ID            types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID      types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	PointOfSaleID types.SnowflakeID `json:"point_of_sale_id" gorm:"index;not null"`
	OpenedBy      types.SnowflakeID `json:"opened_by"`
	ClosedBy      types.SnowflakeID `json:"closed_by"`

	OpeningBalance decimal.Decimal `json:"opening_balance" gorm:"type:decimal(12,2);default:0"`
	ClosingBalance decimal.Decimal `json:"closing_balance" gorm:"type:decimal(12,2);default:0"`

	CashSales   decimal.Decimal `json:"cash_sales" gorm:"type:decimal(12,2);default:0"`
	CardSales   decimal.Decimal `json:"card_sales" gorm:"type:decimal(12,2);default:0"`
	MobileSales decimal.Decimal `json:"mobile_sales" gorm:"type:decimal(12,2);default:0"`
	OtherSales  decimal.Decimal `json:"other_sales" gorm:"type:decimal(12,2);default:0"`
	CashIn      decimal.Decimal `json:"cash_in" gorm:"type:decimal(12,2);default:0"`
	CashOut     decimal.Decimal `json:"cash_out" gorm:"type:decimal(12,2);default:0"`

	TransactionsCount int `json:"transactions_count" gorm:"default:0"`

	ExpectedBalance decimal.Decimal `json:"expected_balance" gorm:"type:decimal(12,2);default:0"`
	Difference      decimal.Decimal `json:"difference" gorm:"type:decimal(12,2);default:0"`

	Status   string     `json:"status" gorm:"default:open;index"`
	Notes    string     `json:"notes"`
	OpenedAt time.Time  `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`
}

// Apply dispatches one movement onto the session counters. Only physical cash
// enters the drawer, so card/mobile sales are tracked but excluded from the
// expected balance.
func (s *CashRegisterSession) Apply(m *CashMovement) error {
	if s.Status != CashSessionOpen {
		return ErrSessionClosed
	}
	switch m.Type {
	case CashMoveIn:
		if m.Category == CashCategorySale {
			switch m.PaymentMethod {
			case PaymentCash:
				s.CashSales = s.CashSales.Add(m.Amount)
			case PaymentCard:
				s.CardSales = s.CardSales.Add(m.Amount)
			case PaymentMobileMoney:
				s.MobileSales = s.MobileSales.Add(m.Amount)
			default:
				s.OtherSales = s.OtherSales.Add(m.Amount)
			}
		} else {
			s.CashIn = s.CashIn.Add(m.Amount)
		}
	case CashMoveOut:
		s.CashOut = s.CashOut.Add(m.Amount)
	default:
		return ErrInvalidTransition
	}
	s.TransactionsCount++
	return nil
}

// CloseWith counts the drawer against the running totals.
// expected = opening + cash_sales + cash_in - cash_out.
func (s *CashRegisterSession) CloseWith(closingBalance decimal.Decimal, userID types.SnowflakeID, notes string, at time.Time) error {
	if s.Status != CashSessionOpen {
		return ErrInvalidTransition
	}
	s.ExpectedBalance = s.OpeningBalance.Add(s.CashSales).Add(s.CashIn).Sub(s.CashOut)
	s.ClosingBalance = closingBalance
	s.Difference = closingBalance.Sub(s.ExpectedBalance)
	s.Status = CashSessionClosed
	s.ClosedBy = userID
	s.Notes = notes
	s.ClosedAt = &at
	return nil
}

// CashMovement is the append-only till ledger entry.
type CashMovement struct {
	gorm.Model
	ID            types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID      types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	SessionID     types.SnowflakeID `json:"session_id" gorm:"index"`
	Type          string            `json:"type" gorm:"not null"`
	Category      string            `json:"category" gorm:"not null"`
	PaymentMethod string            `json:"payment_method" gorm:"default:cash"`
	Amount        decimal.Decimal   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Reference     string            `json:"reference"`
	Description   string            `json:"description"`
	PerformedBy   types.SnowflakeID `json:"performed_by"`
}

// CashRemittance is a physical cash hand-off from a seller to a manager.
type CashRemittance struct {
	gorm.Model
	ID           types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID     types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	SenderID     types.SnowflakeID `json:"sender_id" gorm:"index;not null"`
	ReceiverID   types.SnowflakeID `json:"receiver_id" gorm:"index;not null"`
	Reference    string            `json:"reference" gorm:"index"`
	Amount       decimal.Decimal   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status       string            `json:"status" gorm:"default:pending;index"`
	Notes        string            `json:"notes"`
	RejectReason string            `json:"reject_reason"`
	SentAt       time.Time         `json:"sent_at"`
	ReceivedAt   *time.Time        `json:"received_at"`
	ValidatedBy  types.SnowflakeID `json:"validated_by"`
	ValidatedAt  *time.Time        `json:"validated_at"`
}

var remittanceTransitions = map[string][]string{
	RemittancePending:   {RemittanceReceived, RemittanceRejected},
	RemittanceReceived:  {RemittanceValidated, RemittanceRejected},
	RemittanceValidated: {},
	RemittanceRejected:  {},
}

// CanTransition reports whether the remittance may move to the target status.
func (r *CashRemittance) CanTransition(target string) bool {
	for _, next := range remittanceTransitions[r.Status] {
		if next == target {
			return true
		}
	}
	return false
}
