package models

import (
	"time"

	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountingPeriod statuses.
const (
	PeriodOpen   = "open"
	PeriodClosed = "closed"
)

// JournalEntry statuses.
const (
	JournalDraft  = "draft"
	JournalPosted = "posted"
)

// AccountingPeriod is a monthly SYSCOHADA bookkeeping window. Entries may only
// be posted into an open period; closing is final unless explicitly reopened,
// and a period cannot be reopened once a later one has been closed.
type AccountingPeriod struct {
	gorm.Model
	ID        types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID  types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	Code      string            `json:"code" gorm:"index;not null" validate:"required"` // e.g. "2026-08"
	StartDate time.Time         `json:"start_date"`
	EndDate   time.Time         `json:"end_date"`
	Status    string            `json:"status" gorm:"default:open;index"`
	ClosedBy  types.SnowflakeID `json:"closed_by"`
	ClosedAt  *time.Time        `json:"closed_at"`
}

// Close marks the period closed. Double close is rejected.
func (p *AccountingPeriod) Close(userID types.SnowflakeID, at time.Time) error {
	if p.Status != PeriodOpen {
		return ErrInvalidTransition
	}
	p.Status = PeriodClosed
	p.ClosedBy = userID
	p.ClosedAt = &at
	return nil
}

// Reopen reverts a close. The repository additionally rejects reopening when a
// later period is already closed.
func (p *AccountingPeriod) Reopen() error {
	if p.Status != PeriodClosed {
		return ErrInvalidTransition
	}
	p.Status = PeriodOpen
	p.ClosedBy = 0
	p.ClosedAt = nil
	return nil
}

// JournalEntry is a double-entry record; the sum of line debits must equal the
// sum of line credits before it can be posted.
type JournalEntry struct {
	gorm.Model
	ID          types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID    types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	PeriodID    types.SnowflakeID `json:"period_id" gorm:"index;not null"`
	Reference   string            `json:"reference" gorm:"index"`
	EntryDate   time.Time         `json:"entry_date"`
	Description string            `json:"description"`
	Status      string            `json:"status" gorm:"default:draft;index"`
	PostedBy    types.SnowflakeID `json:"posted_by"`

	Lines []JournalLine `json:"lines" gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE"`
}

type JournalLine struct {
	gorm.Model
	ID             types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID       types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	JournalEntryID types.SnowflakeID `json:"journal_entry_id" gorm:"index;not null"`
	AccountCode    string            `json:"account_code" gorm:"not null"` // SYSCOHADA class, e.g. 571 Caisse
	AccountName    string            `json:"account_name"`
	Debit          decimal.Decimal   `json:"debit" gorm:"type:decimal(12,2);default:0"`
	Credit         decimal.Decimal   `json:"credit" gorm:"type:decimal(12,2);default:0"`
}

// IsBalanced reports whether debits equal credits across all lines.
func (e *JournalEntry) IsBalanced() bool {
	debit := decimal.Zero
	credit := decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit.Equal(credit)
}
