package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"erp-app/models"
	"erp-app/types"

	"gorm.io/gorm"
)

type AccountingRepository struct {
	db *gorm.DB
}

func NewAccountingRepository(db *gorm.DB) *AccountingRepository {
	return &AccountingRepository{db: db}
}

type CreatePeriodInput struct {
	Code      string    `json:"code" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

func (r *AccountingRepository) CreatePeriod(tenantID types.SnowflakeID, input CreatePeriodInput) (*models.AccountingPeriod, error) {
	period := models.AccountingPeriod{
		TenantID:  tenantID,
		Code:      input.Code,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    models.PeriodOpen,
	}
	if err := r.db.Create(&period).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

// ClosePeriod finalizes the period. Double close is an invalid transition.
func (r *AccountingRepository) ClosePeriod(tenantID, id, userID types.SnowflakeID) (*models.AccountingPeriod, error) {
	var period models.AccountingPeriod

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&period).Error; err != nil {
			return err
		}
		if err := period.Close(userID, time.Now()); err != nil {
			return err
		}
		return tx.Save(&period).Error
	})
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// ReopenPeriod reverts a close, unless a later period has already been closed:
// books must be reopened back-to-front.
func (r *AccountingRepository) ReopenPeriod(tenantID, id types.SnowflakeID) (*models.AccountingPeriod, error) {
	var period models.AccountingPeriod

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&period).Error; err != nil {
			return err
		}

		var laterClosed int64
		if err := tx.Model(&models.AccountingPeriod{}).
			Where("tenant_id = ? AND status = ? AND start_date > ?",
				tenantID, models.PeriodClosed, period.StartDate).
			Count(&laterClosed).Error; err != nil {
			return err
		}
		if laterClosed > 0 {
			return fmt.Errorf("%w: a later period is already closed", models.ErrInvalidTransition)
		}

		if err := period.Reopen(); err != nil {
			return err
		}
		return tx.Save(&period).Error
	})
	if err != nil {
		return nil, err
	}
	return &period, nil
}

type PostJournalEntryInput struct {
	PeriodID    types.SnowflakeID    `json:"period_id" validate:"required"`
	EntryDate   time.Time            `json:"entry_date"`
	Description string               `json:"description"`
	Lines       []models.JournalLine `json:"lines" validate:"required,min=2"`
}

// GenerateJournalNumber builds JE{YYMMDD}{NNNN}, restarting the sequence each day.
func (r *AccountingRepository) GenerateJournalNumber(tx *gorm.DB) (string, error) {
	var lastEntry models.JournalEntry
	if err := tx.Last(&lastEntry).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	currentDate := time.Now().Format("060102")

	var entryNo string
	if lastEntry.Reference != "" && len(lastEntry.Reference) >= 12 {
		lastDatePart := lastEntry.Reference[2:8]
		lastSequenceStr := lastEntry.Reference[len(lastEntry.Reference)-4:]

		if currentDate != lastDatePart {
			entryNo = fmt.Sprintf("JE%s%04d", currentDate, 1)
		} else {
			lastSequenceInt, _ := strconv.Atoi(lastSequenceStr)
			entryNo = fmt.Sprintf("JE%s%04d", currentDate, lastSequenceInt+1)
		}
	} else {
		entryNo = fmt.Sprintf("JE%s%04d", currentDate, 1)
	}

	return entryNo, nil
}

// PostEntry writes a balanced double entry into an open period.
func (r *AccountingRepository) PostEntry(tenantID types.SnowflakeID, input PostJournalEntryInput, userID types.SnowflakeID) (*models.JournalEntry, error) {
	var entry models.JournalEntry

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var period models.AccountingPeriod
		if err := tx.Where("id = ? AND tenant_id = ?", input.PeriodID, tenantID).
			Take(&period).Error; err != nil {
			return err
		}
		if period.Status != models.PeriodOpen {
			return models.ErrPeriodClosed
		}

		reference, err := r.GenerateJournalNumber(tx)
		if err != nil {
			return err
		}

		entryDate := input.EntryDate
		if entryDate.IsZero() {
			entryDate = time.Now()
		}

		entry = models.JournalEntry{
			TenantID:    tenantID,
			PeriodID:    input.PeriodID,
			Reference:   reference,
			EntryDate:   entryDate,
			Description: input.Description,
			Status:      models.JournalPosted,
			PostedBy:    userID,
		}
		for _, line := range input.Lines {
			line.TenantID = tenantID
			entry.Lines = append(entry.Lines, line)
		}
		if !entry.IsBalanced() {
			return models.ErrUnbalancedEntry
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *AccountingRepository) GetPeriod(tenantID, id types.SnowflakeID) (*models.AccountingPeriod, error) {
	var period models.AccountingPeriod
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Take(&period).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *AccountingRepository) ListPeriods(tenantID types.SnowflakeID) ([]models.AccountingPeriod, error) {
	var periods []models.AccountingPeriod
	if err := r.db.Where("tenant_id = ?", tenantID).Order("start_date").Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *AccountingRepository) ListEntries(tenantID, periodID types.SnowflakeID) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	q := r.db.Preload("Lines").Where("tenant_id = ?", tenantID)
	if periodID != 0 {
		q = q.Where("period_id = ?", periodID)
	}
	if err := q.Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
