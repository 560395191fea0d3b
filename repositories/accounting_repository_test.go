package repositories

import (
	"strings"
	"testing"
	"time"

	"erp-app/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostBalancedEntry(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewAccountingRepository(db)

	period, err := repo.CreatePeriod(fx.TenantID, CreatePeriodInput{
		Code:      "2026-08",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PeriodOpen, period.Status)

	entry, err := repo.PostEntry(fx.TenantID, PostJournalEntryInput{
		PeriodID:    period.ID,
		Description: "cash sales of the day",
		Lines: []models.JournalLine{
			{AccountCode: "571", AccountName: "Caisse", Debit: decimal.NewFromInt(50000)},
			{AccountCode: "701", AccountName: "Ventes de marchandises", Credit: decimal.NewFromInt(50000)},
		},
	}, fx.ManagerID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(entry.Reference, "JE"))
	assert.Equal(t, models.JournalPosted, entry.Status)
	assert.Len(t, entry.Lines, 2)
	assert.Equal(t, fx.TenantID, entry.Lines[0].TenantID)
}

func TestPostEntryRejectsUnbalanced(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewAccountingRepository(db)

	period, err := repo.CreatePeriod(fx.TenantID, CreatePeriodInput{
		Code:      "2026-08",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = repo.PostEntry(fx.TenantID, PostJournalEntryInput{
		PeriodID: period.ID,
		Lines: []models.JournalLine{
			{AccountCode: "571", Debit: decimal.NewFromInt(50000)},
			{AccountCode: "701", Credit: decimal.NewFromInt(45000)},
		},
	}, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrUnbalancedEntry)

	entries, err := repo.ListEntries(fx.TenantID, period.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClosedPeriodRejectsEntries(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewAccountingRepository(db)

	period, err := repo.CreatePeriod(fx.TenantID, CreatePeriodInput{
		Code:      "2026-07",
		StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	period, err = repo.ClosePeriod(fx.TenantID, period.ID, fx.ManagerID)
	require.NoError(t, err)
	assert.Equal(t, models.PeriodClosed, period.Status)
	assert.Equal(t, fx.ManagerID, period.ClosedBy)

	_, err = repo.PostEntry(fx.TenantID, PostJournalEntryInput{
		PeriodID: period.ID,
		Lines: []models.JournalLine{
			{AccountCode: "571", Debit: decimal.NewFromInt(100)},
			{AccountCode: "701", Credit: decimal.NewFromInt(100)},
		},
	}, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrPeriodClosed)

	// Already closed.
	_, err = repo.ClosePeriod(fx.TenantID, period.ID, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestReopenPeriodBackToFront(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewAccountingRepository(db)

	july, err := repo.CreatePeriod(fx.TenantID, CreatePeriodInput{
		Code:      "2026-07",
		StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)
	august, err := repo.CreatePeriod(fx.TenantID, CreatePeriodInput{
		Code:      "2026-08",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = repo.ClosePeriod(fx.TenantID, july.ID, fx.ManagerID)
	require.NoError(t, err)
	_, err = repo.ClosePeriod(fx.TenantID, august.ID, fx.ManagerID)
	require.NoError(t, err)

	// July stays shut while August is closed.
	_, err = repo.ReopenPeriod(fx.TenantID, july.ID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	august, err = repo.ReopenPeriod(fx.TenantID, august.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PeriodOpen, august.Status)
	assert.Nil(t, august.ClosedAt)

	july, err = repo.ReopenPeriod(fx.TenantID, july.ID)
	require.NoError(t, err)

	// Reopened periods accept entries again.
	_, err = repo.PostEntry(fx.TenantID, PostJournalEntryInput{
		PeriodID: july.ID,
		Lines: []models.JournalLine{
			{AccountCode: "521", AccountName: "Banque", Debit: decimal.NewFromInt(25000)},
			{AccountCode: "571", AccountName: "Caisse", Credit: decimal.NewFromInt(25000)},
		},
	}, fx.ManagerID)
	require.NoError(t, err)
}
