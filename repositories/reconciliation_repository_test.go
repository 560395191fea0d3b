package repositories

import (
	"fmt"
	"testing"
	"time"

	"erp-app/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciliationWorkedExample(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	recRepo := NewReconciliationRepository(db)
	stockRepo := NewServerStockRepository(db)

	rec, err := recRepo.Open(fx.TenantID, fx.ServerID, fx.ManagerID, fx.POSID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("REC-%s-0001", time.Now().Format("20060102")), rec.Reference)
	assert.Equal(t, models.ReconciliationOpen, rec.Status)

	// 100 units delegated at 500; 30 sold, 5 lost.
	stock := delegate(t, db, fx, 100, 500)
	_, err = stockRepo.RecordSale(fx.TenantID, stock.ID, 30, decimal.Zero, "OR1", fx.ServerID)
	require.NoError(t, err)
	_, err = stockRepo.DeclareLoss(fx.TenantID, stock.ID, 5, "breakage", fx.ServerID)
	require.NoError(t, err)

	rec, err = recRepo.CalculateTotals(fx.TenantID, rec.ID)
	require.NoError(t, err)
	assert.True(t, rec.TotalDelegatedValue.Equal(decimal.NewFromInt(50000)), "delegated = %s", rec.TotalDelegatedValue)
	assert.True(t, rec.TotalSales.Equal(decimal.NewFromInt(15000)), "sales = %s", rec.TotalSales)
	assert.True(t, rec.TotalLossesValue.Equal(decimal.NewFromInt(2500)), "losses = %s", rec.TotalLossesValue)
	assert.True(t, rec.CashExpected.Equal(rec.TotalSales))

	// Seller hands over 14500: 500 short, inside the default threshold.
	rec, err = recRepo.SubmitForValidation(fx.TenantID, rec.ID, decimal.NewFromInt(14500), "evening shift")
	require.NoError(t, err)
	assert.Equal(t, models.ReconciliationPending, rec.Status)
	assert.True(t, rec.CashDifference.Equal(decimal.NewFromInt(-500)), "difference = %s", rec.CashDifference)
	assert.True(t, rec.IsAcceptableDifference(models.DefaultDifferenceThreshold))

	// Submission freezes the seller's delegations.
	frozen, err := stockRepo.GetByID(fx.TenantID, stock.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServerStockReconciling, frozen.Status)
	_, err = stockRepo.RecordSale(fx.TenantID, stock.ID, 1, decimal.Zero, "OR2", fx.ServerID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	rec, err = recRepo.Validate(fx.TenantID, rec.ID, fx.ManagerID, "ok")
	require.NoError(t, err)
	assert.Equal(t, models.ReconciliationValidated, rec.Status)
	assert.Equal(t, fx.ManagerID, rec.ValidatedBy)

	closed, err := stockRepo.GetByID(fx.TenantID, stock.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServerStockClosed, closed.Status)
	assert.True(t, closed.AmountCollected.Equal(closed.TotalSalesAmount))

	rec, err = recRepo.CloseReconciliation(fx.TenantID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReconciliationClosed, rec.Status)
}

func TestDisputeAndResubmit(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	recRepo := NewReconciliationRepository(db)
	stockRepo := NewServerStockRepository(db)

	rec, err := recRepo.Open(fx.TenantID, fx.ServerID, fx.ManagerID, fx.POSID)
	require.NoError(t, err)

	stock := delegate(t, db, fx, 50, 500)
	_, err = stockRepo.RecordSale(fx.TenantID, stock.ID, 50, decimal.Zero, "OR1", fx.ServerID)
	require.NoError(t, err)

	// 25000 expected, 20000 declared: the manager disputes.
	rec, err = recRepo.SubmitForValidation(fx.TenantID, rec.ID, decimal.NewFromInt(20000), "")
	require.NoError(t, err)
	assert.False(t, rec.IsAcceptableDifference(models.DefaultDifferenceThreshold))

	_, err = recRepo.Dispute(fx.TenantID, rec.ID, fx.ManagerID, "")
	require.ErrorIs(t, err, models.ErrReasonRequired)

	rec, err = recRepo.Dispute(fx.TenantID, rec.ID, fx.ManagerID, "cash count mismatch")
	require.NoError(t, err)
	assert.Equal(t, models.ReconciliationDisputed, rec.Status)

	// Disputed sessions keep the delegations frozen.
	frozen, err := stockRepo.GetByID(fx.TenantID, stock.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServerStockReconciling, frozen.Status)

	// A recount finds the missing bills.
	rec, err = recRepo.Resubmit(fx.TenantID, rec.ID, decimal.NewFromInt(25000), "recounted with manager")
	require.NoError(t, err)
	assert.Equal(t, models.ReconciliationPending, rec.Status)
	assert.True(t, rec.CashDifference.IsZero(), "difference = %s", rec.CashDifference)

	rec, err = recRepo.Validate(fx.TenantID, rec.ID, fx.ManagerID, "resolved")
	require.NoError(t, err)
	assert.Equal(t, models.ReconciliationValidated, rec.Status)
}

func TestReconciliationInvalidTransitions(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	recRepo := NewReconciliationRepository(db)

	rec, err := recRepo.Open(fx.TenantID, fx.ServerID, fx.ManagerID, fx.POSID)
	require.NoError(t, err)

	// Open sessions cannot be validated, disputed or closed.
	_, err = recRepo.Validate(fx.TenantID, rec.ID, fx.ManagerID, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)
	_, err = recRepo.Dispute(fx.TenantID, rec.ID, fx.ManagerID, "reason")
	require.ErrorIs(t, err, models.ErrInvalidTransition)
	_, err = recRepo.CloseReconciliation(fx.TenantID, rec.ID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = recRepo.Resubmit(fx.TenantID, rec.ID, decimal.Zero, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	rec, err = recRepo.SubmitForValidation(fx.TenantID, rec.ID, decimal.Zero, "")
	require.NoError(t, err)

	// Double submit is rejected.
	_, err = recRepo.SubmitForValidation(fx.TenantID, rec.ID, decimal.Zero, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}
