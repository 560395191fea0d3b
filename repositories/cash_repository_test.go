package repositories

import (
	"testing"

	"erp-app/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSessionRejectsSecondOpen(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewCashRepository(db)

	_, err := repo.OpenSession(fx.TenantID, fx.POSID, decimal.NewFromInt(10000), fx.ManagerID)
	require.NoError(t, err)

	_, err = repo.OpenSession(fx.TenantID, fx.POSID, decimal.Zero, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrSessionAlreadyOpen)
}

func TestSessionCountersAndClose(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewCashRepository(db)

	session, err := repo.OpenSession(fx.TenantID, fx.POSID, decimal.NewFromInt(10000), fx.ManagerID)
	require.NoError(t, err)

	movements := []RecordMovementInput{
		{SessionID: session.ID, Type: models.CashMoveIn, Category: models.CashCategorySale, PaymentMethod: models.PaymentCash, Amount: decimal.NewFromInt(25000)},
		{SessionID: session.ID, Type: models.CashMoveIn, Category: models.CashCategorySale, PaymentMethod: models.PaymentCard, Amount: decimal.NewFromInt(8000)},
		{SessionID: session.ID, Type: models.CashMoveIn, Category: models.CashCategorySupply, Amount: decimal.NewFromInt(5000)},
		{SessionID: session.ID, Type: models.CashMoveOut, Category: models.CashCategoryExpense, Amount: decimal.NewFromInt(3000)},
	}
	for _, m := range movements {
		_, err := repo.RecordMovement(fx.TenantID, m, fx.ManagerID)
		require.NoError(t, err)
	}

	// expected = 10000 + 25000 + 5000 - 3000; card sales never touch the drawer.
	session, err = repo.CloseSession(fx.TenantID, session.ID, decimal.NewFromInt(36500), fx.ManagerID, "evening count")
	require.NoError(t, err)
	assert.True(t, session.ExpectedBalance.Equal(decimal.NewFromInt(37000)), "expected = %s", session.ExpectedBalance)
	assert.True(t, session.Difference.Equal(decimal.NewFromInt(-500)), "difference = %s", session.Difference)
	assert.Equal(t, models.CashSessionClosed, session.Status)

	// Closed sessions accept no more movements.
	_, err = repo.RecordMovement(fx.TenantID, RecordMovementInput{
		SessionID: session.ID, Type: models.CashMoveIn, Category: models.CashCategorySale, Amount: decimal.NewFromInt(100),
	}, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrSessionClosed)

	_, err = repo.CloseSession(fx.TenantID, session.ID, decimal.Zero, fx.ManagerID, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestRecordMovementRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewCashRepository(db)

	_, err := repo.RecordMovement(fx.TenantID, RecordMovementInput{
		Type: models.CashMoveIn, Category: models.CashCategorySale, Amount: decimal.Zero,
	}, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInvalidQuantity)

	_, err = repo.RecordMovement(fx.TenantID, RecordMovementInput{
		Type: models.CashMoveIn, Category: models.CashCategorySale, Amount: decimal.NewFromInt(-50),
	}, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestRemittanceFlow(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewCashRepository(db)

	senderSession, err := repo.OpenSession(fx.TenantID, fx.POSID, decimal.NewFromInt(50000), fx.ServerID)
	require.NoError(t, err)

	remittance, err := repo.CreateRemittance(fx.TenantID, CreateRemittanceInput{
		ReceiverID: fx.ManagerID,
		SessionID:  senderSession.ID,
		Amount:     decimal.NewFromInt(30000),
	}, fx.ServerID)
	require.NoError(t, err)
	assert.Equal(t, models.RemittancePending, remittance.Status)

	// The cash left the sender's drawer on creation.
	senderSession, err = repo.GetSession(fx.TenantID, senderSession.ID)
	require.NoError(t, err)
	assert.True(t, senderSession.CashOut.Equal(decimal.NewFromInt(30000)))

	remittance, err = repo.ReceiveRemittance(fx.TenantID, remittance.ID, 0, fx.ManagerID)
	require.NoError(t, err)
	assert.Equal(t, models.RemittanceReceived, remittance.Status)

	// Validation before receipt is impossible; after receipt it finishes the flow.
	remittance, err = repo.ValidateRemittance(fx.TenantID, remittance.ID, fx.ManagerID)
	require.NoError(t, err)
	assert.Equal(t, models.RemittanceValidated, remittance.Status)

	_, err = repo.RejectRemittance(fx.TenantID, remittance.ID, fx.ManagerID, "too late")
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestRejectRemittanceRequiresReason(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	repo := NewCashRepository(db)

	remittance, err := repo.CreateRemittance(fx.TenantID, CreateRemittanceInput{
		ReceiverID: fx.ManagerID,
		Amount:     decimal.NewFromInt(1000),
	}, fx.ServerID)
	require.NoError(t, err)

	_, err = repo.RejectRemittance(fx.TenantID, remittance.ID, fx.ManagerID, "")
	require.ErrorIs(t, err, models.ErrReasonRequired)

	remittance, err = repo.RejectRemittance(fx.TenantID, remittance.ID, fx.ManagerID, "amount mismatch")
	require.NoError(t, err)
	assert.Equal(t, models.RemittanceRejected, remittance.Status)
	assert.Equal(t, "amount mismatch", remittance.RejectReason)
}
