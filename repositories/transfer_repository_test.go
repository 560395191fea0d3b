package repositories

import (
	"fmt"
	"testing"
	"time"

	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func secondWarehouse(t *testing.T, db *gorm.DB, tenantID types.SnowflakeID) types.SnowflakeID {
	t.Helper()
	warehouse := models.Warehouse{TenantID: tenantID, Code: "ANNEX", Name: "Annex"}
	require.NoError(t, db.Create(&warehouse).Error)
	return warehouse.ID
}

func TestRequestApprovalGate(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	dest := secondWarehouse(t, db, fx.TenantID)
	repo := NewTransferRepository(db)

	request, err := repo.CreateRequest(fx.TenantID, CreateStockRequestInput{
		ProductID:       fx.ProductID,
		FromWarehouseID: fx.WarehouseID,
		ToWarehouseID:   dest,
		Quantity:        50,
		Reason:          "restock annex",
	}, fx.ServerID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestDraft, request.Status)

	// Drafts cannot be approved or turned into transfers.
	_, err = repo.ApproveRequest(fx.TenantID, request.ID, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
	_, err = repo.CreateTransferFromRequest(fx.TenantID, request.ID, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	request, err = repo.SubmitRequest(fx.TenantID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRequested, request.Status)

	request, err = repo.ApproveRequest(fx.TenantID, request.ID, fx.ManagerID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, request.Status)
	assert.Equal(t, fx.ManagerID, request.ApprovedBy)

	transfer, err := repo.CreateTransferFromRequest(fx.TenantID, request.ID, fx.ManagerID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferPending, transfer.Status)
	assert.Equal(t, fmt.Sprintf("TR%s0001", time.Now().Format("060102")), transfer.Reference)

	request, err = repo.GetRequest(fx.TenantID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestTransferred, request.Status)
	assert.Equal(t, transfer.ID, request.TransferID)
}

func TestRejectRequestNeedsReason(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	dest := secondWarehouse(t, db, fx.TenantID)
	repo := NewTransferRepository(db)

	request, err := repo.CreateRequest(fx.TenantID, CreateStockRequestInput{
		ProductID: fx.ProductID, FromWarehouseID: fx.WarehouseID, ToWarehouseID: dest, Quantity: 5,
	}, fx.ServerID)
	require.NoError(t, err)
	_, err = repo.SubmitRequest(fx.TenantID, request.ID)
	require.NoError(t, err)

	_, err = repo.RejectRequest(fx.TenantID, request.ID, fx.ManagerID, "")
	require.ErrorIs(t, err, models.ErrReasonRequired)

	request, err = repo.RejectRequest(fx.TenantID, request.ID, fx.ManagerID, "not needed")
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, request.Status)
}

func TestCompleteTransferMovesStockAtSourceCost(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	dest := secondWarehouse(t, db, fx.TenantID)
	repo := NewTransferRepository(db)

	input := CreateTransferInput{FromWarehouseID: fx.WarehouseID, ToWarehouseID: dest}
	input.Items = append(input.Items, TransferItemInput{ProductID: fx.ProductID, Quantity: 200})

	transfer, err := repo.CreateTransfer(fx.TenantID, input, fx.ManagerID)
	require.NoError(t, err)

	transfer, err = repo.CompleteTransfer(fx.TenantID, transfer.ID, fx.ManagerID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferCompleted, transfer.Status)

	var source, destination models.Stock
	require.NoError(t, db.Where("warehouse_id = ? AND product_id = ?", fx.WarehouseID, fx.ProductID).Take(&source).Error)
	require.NoError(t, db.Where("warehouse_id = ? AND product_id = ?", dest, fx.ProductID).Take(&destination).Error)
	assert.Equal(t, 800, source.QtyOnHand)
	assert.Equal(t, 200, destination.QtyOnHand)
	// Destination inherits the source weighted-average cost.
	assert.True(t, destination.CostAverage.Equal(decimal.NewFromInt(350)), "cost = %s", destination.CostAverage)

	// A completed transfer cannot run twice.
	_, err = repo.CompleteTransfer(fx.TenantID, transfer.ID, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestCompleteTransferFailsClean(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	dest := secondWarehouse(t, db, fx.TenantID)
	repo := NewTransferRepository(db)

	input := CreateTransferInput{FromWarehouseID: fx.WarehouseID, ToWarehouseID: dest}
	input.Items = append(input.Items, TransferItemInput{ProductID: fx.ProductID, Quantity: 1500})

	transfer, err := repo.CreateTransfer(fx.TenantID, input, fx.ManagerID)
	require.NoError(t, err)

	_, err = repo.CompleteTransfer(fx.TenantID, transfer.ID, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInsufficientQuantity)

	// Nothing moved and the transfer is still pending.
	var source models.Stock
	require.NoError(t, db.Where("warehouse_id = ? AND product_id = ?", fx.WarehouseID, fx.ProductID).Take(&source).Error)
	assert.Equal(t, 1000, source.QtyOnHand)

	transfer, err = repo.GetTransfer(fx.TenantID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferPending, transfer.Status)
}
