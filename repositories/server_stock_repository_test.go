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

func TestDelegateMovesWarehouseStock(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	stock := delegate(t, db, fx, 100, 500)

	assert.Equal(t, 100, stock.QuantityDelegated)
	assert.Equal(t, 100, stock.QuantityRemaining)
	assert.Equal(t, models.ServerStockActive, stock.Status)
	assert.Equal(t, fmt.Sprintf("SS-%s-0001", time.Now().Format("20060102")), stock.Reference)

	var warehouseStock models.Stock
	require.NoError(t, db.Where("tenant_id = ? AND product_id = ? AND warehouse_id = ?",
		fx.TenantID, fx.ProductID, fx.WarehouseID).Take(&warehouseStock).Error)
	assert.Equal(t, 900, warehouseStock.QtyOnHand)

	movements, err := NewServerStockRepository(db).GetMovements(fx.TenantID, stock.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, models.ServerMoveDelegation, movements[0].Type)
	assert.Equal(t, 100, movements[0].Quantity)
}

func TestDelegateRejectsInsufficientWarehouseStock(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	repo := NewServerStockRepository(db)
	_, err := repo.Delegate(fx.TenantID, DelegateStockInput{
		ServerID:    fx.ServerID,
		ProductID:   fx.ProductID,
		WarehouseID: fx.WarehouseID,
		Quantity:    1001,
		UnitPrice:   decimal.NewFromInt(500),
	}, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInsufficientQuantity)

	// The failed delegation must leave no trace.
	var count int64
	db.Model(&models.ServerStock{}).Where("tenant_id = ?", fx.TenantID).Count(&count)
	assert.Zero(t, count)

	var warehouseStock models.Stock
	require.NoError(t, db.Where("tenant_id = ? AND product_id = ?", fx.TenantID, fx.ProductID).Take(&warehouseStock).Error)
	assert.Equal(t, 1000, warehouseStock.QtyOnHand)
}

func TestDelegationReferencesAreSequentialPerDay(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	day := time.Now().Format("20060102")
	for i := 1; i <= 3; i++ {
		stock := delegate(t, db, fx, 10, 500)
		assert.Equal(t, fmt.Sprintf("SS-%s-%04d", day, i), stock.Reference)
	}
}

func TestSaleReturnLossLifecycle(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	stock := delegate(t, db, fx, 100, 500)
	repo := NewServerStockRepository(db)

	stock, err := repo.RecordSale(fx.TenantID, stock.ID, 30, decimal.Zero, "OR1", fx.ServerID)
	require.NoError(t, err)
	assert.Equal(t, 30, stock.QuantitySold)
	assert.True(t, stock.TotalSalesAmount.Equal(decimal.NewFromInt(15000)), "TotalSalesAmount = %s", stock.TotalSalesAmount)

	stock, err = repo.ReturnStock(fx.TenantID, stock.ID, 10, fx.WarehouseID, "end of shift", fx.ServerID)
	require.NoError(t, err)
	assert.Equal(t, 10, stock.QuantityReturned)

	var warehouseStock models.Stock
	require.NoError(t, db.Where("tenant_id = ? AND product_id = ?", fx.TenantID, fx.ProductID).Take(&warehouseStock).Error)
	assert.Equal(t, 910, warehouseStock.QtyOnHand)

	stock, err = repo.DeclareLoss(fx.TenantID, stock.ID, 5, "breakage", fx.ServerID)
	require.NoError(t, err)
	assert.Equal(t, 5, stock.QuantityLost)
	assert.Equal(t, 55, stock.QuantityRemaining)

	// delegated == sold + remaining + returned + lost
	assert.Equal(t, stock.QuantityDelegated,
		stock.QuantitySold+stock.QuantityRemaining+stock.QuantityReturned+stock.QuantityLost)
}

func TestDeclareLossRequiresReason(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	stock := delegate(t, db, fx, 10, 500)

	_, err := NewServerStockRepository(db).DeclareLoss(fx.TenantID, stock.ID, 2, "", fx.ServerID)
	require.ErrorIs(t, err, models.ErrReasonRequired)
}

func TestOversellIsRejectedAndRolledBack(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	stock := delegate(t, db, fx, 10, 500)
	repo := NewServerStockRepository(db)

	_, err := repo.RecordSale(fx.TenantID, stock.ID, 11, decimal.Zero, "OR1", fx.ServerID)
	require.ErrorIs(t, err, models.ErrInsufficientQuantity)

	reloaded, err := repo.GetByID(fx.TenantID, stock.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.QuantityRemaining)
	assert.Zero(t, reloaded.QuantitySold)

	movements, err := repo.GetMovements(fx.TenantID, stock.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 1) // only the delegation entry
}

// Replaying the signed movement quantities must land exactly on the stored
// remaining counter.
func TestMovementLogReplaysToCounters(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	stock := delegate(t, db, fx, 100, 500)
	repo := NewServerStockRepository(db)

	var err error
	stock, err = repo.RecordSale(fx.TenantID, stock.ID, 40, decimal.Zero, "OR1", fx.ServerID)
	require.NoError(t, err)
	stock, err = repo.ReturnStock(fx.TenantID, stock.ID, 20, 0, "", fx.ServerID)
	require.NoError(t, err)
	stock, err = repo.DeclareLoss(fx.TenantID, stock.ID, 3, "spillage", fx.ServerID)
	require.NoError(t, err)

	movements, err := repo.GetMovements(fx.TenantID, stock.ID)
	require.NoError(t, err)
	require.Len(t, movements, 4)

	replayed := 0
	for _, m := range movements {
		replayed += m.Quantity
		assert.Equal(t, m.QuantityAfter, m.QuantityBefore+m.Quantity, "movement %s", m.Type)
	}
	assert.Equal(t, stock.QuantityRemaining, replayed)
}

func TestTenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	stock := delegate(t, db, fx, 10, 500)

	otherTenant := models.Tenant{Code: "T2", Name: "Other"}
	require.NoError(t, db.Create(&otherTenant).Error)

	repo := NewServerStockRepository(db)
	_, err := repo.RecordSale(otherTenant.ID, stock.ID, 1, decimal.Zero, "", fx.ServerID)
	require.Error(t, err)

	reloaded, err := repo.GetByID(fx.TenantID, stock.ID)
	require.NoError(t, err)
	assert.Zero(t, reloaded.QuantitySold)
}
