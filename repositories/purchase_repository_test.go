package repositories

import (
	"testing"

	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSupplier(t *testing.T, db *gorm.DB, tenantID types.SnowflakeID) types.SnowflakeID {
	t.Helper()
	supplier := models.Supplier{TenantID: tenantID, SupplierCode: "BRW", SupplierName: "Brewery"}
	require.NoError(t, db.Create(&supplier).Error)
	return supplier.ID
}

func TestPurchaseLifecycleUpdatesCMP(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	supplierID := seedSupplier(t, db, fx.TenantID)
	repo := NewPurchaseRepository(db)

	order, err := repo.Create(fx.TenantID, CreatePurchaseInput{
		SupplierID:  supplierID,
		WarehouseID: fx.WarehouseID,
		Items: []PurchaseItemInput{
			{ProductID: fx.ProductID, Quantity: 1000, UnitCost: decimal.NewFromInt(380)},
		},
	}, fx.ManagerID)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseDraft, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(380000)))

	// A draft cannot be received directly.
	_, err = repo.Receive(fx.TenantID, order.ID, fx.ManagerID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	order, err = repo.MarkOrdered(fx.TenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseOrdered, order.Status)

	order, err = repo.Receive(fx.TenantID, order.ID, fx.ManagerID)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseReceived, order.Status)

	// 1000 @ 350 + 1000 @ 380 -> 2000 @ 365.
	var stock models.Stock
	require.NoError(t, db.Where("warehouse_id = ? AND product_id = ?", fx.WarehouseID, fx.ProductID).Take(&stock).Error)
	assert.Equal(t, 2000, stock.QtyOnHand)
	assert.True(t, stock.CostAverage.Equal(decimal.NewFromInt(365)), "cost = %s", stock.CostAverage)

	var product models.Product
	require.NoError(t, db.Where("id = ?", fx.ProductID).Take(&product).Error)
	assert.True(t, product.CostAverage.Equal(decimal.NewFromInt(365)), "product CMP = %s", product.CostAverage)

	// Received orders are final.
	_, err = repo.Cancel(fx.TenantID, order.ID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestCancelPurchase(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	supplierID := seedSupplier(t, db, fx.TenantID)
	repo := NewPurchaseRepository(db)

	order, err := repo.Create(fx.TenantID, CreatePurchaseInput{
		SupplierID:  supplierID,
		WarehouseID: fx.WarehouseID,
		Items:       []PurchaseItemInput{{ProductID: fx.ProductID, Quantity: 10, UnitCost: decimal.NewFromInt(380)}},
	}, fx.ManagerID)
	require.NoError(t, err)

	order, err = repo.Cancel(fx.TenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseCancelled, order.Status)

	// Nothing entered the warehouse.
	var stock models.Stock
	require.NoError(t, db.Where("warehouse_id = ? AND product_id = ?", fx.WarehouseID, fx.ProductID).Take(&stock).Error)
	assert.Equal(t, 1000, stock.QtyOnHand)
}
