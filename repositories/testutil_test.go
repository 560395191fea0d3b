package repositories

import (
	"sync"
	"testing"

	"erp-app/controllers/idgen"
	"erp-app/migration"
	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var idgenOnce sync.Once

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	idgenOnce.Do(idgen.Init)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migration.Migrate(db))
	idgen.AutoGenerateSnowflakeID(db)

	return db
}

type fixture struct {
	TenantID    types.SnowflakeID
	ManagerID   types.SnowflakeID
	ServerID    types.SnowflakeID
	WarehouseID types.SnowflakeID
	POSID       types.SnowflakeID
	ProductID   types.SnowflakeID
}

// seedFixture creates a tenant with a manager, a seller, a warehouse holding
// 1000 units of one product at cost 350, and a point of sale.
func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	tenant := models.Tenant{Code: "T1", Name: "Test Tenant"}
	require.NoError(t, db.Create(&tenant).Error)

	manager := models.User{TenantID: tenant.ID, Name: "Manager", Username: "manager", Password: "x", Role: models.RoleManager, Email: "manager@example.com"}
	require.NoError(t, db.Create(&manager).Error)

	server := models.User{TenantID: tenant.ID, Name: "Seller", Username: "seller", Password: "x", Role: models.RoleServer}
	require.NoError(t, db.Create(&server).Error)

	warehouse := models.Warehouse{TenantID: tenant.ID, Code: "MAIN", Name: "Main"}
	require.NoError(t, db.Create(&warehouse).Error)

	pos := models.PointOfSale{TenantID: tenant.ID, WarehouseID: warehouse.ID, Code: "POS1", Name: "Counter"}
	require.NoError(t, db.Create(&pos).Error)

	product := models.Product{TenantID: tenant.ID, ItemCode: "BEER-500", ItemName: "Beer 500ml", SalePrice: decimal.NewFromInt(500)}
	require.NoError(t, db.Create(&product).Error)

	stockRepo := NewStockRepository(db)
	_, err := stockRepo.AddStock(tenant.ID, product.ID, warehouse.ID, 1000,
		decimal.NewFromInt(350), models.StockMoveIn, "INIT", "opening stock", manager.ID)
	require.NoError(t, err)

	return fixture{
		TenantID:    tenant.ID,
		ManagerID:   manager.ID,
		ServerID:    server.ID,
		WarehouseID: warehouse.ID,
		POSID:       pos.ID,
		ProductID:   product.ID,
	}
}

func delegate(t *testing.T, db *gorm.DB, fx fixture, qty int, price int64) *models.ServerStock {
	t.Helper()

	repo := NewServerStockRepository(db)
	stock, err := repo.Delegate(fx.TenantID, DelegateStockInput{
		ServerID:      fx.ServerID,
		ProductID:     fx.ProductID,
		PointOfSaleID: fx.POSID,
		WarehouseID:   fx.WarehouseID,
		Quantity:      qty,
		UnitPrice:     decimal.NewFromInt(price),
		UnitCost:      decimal.NewFromInt(350),
	}, fx.ManagerID)
	require.NoError(t, err)
	return stock
}
