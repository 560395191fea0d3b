package seed

import (
	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run seeds the demo tenant with an admin account, one warehouse, one point
// of sale and a couple of products. Every seed is idempotent: existing rows
// are left untouched.
func Run(db *gorm.DB) {
	tenant := seedTenant(db)
	if tenant == nil {
		return
	}
	seedAdmin(db, tenant.ID)
	warehouse := seedWarehouse(db, tenant.ID)
	if warehouse != nil {
		seedPointOfSale(db, tenant.ID, warehouse.ID)
	}
	seedProducts(db, tenant.ID)
}

func seedTenant(db *gorm.DB) *models.Tenant {
	tenant := models.Tenant{
		Code:     "DEMO",
		Name:     "Demo Company",
		Currency: "XOF",
	}

	var existing models.Tenant
	if err := db.Where("code = ?", tenant.Code).First(&existing).Error; err == nil {
		return &existing
	}
	if err := db.Create(&tenant).Error; err != nil {
		return nil
	}
	return &tenant
}

func seedAdmin(db *gorm.DB, tenantID types.SnowflakeID) {
	var existing models.User
	if err := db.Where("username = ?", "admin").First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return
	}

	db.Create(&models.User{
		TenantID: tenantID,
		Name:     "Administrator",
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	})
}

func seedWarehouse(db *gorm.DB, tenantID types.SnowflakeID) *models.Warehouse {
	warehouse := models.Warehouse{
		TenantID: tenantID,
		Code:     "MAIN",
		Name:     "Main Warehouse",
	}

	var existing models.Warehouse
	if err := db.Where("tenant_id = ? AND code = ?", tenantID, warehouse.Code).First(&existing).Error; err == nil {
		return &existing
	}
	if err := db.Create(&warehouse).Error; err != nil {
		return nil
	}
	return &warehouse
}

func seedPointOfSale(db *gorm.DB, tenantID, warehouseID types.SnowflakeID) {
	var existing models.PointOfSale
	if err := db.Where("tenant_id = ? AND code = ?", tenantID, "POS1").First(&existing).Error; err == nil {
		return
	}

	db.Create(&models.PointOfSale{
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		Code:        "POS1",
		Name:        "Main Counter",
	})
}

func seedProducts(db *gorm.DB, tenantID types.SnowflakeID) {
	products := []models.Product{
		{TenantID: tenantID, ItemCode: "BEER-500", ItemName: "Beer 500ml", Uom: "PCS", SalePrice: decimal.NewFromInt(500)},
		{TenantID: tenantID, ItemCode: "SODA-330", ItemName: "Soda 330ml", Uom: "PCS", SalePrice: decimal.NewFromInt(300)},
		{TenantID: tenantID, ItemCode: "WATER-1L", ItemName: "Water 1L", Uom: "PCS", SalePrice: decimal.NewFromInt(200)},
	}

	for _, p := range products {
		var existing models.Product
		if err := db.Where("tenant_id = ? AND item_code = ?", tenantID, p.ItemCode).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&p)
			}
		}
	}
}
