package migration

import (
	"erp-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.LoginLog{},
		&models.Product{},
		&models.Supplier{},
		&models.Warehouse{},
		&models.PointOfSale{},
		&models.Stock{},
		&models.StockMovement{},
		&models.ServerStock{},
		&models.ServerStockMovement{},
		&models.ServerReconciliation{},
		&models.CashRegisterSession{},
		&models.CashMovement{},
		&models.CashRemittance{},
		&models.StockRequest{},
		&models.Transfer{},
		&models.TransferItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.AccountingPeriod{},
		&models.JournalEntry{},
		&models.JournalLine{},
	)
}
