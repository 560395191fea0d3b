package repositories

import (
	"errors"
	"time"

	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// AddStock receives quantity into a warehouse, creating the stock row when it
// does not exist yet, and appends the ledger movement. Counter update and
// movement insert share one transaction.
func (r *StockRepository) AddStock(tenantID, productID, warehouseID types.SnowflakeID, qty int, unitCost decimal.Decimal, moveType, reference, notes string, userID types.SnowflakeID) (*models.Stock, error) {
	var stock models.Stock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("tenant_id = ? AND product_id = ? AND warehouse_id = ?", tenantID, productID, warehouseID).
			Take(&stock).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stock = models.Stock{
				TenantID:    tenantID,
				ProductID:   productID,
				WarehouseID: warehouseID,
			}
			if err := tx.Create(&stock).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		before := stock.QtyOnHand
		if err := stock.Add(qty, unitCost); err != nil {
			return err
		}
		if err := tx.Save(&stock).Error; err != nil {
			return err
		}

		movement := models.StockMovement{
			TenantID:    tenantID,
			ProductID:   productID,
			WarehouseID: warehouseID,
			Type:        moveType,
			Quantity:    qty,
			QtyBefore:   before,
			QtyAfter:    stock.QtyOnHand,
			UnitCost:    unitCost,
			Reference:   reference,
			Notes:       notes,
			PerformedBy: userID,
			MovedAt:     time.Now(),
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// RemoveStock takes quantity out of a warehouse. Fails without mutation when
// the available quantity is insufficient.
func (r *StockRepository) RemoveStock(tenantID, productID, warehouseID types.SnowflakeID, qty int, moveType, reference, notes string, userID types.SnowflakeID) (*models.Stock, error) {
	var stock models.Stock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("tenant_id = ? AND product_id = ? AND warehouse_id = ?", tenantID, productID, warehouseID).
			Take(&stock).Error; err != nil {
			return err
		}

		before := stock.QtyOnHand
		if err := stock.Remove(qty); err != nil {
			return err
		}
		if err := tx.Save(&stock).Error; err != nil {
			return err
		}

		movement := models.StockMovement{
			TenantID:    tenantID,
			ProductID:   productID,
			WarehouseID: warehouseID,
			Type:        moveType,
			Quantity:    -qty,
			QtyBefore:   before,
			QtyAfter:    stock.QtyOnHand,
			UnitCost:    stock.CostAverage,
			Reference:   reference,
			Notes:       notes,
			PerformedBy: userID,
			MovedAt:     time.Now(),
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// Adjust forces the on-hand quantity to a counted value, recording the signed
// delta as an adjustment movement.
func (r *StockRepository) Adjust(tenantID, productID, warehouseID types.SnowflakeID, countedQty int, notes string, userID types.SnowflakeID) (*models.Stock, error) {
	if countedQty < 0 {
		return nil, models.ErrInvalidQuantity
	}

	var stock models.Stock
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("tenant_id = ? AND product_id = ? AND warehouse_id = ?", tenantID, productID, warehouseID).
			Take(&stock).Error; err != nil {
			return err
		}

		before := stock.QtyOnHand
		delta := countedQty - before
		if delta == 0 {
			return nil
		}
		stock.QtyOnHand = countedQty
		stock.QtyAvailable += delta
		if err := tx.Save(&stock).Error; err != nil {
			return err
		}

		movement := models.StockMovement{
			TenantID:    tenantID,
			ProductID:   productID,
			WarehouseID: warehouseID,
			Type:        models.StockMoveAdjustment,
			Quantity:    delta,
			QtyBefore:   before,
			QtyAfter:    stock.QtyOnHand,
			UnitCost:    stock.CostAverage,
			Notes:       notes,
			PerformedBy: userID,
			MovedAt:     time.Now(),
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *StockRepository) GetStocks(tenantID types.SnowflakeID, warehouseID types.SnowflakeID) ([]models.Stock, error) {
	var stocks []models.Stock
	q := r.db.Where("tenant_id = ?", tenantID)
	if warehouseID != 0 {
		q = q.Where("warehouse_id = ?", warehouseID)
	}
	if err := q.Order("product_id").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *StockRepository) GetMovements(tenantID, productID types.SnowflakeID) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	q := r.db.Where("tenant_id = ?", tenantID)
	if productID != 0 {
		q = q.Where("product_id = ?", productID)
	}
	if err := q.Order("id desc").Limit(500).Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
