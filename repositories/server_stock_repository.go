package repositories

import (
	"fmt"
	"time"

	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServerStockRepository struct {
	db *gorm.DB
}

func NewServerStockRepository(db *gorm.DB) *ServerStockRepository {
	return &ServerStockRepository{db: db}
}

type DelegateStockInput struct {
	ServerID      types.SnowflakeID `json:"server_id" validate:"required"`
	ProductID     types.SnowflakeID `json:"product_id" validate:"required"`
	PointOfSaleID types.SnowflakeID `json:"point_of_sale_id"`
	WarehouseID   types.SnowflakeID `json:"warehouse_id" validate:"required"`
	Quantity      int               `json:"quantity" validate:"required,min=1"`
	UnitPrice     decimal.Decimal   `json:"unit_price"`
	UnitCost      decimal.Decimal   `json:"unit_cost"`
}

// GenerateReference builds SS-{YYYYMMDD}-{NNNN}: sequence is the count of
// delegations created for this tenant today, plus one.
func (r *ServerStockRepository) GenerateReference(tx *gorm.DB, tenantID types.SnowflakeID, now time.Time) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	if err := tx.Model(&models.ServerStock{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("SS-%s-%04d", now.Format("20060102"), count+1), nil
}

// Delegate hands quantity to a seller: the source warehouse loses the stock,
// a ServerStock opens with remaining == delegated, and the first movement is
// the signed +delegation entry.
func (r *ServerStockRepository) Delegate(tenantID types.SnowflakeID, input DelegateStockInput, userID types.SnowflakeID) (*models.ServerStock, error) {
	var stock models.ServerStock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		reference, err := r.GenerateReference(tx, tenantID, now)
		if err != nil {
			return err
		}

		stockRepo := NewStockRepository(tx)
		if _, err := stockRepo.RemoveStock(tenantID, input.ProductID, input.WarehouseID,
			input.Quantity, models.StockMoveDelegation, reference, "delegated to server", userID); err != nil {
			return err
		}

		stock = models.ServerStock{
			TenantID:          tenantID,
			ServerID:          input.ServerID,
			ProductID:         input.ProductID,
			PointOfSaleID:     input.PointOfSaleID,
			DelegatedBy:       userID,
			Reference:         reference,
			QuantityDelegated: input.Quantity,
			QuantityRemaining: input.Quantity,
			UnitPrice:         input.UnitPrice,
			UnitCost:          input.UnitCost,
			Status:            models.ServerStockActive,
			DelegatedAt:       now,
		}
		if err := tx.Create(&stock).Error; err != nil {
			return err
		}

		movement := models.ServerStockMovement{
			TenantID:       tenantID,
			ServerStockID:  stock.ID,
			Type:           models.ServerMoveDelegation,
			Quantity:       input.Quantity,
			QuantityBefore: 0,
			QuantityAfter:  stock.QuantityRemaining,
			UnitPrice:      input.UnitPrice,
			TotalAmount:    input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
			Reference:      reference,
			PerformedBy:    userID,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// RecordSale sells qty out of the delegation. The row is locked so concurrent
// sales cannot both pass the remaining-quantity guard.
func (r *ServerStockRepository) RecordSale(tenantID, id types.SnowflakeID, qty int, unitPrice decimal.Decimal, orderRef string, userID types.SnowflakeID) (*models.ServerStock, error) {
	var stock models.ServerStock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&stock).Error; err != nil {
			return err
		}

		if unitPrice.IsZero() {
			unitPrice = stock.UnitPrice
		}

		before := stock.QuantityRemaining
		if err := stock.RecordSale(qty, unitPrice); err != nil {
			return err
		}
		if err := tx.Save(&stock).Error; err != nil {
			return err
		}

		movement := models.ServerStockMovement{
			TenantID:       tenantID,
			ServerStockID:  stock.ID,
			Type:           models.ServerMoveSale,
			Quantity:       -qty,
			QuantityBefore: before,
			QuantityAfter:  stock.QuantityRemaining,
			UnitPrice:      unitPrice,
			TotalAmount:    unitPrice.Mul(decimal.NewFromInt(int64(qty))),
			Reference:      orderRef,
			PerformedBy:    userID,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// ReturnStock gives qty back to the warehouse the seller took it from.
func (r *ServerStockRepository) ReturnStock(tenantID, id types.SnowflakeID, qty int, warehouseID types.SnowflakeID, notes string, userID types.SnowflakeID) (*models.ServerStock, error) {
	var stock models.ServerStock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&stock).Error; err != nil {
			return err
		}

		before := stock.QuantityRemaining
		if err := stock.ReturnStock(qty); err != nil {
			return err
		}
		if err := tx.Save(&stock).Error; err != nil {
			return err
		}

		if warehouseID != 0 {
			stockRepo := NewStockRepository(tx)
			if _, err := stockRepo.AddStock(tenantID, stock.ProductID, warehouseID,
				qty, stock.UnitCost, models.StockMoveReturn, stock.Reference, notes, userID); err != nil {
				return err
			}
		}

		movement := models.ServerStockMovement{
			TenantID:       tenantID,
			ServerStockID:  stock.ID,
			Type:           models.ServerMoveReturn,
			Quantity:       -qty,
			QuantityBefore: before,
			QuantityAfter:  stock.QuantityRemaining,
			UnitPrice:      stock.UnitPrice,
			Notes:          notes,
			PerformedBy:    userID,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// DeclareLoss writes qty off the delegation with a mandatory reason.
func (r *ServerStockRepository) DeclareLoss(tenantID, id types.SnowflakeID, qty int, reason string, userID types.SnowflakeID) (*models.ServerStock, error) {
	var stock models.ServerStock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&stock).Error; err != nil {
			return err
		}

		before := stock.QuantityRemaining
		if err := stock.DeclareLoss(qty, reason); err != nil {
			return err
		}
		if err := tx.Save(&stock).Error; err != nil {
			return err
		}

		movement := models.ServerStockMovement{
			TenantID:       tenantID,
			ServerStockID:  stock.ID,
			Type:           models.ServerMoveLoss,
			Quantity:       -qty,
			QuantityBefore: before,
			QuantityAfter:  stock.QuantityRemaining,
			UnitPrice:      stock.UnitPrice,
			Notes:          reason,
			PerformedBy:    userID,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// CloseStock ends a delegation outside the reconciliation flow.
func (r *ServerStockRepository) CloseStock(tenantID, id types.SnowflakeID) (*models.ServerStock, error) {
	var stock models.ServerStock

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&stock).Error; err != nil {
			return err
		}
		if err := stock.Close(time.Now()); err != nil {
			return err
		}
		return tx.Save(&stock).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *ServerStockRepository) GetByID(tenantID, id types.SnowflakeID) (*models.ServerStock, error) {
	var stock models.ServerStock
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Take(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *ServerStockRepository) List(tenantID, serverID types.SnowflakeID, status string) ([]models.ServerStock, error) {
	var stocks []models.ServerStock
	q := r.db.Where("tenant_id = ?", tenantID)
	if serverID != 0 {
		q = q.Where("server_id = ?", serverID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *ServerStockRepository) GetMovements(tenantID, serverStockID types.SnowflakeID) ([]models.ServerStockMovement, error) {
	var movements []models.ServerStockMovement
	if err := r.db.Where("tenant_id = ? AND server_stock_id = ?", tenantID, serverStockID).
		Order("id").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
