package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// GeneratePurchaseNumber builds PO{YYMMDD}{NNNN}, restarting the sequence each day.
func (r *PurchaseRepository) GeneratePurchaseNumber(tx *gorm.DB) (string, error) {
	var lastOrder models.PurchaseOrder
	if err := tx.Last(&lastOrder).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	currentDate := time.Now().Format("060102")

	var purchaseNo string
	if lastOrder.Reference != "" && len(lastOrder.Reference) >= 12 {
		lastDatePart := lastOrder.Reference[2:8]
		lastSequenceStr := lastOrder.Reference[len(lastOrder.Reference)-4:]

		if currentDate != lastDatePart {
			purchaseNo = fmt.Sprintf("PO%s%04d", currentDate, 1)
		} else {
			lastSequenceInt, _ := strconv.Atoi(lastSequenceStr)
			purchaseNo = fmt.Sprintf("PO%s%04d", currentDate, lastSequenceInt+1)
		}
	} else {
		purchaseNo = fmt.Sprintf("PO%s%04d", currentDate, 1)
	}

	return purchaseNo, nil
}

type PurchaseItemInput struct {
	ProductID types.SnowflakeID `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity" validate:"required,min=1"`
	UnitCost  decimal.Decimal   `json:"unit_cost" validate:"required"`
}

type CreatePurchaseInput struct {
	SupplierID  types.SnowflakeID   `json:"supplier_id" validate:"required"`
	WarehouseID types.SnowflakeID   `json:"warehouse_id" validate:"required"`
	Notes       string              `json:"notes"`
	Items       []PurchaseItemInput `json:"items" validate:"required,min=1,dive"`
}

func (r *PurchaseRepository) Create(tenantID types.SnowflakeID, input CreatePurchaseInput, userID types.SnowflakeID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder

	err := r.db.Transaction(func(tx *gorm.DB) error {
		reference, err := r.GeneratePurchaseNumber(tx)
		if err != nil {
			return err
		}

		order = models.PurchaseOrder{
			TenantID:    tenantID,
			SupplierID:  input.SupplierID,
			WarehouseID: input.WarehouseID,
			Reference:   reference,
			Status:      models.PurchaseDraft,
			Notes:       input.Notes,
			OrderedBy:   userID,
		}

		total := decimal.Zero
		for _, item := range input.Items {
			total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
			order.Items = append(order.Items, models.PurchaseOrderItem{
				TenantID:  tenantID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitCost:  item.UnitCost,
			})
		}
		order.TotalAmount = total
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkOrdered sends the draft to the supplier.
func (r *PurchaseRepository) MarkOrdered(tenantID, id types.SnowflakeID) (*models.PurchaseOrder, error) {
	return r.transition(tenantID, id, models.PurchaseOrdered, func(order *models.PurchaseOrder) {
		now := time.Now()
		order.OrderedAt = &now
	})
}

// Receive books the goods in: stock increases and the product's
// weighted-average cost is recomputed per item.
func (r *PurchaseRepository) Receive(tenantID, id, userID types.SnowflakeID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&order).Error; err != nil {
			return err
		}
		if !order.CanTransition(models.PurchaseReceived) {
			return models.ErrInvalidTransition
		}
		if err := tx.Where("purchase_order_id = ?", order.ID).Find(&order.Items).Error; err != nil {
			return err
		}

		stockRepo := NewStockRepository(tx)
		for _, item := range order.Items {
			stock, err := stockRepo.AddStock(tenantID, item.ProductID, order.WarehouseID,
				item.Quantity, item.UnitCost, models.StockMoveIn, order.Reference, "", userID)
			if err != nil {
				return err
			}
			// Product CMP follows the warehouse CMP of the receiving warehouse.
			if err := tx.Model(&models.Product{}).
				Where("id = ? AND tenant_id = ?", item.ProductID, tenantID).
				Update("cost_average", stock.CostAverage).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		order.Status = models.PurchaseReceived
		order.ReceivedBy = userID
		order.ReceivedAt = &now
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PurchaseRepository) Cancel(tenantID, id types.SnowflakeID) (*models.PurchaseOrder, error) {
	return r.transition(tenantID, id, models.PurchaseCancelled, nil)
}

func (r *PurchaseRepository) transition(tenantID, id types.SnowflakeID, target string, mutate func(*models.PurchaseOrder)) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&order).Error; err != nil {
			return err
		}
		if !order.CanTransition(target) {
			return models.ErrInvalidTransition
		}
		order.Status = target
		if mutate != nil {
			mutate(&order)
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PurchaseRepository) GetByID(tenantID, id types.SnowflakeID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := r.db.Preload("Items").Where("id = ? AND tenant_id = ?", id, tenantID).Take(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PurchaseRepository) List(tenantID types.SnowflakeID, status string) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	q := r.db.Preload("Items").Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
