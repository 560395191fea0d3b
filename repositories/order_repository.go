package repositories

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GenerateOrderNumber builds OR{YYMMDD}{NNNN}, restarting the sequence each day.
func (r *OrderRepository) GenerateOrderNumber(tx *gorm.DB) (string, error) {
	var lastOrder models.Order
	if err := tx.Last(&lastOrder).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	currentDate := time.Now().Format("060102")

	var orderNo string
	if lastOrder.Reference != "" && len(lastOrder.Reference) >= 12 {
		lastDatePart := lastOrder.Reference[2:8]
		lastSequenceStr := lastOrder.Reference[len(lastOrder.Reference)-4:]

		if currentDate != lastDatePart {
			orderNo = fmt.Sprintf("OR%s%04d", currentDate, 1)
		} else {
			lastSequenceInt, _ := strconv.Atoi(lastSequenceStr)
			orderNo = fmt.Sprintf("OR%s%04d", currentDate, lastSequenceInt+1)
		}
	} else {
		orderNo = fmt.Sprintf("OR%s%04d", currentDate, 1)
	}

	return orderNo, nil
}

type OrderItemInput struct {
	ProductID     types.SnowflakeID `json:"product_id" validate:"required"`
	ServerStockID types.SnowflakeID `json:"server_stock_id"`
	Quantity      int               `json:"quantity" validate:"required,min=1"`
	UnitPrice     decimal.Decimal   `json:"unit_price"`
}

type CreateOrderInput struct {
	PointOfSaleID types.SnowflakeID `json:"point_of_sale_id" validate:"required"`
	WarehouseID   types.SnowflakeID `json:"warehouse_id"`
	CashSessionID types.SnowflakeID `json:"cash_session_id"`
	PaymentMethod string            `json:"payment_method"`
	Items         []OrderItemInput  `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder settles a POS ticket: each line leaves either the warehouse stock
// or the seller's delegated stock, and the payment is booked into the till.
// The cash movement is best-effort bookkeeping: its failure is logged and
// swallowed, never failing the sale itself.
func (r *OrderRepository) CreateOrder(tenantID types.SnowflakeID, input CreateOrderInput, userID types.SnowflakeID) (*models.Order, error) {
	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentCash
	}

	var order models.Order

	err := r.db.Transaction(func(tx *gorm.DB) error {
		reference, err := r.GenerateOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			TenantID:      tenantID,
			PointOfSaleID: input.PointOfSaleID,
			CashSessionID: input.CashSessionID,
			Reference:     reference,
			PaymentMethod: input.PaymentMethod,
			Status:        models.OrderCompleted,
			SoldBy:        userID,
			SoldAt:        time.Now(),
		}

		total := decimal.Zero
		stockRepo := NewStockRepository(tx)
		serverStockRepo := NewServerStockRepository(tx)

		for _, item := range input.Items {
			unitPrice := item.UnitPrice
			if unitPrice.IsZero() {
				var product models.Product
				if err := tx.Where("id = ? AND tenant_id = ?", item.ProductID, tenantID).
					Take(&product).Error; err != nil {
					return err
				}
				unitPrice = product.SalePrice
			}

			if item.ServerStockID != 0 {
				if _, err := serverStockRepo.RecordSale(tenantID, item.ServerStockID,
					item.Quantity, unitPrice, reference, userID); err != nil {
					return err
				}
			} else {
				if _, err := stockRepo.RemoveStock(tenantID, item.ProductID, input.WarehouseID,
					item.Quantity, models.StockMoveOut, reference, "", userID); err != nil {
					return err
				}
			}

			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)
			order.Items = append(order.Items, models.OrderItem{
				TenantID:      tenantID,
				ProductID:     item.ProductID,
				ServerStockID: item.ServerStockID,
				Quantity:      item.Quantity,
				UnitPrice:     unitPrice,
				LineTotal:     lineTotal,
			})
		}

		order.TotalAmount = total
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	// Secondary bookkeeping: log and continue on failure.
	cashRepo := NewCashRepository(r.db)
	if _, err := cashRepo.RecordMovement(tenantID, RecordMovementInput{
		SessionID:     input.CashSessionID,
		Type:          models.CashMoveIn,
		Category:      models.CashCategorySale,
		PaymentMethod: input.PaymentMethod,
		Amount:        order.TotalAmount,
		Reference:     order.Reference,
		Description:   "POS order payment",
	}, userID); err != nil {
		log.Printf("Warning: cash movement for order %s not recorded: %v", order.Reference, err)
	}

	return &order, nil
}

func (r *OrderRepository) GetByID(tenantID, id types.SnowflakeID) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Where("id = ? AND tenant_id = ?", id, tenantID).Take(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) List(tenantID, posID types.SnowflakeID) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.Preload("Items").Where("tenant_id = ?", tenantID)
	if posID != 0 {
		q = q.Where("point_of_sale_id = ?", posID)
	}
	if err := q.Order("id desc").Limit(200).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
