package models

import (
	"time"

	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a point-of-sale ticket. Orders are settled immediately: the stock
// leaves the warehouse (or the seller's delegated stock) at creation time.
type Order struct {
	gorm.Model
	ID            types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID      types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	PointOfSaleID types.SnowflakeID `json:"point_of_sale_id" gorm:"index;not null"`
	CashSessionID types.SnowflakeID `json:"cash_session_id" gorm:"index;default:null"`
	Reference     string            `json:"reference" gorm:"index"`
	TotalAmount   decimal.Decimal   `json:"total_amount" gorm:"type:decimal(12,2);default:0"`
	PaymentMethod string            `json:"payment_method" gorm:"default:cash"`
	Status        string            `json:"status" gorm:"default:completed;index"`
	SoldBy        types.SnowflakeID `json:"sold_by"`
	SoldAt        time.Time         `json:"sold_at"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	ID        types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID  types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	OrderID   types.SnowflakeID `json:"order_id" gorm:"index;not null"`
	ProductID types.SnowflakeID `json:"product_id" gorm:"index;not null"`
	// ServerStockID is set when the line was sold out of a seller's delegated stock.
	ServerStockID types.SnowflakeID `json:"server_stock_id" gorm:"index;default:null"`
	Quantity      int               `json:"quantity" gorm:"not null"`
	UnitPrice     decimal.Decimal   `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	LineTotal     decimal.Decimal   `json:"line_total" gorm:"type:decimal(12,2);not null"`
}
