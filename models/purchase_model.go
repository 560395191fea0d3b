package models

import (
	"time"

	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrder statuses.
const (
	PurchaseDraft     = "draft"
	PurchaseOrdered   = "ordered"
	PurchaseReceived  = "received"
	PurchaseCancelled = "cancelled"
)

// PurchaseOrder buys product from a supplier into a warehouse. Receiving it
// increments stock and recomputes the weighted-average cost.
type PurchaseOrder struct {
	gorm.Model
	ID          types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID    types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	SupplierID  types.SnowflakeID `json:"supplier_id" gorm:"index;not null"`
	WarehouseID types.SnowflakeID `json:"warehouse_id" gorm:"index;not null"`
	Reference   string            `json:"reference" gorm:"index"`
	TotalAmount decimal.Decimal   `json:"total_amount" gorm:"type:decimal(12,2);default:0"`
	Status      string            `json:"status" gorm:"default:draft;index"`
	Notes       string            `json:"notes"`
	OrderedBy   types.SnowflakeID `json:"ordered_by"`
	ReceivedBy  types.SnowflakeID `json:"received_by"`
	OrderedAt   *time.Time        `json:"ordered_at"`
	ReceivedAt  *time.Time        `json:"received_at"`

	Items []PurchaseOrderItem `json:"items" gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

type PurchaseOrderItem struct {
	gorm.Model
	ID              types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID        types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	PurchaseOrderID types.SnowflakeID `json:"purchase_order_id" gorm:"index;not null"`
	ProductID       types.SnowflakeID `json:"product_id" gorm:"index;not null"`
	Quantity        int               `json:"quantity" gorm:"not null"`
	UnitCost        decimal.Decimal   `json:"unit_cost" gorm:"type:decimal(12,2);not null"`
}

var purchaseTransitions = map[string][]string{
	PurchaseDraft:     {PurchaseOrdered, PurchaseCancelled},
	PurchaseOrdered:   {PurchaseReceived, PurchaseCancelled},
	PurchaseReceived:  {},
	PurchaseCancelled: {},
}

// CanTransition reports whether the purchase order may move to the target status.
func (p *PurchaseOrder) CanTransition(target string) bool {
	for _, next := range purchaseTransitions[p.Status] {
		if next == target {
			return true
		}
	}
	return false
}
