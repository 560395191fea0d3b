package models

import (
	"time"

	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockRequest statuses.
const (
	RequestDraft       = "draft"
	RequestRequested   = "requested"
	RequestApproved    = "approved"
	RequestRejected    = "rejected"
	RequestTransferred = "transferred"
	RequestCancelled   = "cancelled"
)

// Transfer statuses.
const (
	TransferPending   = "pending"
	TransferCompleted = "completed"
	TransferCancelled = "cancelled"
)

// StockRequest asks for quantity to be moved between two warehouses. Approval
// does not move stock by itself; a Transfer has to be created and completed.
type StockRequest struct {
	gorm.Model
	ID              types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID        types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	ProductID       types.SnowflakeID `json:"product_id" gorm:"index;not null"`
	FromWarehouseID types.SnowflakeID `json:"from_warehouse_id" gorm:"index;not null"`
	ToWarehouseID   types.SnowflakeID `json:"to_warehouse_id" gorm:"index;not null"`
	Quantity        int               `json:"quantity" gorm:"not null"`
	Reason          string            `json:"reason"`
	Status          string            `json:"status" gorm:"default:draft;index"`
	RequestedBy     types.SnowflakeID `json:"requested_by"`
	ApprovedBy      types.SnowflakeID `json:"approved_by"`
	RejectReason    string            `json:"reject_reason"`
	TransferID      types.SnowflakeID `json:"transfer_id" gorm:"default:null"`
	RequestedAt     *time.Time        `json:"requested_at"`
	DecidedAt       *time.Time        `json:"decided_at"`
}

var stockRequestTransitions = map[string][]string{
	RequestDraft:       {RequestRequested, RequestCancelled},
	RequestRequested:   {RequestApproved, RequestRejected, RequestCancelled},
	RequestApproved:    {RequestTransferred, RequestCancelled},
	RequestRejected:    {},
	RequestTransferred: {},
	RequestCancelled:   {},
}

// CanTransition reports whether the request may move to the target status.
func (r *StockRequest) CanTransition(target string) bool {
	for _, next := range stockRequestTransitions[r.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// Transfer moves TransferItem quantities from one warehouse to another.
type Transfer struct {
	gorm.Model
	ID              types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID        types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	Reference       string            `json:"reference" gorm:"index"`
	FromWarehouseID types.SnowflakeID `json:"from_warehouse_id" gorm:"index;not null"`
	ToWarehouseID   types.SnowflakeID `json:"to_warehouse_id" gorm:"index;not null"`
	Status          string            `json:"status" gorm:"default:pending;index"`
	Notes           string            `json:"notes"`
	CreatedBy       types.SnowflakeID `json:"created_by"`
	CompletedBy     types.SnowflakeID `json:"completed_by"`
	CompletedAt     *time.Time        `json:"completed_at"`

	Items []TransferItem `json:"items" gorm:"foreignKey:TransferID;constraint:OnDelete:CASCADE"`
}

type TransferItem struct {
	gorm.Model
	ID         types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID   types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	TransferID types.SnowflakeID `json:"transfer_id" gorm:"index;not null"`
	ProductID  types.SnowflakeID `json:"product_id" gorm:"index;not null"`
	Quantity   int               `json:"quantity" gorm:"not null"`
	UnitCost   decimal.Decimal   `json:"unit_cost" gorm:"type:decimal(12,2);default:0"`
}
