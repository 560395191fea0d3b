package models

import (
	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	ID          types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID    types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	ItemCode    string            `json:"item_code" gorm:"index;not null" validate:"required"`
	Barcode     string            `json:"barcode" gorm:"index"`
	ItemName    string            `json:"item_name" gorm:"not null" validate:"required"`
	Description string            `json:"description"`
	Uom         string            `json:"uom" gorm:"default:PCS"`
	SalePrice   decimal.Decimal   `json:"sale_price" gorm:"type:decimal(12,2);default:0"`
	// CostAverage is the weighted-average unit cost (CMP), recomputed on every receipt.
	CostAverage decimal.Decimal   `json:"cost_average" gorm:"type:decimal(12,2);default:0"`
	MinStock    int               `json:"min_stock" gorm:"default:0"`
	IsActive    bool              `json:"is_active" gorm:"default:true"`
	CreatedBy   types.SnowflakeID `json:"created_by"`
	UpdatedBy   types.SnowflakeID `json:"updated_by"`
}
