package models

import (
	"erp-app/types"

	"gorm.io/gorm"
)

type Warehouse struct {
	gorm.Model
	ID          types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID    types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	Code        string            `json:"code" gorm:"index;not null" validate:"required"`
	Name        string            `json:"name" gorm:"not null" validate:"required"`
	Description string            `json:"description"`
	IsActive    bool              `json:"is_active" gorm:"default:true"`
}

// PointOfSale is a selling location attached to a warehouse: a till, a bar
// counter or a mobile seller's route.
type PointOfSale struct {
	gorm.Model
	ID          types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID    types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	WarehouseID types.SnowflakeID `json:"warehouse_id" gorm:"index;not null"`
	Code        string            `json:"code" gorm:"index;not null" validate:"required"`
	Name        string            `json:"name" gorm:"not null" validate:"required"`
	Location    string            `json:"location"`
	IsActive    bool              `json:"is_active" gorm:"default:true"`
}
