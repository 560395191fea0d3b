package models

import (
	"erp-app/types"

	"gorm.io/gorm"
)

type Supplier struct {
	gorm.Model
	ID           types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID     types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	SupplierCode string            `json:"supplier_code" gorm:"index;not null" validate:"required"`
	SupplierName string            `json:"supplier_name" gorm:"not null" validate:"required"`
	SuppAddr1    string            `json:"supp_addr1"`
	SuppCity     string            `json:"supp_city"`
	SuppCountry  string            `json:"supp_country"`
	SuppPhone    string            `json:"supp_phone"`
	SuppEmail    string            `json:"supp_email"`
	IsActive     bool              `json:"is_active" gorm:"default:true"`
	CreatedBy    types.SnowflakeID `json:"created_by"`
	UpdatedBy    types.SnowflakeID `json:"updated_by"`
}
