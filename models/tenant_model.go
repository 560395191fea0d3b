package models

import (
	"erp-app/types"

	"gorm.io/gorm"
)

type Tenant struct {
	gorm.Model
	ID           types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	Code         string            `json:"code" gorm:"unique;not null" validate:"required"`
	Name         string            `json:"name" gorm:"not null" validate:"required"`
	Currency     string            `json:"currency" gorm:"default:XOF"`
	ContactEmail string            `json:"contact_email"`
	IsActive     bool              `json:"is_active" gorm:"default:true"`
}
