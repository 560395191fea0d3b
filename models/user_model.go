package models

import (
	"time"

	"erp-app/types"

	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleServer  = "server"
	RoleCashier = "cashier"
)

type User struct {
	gorm.Model
	ID       types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID types.SnowflakeID `json:"tenant_id" gorm:"index;not null"`
	Name     string            `json:"name" gorm:"not null" validate:"required"`
	Username string            `json:"username" gorm:"unique;not null" validate:"required"`
	Email    string            `json:"email"`
	Password string            `json:"-" gorm:"not null"`
	Role     string            `json:"role" gorm:"default:server"`
	IsActive bool              `json:"is_active" gorm:"default:true"`
}

type LoginLog struct {
	gorm.Model
	ID        types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	TenantID  types.SnowflakeID `json:"tenant_id" gorm:"index"`
	UserID    types.SnowflakeID `json:"user_id" gorm:"index"`
	SessionID string            `json:"session_id" gorm:"index"`
	IPAddress string            `json:"ip_address"`
	UserAgent string            `json:"user_agent"`
	LoginAt   time.Time         `json:"login_at"`
	LogoutAt  *time.Time        `json:"logout_at"`
}
