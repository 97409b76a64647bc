package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/industrahub/industrahub-backend/pkg/enums"
)

// User represents the canonical identity entity. Accounts are never deleted
// by any exposed operation.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone        *string        `gorm:"column:phone;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FirstName    string         `gorm:"column:first_name;not null"`
	LastName     string         `gorm:"column:last_name;not null"`
	CompanyName  *string        `gorm:"column:company_name"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'NORMAL_USER'"`
	Permissions  pq.StringArray `gorm:"column:permissions;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// HasPermission reports whether the user may touch the given admin surface.
// SUPER_ADMIN short-circuits every permission check.
func (u *User) HasPermission(permission enums.AdminPermission) bool {
	if u == nil {
		return false
	}
	if u.Role == enums.UserRoleSuperAdmin {
		return true
	}
	if u.Role != enums.UserRoleAdmin {
		return false
	}
	for _, candidate := range u.Permissions {
		if candidate == string(permission) {
			return true
		}
	}
	return false
}
