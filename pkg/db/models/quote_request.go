package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/pkg/enums"
)

// QuoteRequest links a user to a product. Rows are created once and mutated
// only through status updates; deleting the product cascades here.
type QuoteRequest struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	CompanyName string            `gorm:"column:company_name;not null"`
	Address     string            `gorm:"column:address;not null"`
	Phone       *string           `gorm:"column:phone"`
	Message     *string           `gorm:"column:message"`
	Status      enums.QuoteStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
