package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/industrahub/industrahub-backend/pkg/enums"
)

// Product is a marketplace listing. Status and SubmissionStatus are
// independent dimensions: the first tracks stock, the second moderation.
// A product is publicly visible only when status is AVAILABLE and the
// submission status is either null (admin-created) or APPROVED.
type Product struct {
	ID                uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title             string                  `gorm:"column:title;not null"`
	Description       string                  `gorm:"column:description;not null"`
	Price             decimal.Decimal         `gorm:"column:price;type:numeric(14,2);not null"`
	Quantity          int                     `gorm:"column:quantity;not null;default:1"`
	Condition         enums.ProductCondition  `gorm:"column:condition;type:text;not null"`
	Status            enums.ProductStatus     `gorm:"column:status;type:text;not null;default:'DRAFT'"`
	SubmissionStatus  *enums.SubmissionStatus `gorm:"column:submission_status;type:text"`
	ProductType       enums.ProductType       `gorm:"column:product_type;type:text;not null"`
	MachineType       *enums.MachineType      `gorm:"column:machine_type;type:text"`
	Specifications    *string                 `gorm:"column:specifications;type:text"`
	ImageURLs         pq.StringArray          `gorm:"column:image_urls;type:text[];not null;default:ARRAY[]::text[]"`
	VideoURL          *string                 `gorm:"column:video_url"`
	PDFURL            *string                 `gorm:"column:pdf_url"`
	ThumbnailURL      *string                 `gorm:"column:thumbnail_url"`
	VideoThumbnailURL *string                 `gorm:"column:video_thumbnail_url"`
	CreatorID         uuid.UUID               `gorm:"column:creator_id;type:uuid;not null"`
	CategoryID        uuid.UUID               `gorm:"column:category_id;type:uuid;not null"`
	Category          *Category               `gorm:"foreignKey:CategoryID"`
	QuoteRequests     []QuoteRequest          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
