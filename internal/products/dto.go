package products

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	"github.com/industrahub/industrahub-backend/pkg/visibility"
)

// ProductDTO is the transport shape for a product. Price is a pointer so
// machinery listings can omit it in public responses.
type ProductDTO struct {
	ID                uuid.UUID               `json:"id"`
	Title             string                  `json:"title"`
	Description       string                  `json:"description"`
	Price             *string                 `json:"price,omitempty"`
	Quantity          int                     `json:"quantity"`
	Condition         enums.ProductCondition  `json:"condition"`
	Status            enums.ProductStatus     `json:"status"`
	SubmissionStatus  *enums.SubmissionStatus `json:"submission_status,omitempty"`
	ProductType       enums.ProductType       `json:"product_type"`
	MachineType       *enums.MachineType      `json:"machine_type,omitempty"`
	Specifications    map[string]any          `json:"specifications,omitempty"`
	ImageURLs         []string                `json:"image_urls"`
	VideoURL          *string                 `json:"video_url,omitempty"`
	PDFURL            *string                 `json:"pdf_url,omitempty"`
	ThumbnailURL      *string                 `json:"thumbnail_url,omitempty"`
	VideoThumbnailURL *string                 `json:"video_thumbnail_url,omitempty"`
	CategoryID        uuid.UUID               `json:"category_id"`
	CategoryName      string                  `json:"category_name,omitempty"`
	CreatorID         uuid.UUID               `json:"creator_id"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// NewPublicProductDTO builds the buyer-facing shape, withholding the price
// for machinery listings.
func NewPublicProductDTO(product *models.Product) *ProductDTO {
	dto := newProductDTO(product)
	if dto == nil {
		return nil
	}
	if visibility.PriceHidden(product) {
		dto.Price = nil
	}
	// moderation state is internal
	dto.SubmissionStatus = nil
	return dto
}

// NewAdminProductDTO builds the full shape including price and moderation state.
func NewAdminProductDTO(product *models.Product) *ProductDTO {
	return newProductDTO(product)
}

func newProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}

	price := product.Price.StringFixed(2)

	dto := &ProductDTO{
		ID:                product.ID,
		Title:             product.Title,
		Description:       product.Description,
		Price:             &price,
		Quantity:          product.Quantity,
		Condition:         product.Condition,
		Status:            product.Status,
		SubmissionStatus:  product.SubmissionStatus,
		ProductType:       product.ProductType,
		MachineType:       product.MachineType,
		Specifications:    parseSpecifications(product.Specifications),
		ImageURLs:         append([]string(nil), product.ImageURLs...),
		VideoURL:          product.VideoURL,
		PDFURL:            product.PDFURL,
		ThumbnailURL:      product.ThumbnailURL,
		VideoThumbnailURL: product.VideoThumbnailURL,
		CategoryID:        product.CategoryID,
		CreatorID:         product.CreatorID,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
	if product.Category != nil {
		dto.CategoryName = product.Category.Name
	}
	return dto
}

// parseSpecifications decodes the stored JSON text. Unparseable payloads are
// dropped rather than failing the read path.
func parseSpecifications(raw *string) map[string]any {
	if raw == nil || *raw == "" {
		return nil
	}
	var specs map[string]any
	if err := json.Unmarshal([]byte(*raw), &specs); err != nil {
		return nil
	}
	return specs
}

// ProductListDTO is one page of listings.
type ProductListDTO struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}
