package visibility

import (
	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
)

// IsPubliclyVisible reports whether a product may appear in buyer-facing
// listings. A product qualifies when it is AVAILABLE and either was created
// directly by staff (no submission status) or passed moderation.
func IsPubliclyVisible(product *models.Product) bool {
	if product == nil {
		return false
	}
	if product.Status != enums.ProductStatusAvailable {
		return false
	}
	if product.SubmissionStatus == nil {
		return true
	}
	return *product.SubmissionStatus == enums.SubmissionStatusApproved
}

// EnsurePubliclyVisible enforces the listing rules so hidden products never
// leak through public queries. Hidden products read as not found.
func EnsurePubliclyVisible(product *models.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if !IsPubliclyVisible(product) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// PriceHidden reports whether the product's price must be withheld from
// public responses. Machinery prices are quote-only.
func PriceHidden(product *models.Product) bool {
	if product == nil {
		return false
	}
	return product.ProductType == enums.ProductTypeMachinery
}
