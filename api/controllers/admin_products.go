package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/industrahub/industrahub-backend/api/responses"
	"github.com/industrahub/industrahub-backend/api/validators"
	productsvc "github.com/industrahub/industrahub-backend/internal/products"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

// AdminListProducts lists every product regardless of visibility.
func AdminListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseProductListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListAdmin(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminGetProduct returns the full listing including moderation state.
func AdminGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetAdmin(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type updateProductRequest struct {
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Price          *string         `json:"price,omitempty"`
	Quantity       *int            `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Condition      *string         `json:"condition,omitempty"`
	Status         *string         `json:"status,omitempty"`
	ProductType    *string         `json:"product_type,omitempty"`
	MachineType    *string         `json:"machine_type,omitempty"`
	Specifications *map[string]any `json:"specifications,omitempty"`
	Category       *string         `json:"category,omitempty"`
}

// AdminUpdateProduct applies a partial update to a listing.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a listing; quote requests go with it.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, nil, "product deleted")
	}
}

func (b updateProductRequest) toUpdateInput() (productsvc.UpdateInput, error) {
	input := productsvc.UpdateInput{
		Title:          b.Title,
		Description:    b.Description,
		Quantity:       b.Quantity,
		Specifications: b.Specifications,
		CategoryName:   b.Category,
	}

	if b.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*b.Price))
		if err != nil {
			return productsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}
	if b.Condition != nil {
		condition, err := enums.ParseProductCondition(strings.TrimSpace(*b.Condition))
		if err != nil {
			return productsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		input.Condition = &condition
	}
	if b.Status != nil {
		status, err := enums.ParseProductStatus(strings.TrimSpace(*b.Status))
		if err != nil {
			return productsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	if b.ProductType != nil {
		productType, err := enums.ParseProductType(strings.TrimSpace(*b.ProductType))
		if err != nil {
			return productsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_type")
		}
		input.ProductType = &productType
	}
	if b.MachineType != nil {
		// an empty machine_type clears the stored value
		if trimmed := strings.TrimSpace(*b.MachineType); trimmed == "" {
			input.ClearMachineType = true
		} else {
			machineType, err := enums.ParseMachineType(trimmed)
			if err != nil {
				return productsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid machine_type")
			}
			input.MachineType = &machineType
		}
	}

	return input, nil
}
