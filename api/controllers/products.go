package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/api/responses"
	productsvc "github.com/industrahub/industrahub-backend/internal/products"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

// PublicListProducts serves the buyer-facing catalog. Only visible listings
// come back, and machinery prices are withheld.
func PublicListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		page, err := svc.ListPublic(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// PublicGetProduct serves a single visible listing.
func PublicGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		product, err := svc.GetPublic(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func parseProductListInput(r *http.Request) (productsvc.ListInput, error) {
	params, err := parsePagination(r)
	if err != nil {
		return productsvc.ListInput{}, err
	}

	input := productsvc.ListInput{Pagination: params}
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return productsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id")
		}
		input.Filters.CategoryID = &id
	}
	if raw := strings.TrimSpace(query.Get("condition")); raw != "" {
		condition, err := enums.ParseProductCondition(raw)
		if err != nil {
			return productsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		input.Filters.Condition = &condition
	}
	if raw := strings.TrimSpace(query.Get("product_type")); raw != "" {
		productType, err := enums.ParseProductType(raw)
		if err != nil {
			return productsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_type")
		}
		input.Filters.ProductType = &productType
	}
	if raw := strings.TrimSpace(query.Get("machine_type")); raw != "" {
		machineType, err := enums.ParseMachineType(raw)
		if err != nil {
			return productsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid machine_type")
		}
		input.Filters.MachineType = &machineType
	}
	input.Filters.Query = strings.TrimSpace(query.Get("q"))

	return input, nil
}
