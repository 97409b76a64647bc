package controllers

import (
	"net/http"

	"github.com/industrahub/industrahub-backend/api/responses"
	"github.com/industrahub/industrahub-backend/api/validators"
	categorysvc "github.com/industrahub/industrahub-backend/internal/categories"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// AdminCreateCategory creates a category; repeating a name returns the
// existing row.
func AdminCreateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		var body createCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.LookupOrCreate(r.Context(), body.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// AdminDeleteCategory removes an empty category.
func AdminDeleteCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
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
		responses.WriteSuccessMessage(w, http.StatusOK, nil, "category deleted")
	}
}
