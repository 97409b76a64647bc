package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/api/responses"
	"github.com/industrahub/industrahub-backend/api/validators"
	quotesvc "github.com/industrahub/industrahub-backend/internal/quotes"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

type createQuoteRequest struct {
	ProductID   string  `json:"product_id" validate:"required,uuid4"`
	CompanyName string  `json:"company_name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Phone       *string `json:"phone,omitempty"`
	Message     *string `json:"message,omitempty"`
}

// QuoteCreate opens a quote request against a visible product.
func QuoteCreate(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createQuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_id"))
			return
		}

		quote, err := svc.Create(r.Context(), userID, quotesvc.CreateInput{
			ProductID:   productID,
			CompanyName: validators.SanitizeString(body.CompanyName, maxShortTextLen),
			Address:     validators.SanitizeString(body.Address, maxShortTextLen),
			Phone:       sanitizeOptional(body.Phone, maxShortTextLen),
			Message:     sanitizeOptional(body.Message, maxLongTextLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

// QuoteListMine returns the requester's quotes, newest first.
func QuoteListMine(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotes, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quotes)
	}
}
