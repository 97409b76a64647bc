package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/api/middleware"
	"github.com/industrahub/industrahub-backend/api/responses"
	"github.com/industrahub/industrahub-backend/api/validators"
	servicesvc "github.com/industrahub/industrahub-backend/internal/services"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

// AdminListServices lists service requests with type/status/assignee filters.
func AdminListServices(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}

		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := servicesvc.ListInput{Pagination: params}
		query := r.URL.Query()

		if raw := strings.TrimSpace(query.Get("service_type")); raw != "" {
			serviceType, err := enums.ParseServiceType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service_type"))
				return
			}
			input.ServiceType = &serviceType
		}
		if raw := strings.TrimSpace(query.Get("status")); raw != "" {
			status, err := enums.ParseServiceStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}
		if raw := strings.TrimSpace(query.Get("assigned_to")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid assigned_to"))
				return
			}
			input.AssignedTo = &id
		}

		page, err := svc.ListAdmin(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminGetService returns a request with its detail row and full audit trail.
func AdminGetService(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}

		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}

type updateServiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminUpdateServiceStatus sets any valid status and records who did it.
func AdminUpdateServiceStatus(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}

		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateServiceStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseServiceStatus(strings.TrimSpace(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		request, err := svc.UpdateStatus(r.Context(), id, adminID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}

type assignServiceRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// AdminAssignService sets or clears the assigned admin (null clears).
func AdminAssignService(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}

		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignServiceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var assigneeID *uuid.UUID
		if body.AssigneeID != nil && strings.TrimSpace(*body.AssigneeID) != "" {
			parsed, err := uuid.Parse(strings.TrimSpace(*body.AssigneeID))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid assignee_id"))
				return
			}
			assigneeID = &parsed
		}

		request, err := svc.Assign(r.Context(), id, adminID, assigneeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}

// AdminDeleteService removes a request permanently. Super admin only.
func AdminDeleteService(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}

		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(r.Context()))
		if err := svc.Delete(r.Context(), id, role); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, nil, "service request deleted")
	}
}
