package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/industrahub/industrahub-backend/api/responses"
	"github.com/industrahub/industrahub-backend/api/validators"
	mediasvc "github.com/industrahub/industrahub-backend/internal/media"
	servicesvc "github.com/industrahub/industrahub-backend/internal/services"
	"github.com/industrahub/industrahub-backend/pkg/config"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

type maintenanceRequest struct {
	MachineBrand   string     `json:"machine_brand" validate:"required"`
	MachineModel   string     `json:"machine_model" validate:"required"`
	MachineType    *string    `json:"machine_type,omitempty"`
	ProblemSummary string     `json:"problem_summary" validate:"required"`
	Location       string     `json:"location" validate:"required"`
	PreferredDate  *time.Time `json:"preferred_date,omitempty"`
	OnSiteRequired *bool      `json:"on_site_required,omitempty"`
}

// ServiceCreateMaintenance opens a machine maintenance inquiry.
func ServiceCreateMaintenance(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body maintenanceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		onSite := true
		if body.OnSiteRequired != nil {
			onSite = *body.OnSiteRequired
		}

		request, err := svc.CreateMaintenance(r.Context(), userID, servicesvc.MaintenanceInput{
			MachineBrand:   validators.SanitizeString(body.MachineBrand, maxShortTextLen),
			MachineModel:   validators.SanitizeString(body.MachineModel, maxShortTextLen),
			MachineType:    sanitizeOptional(body.MachineType, maxShortTextLen),
			ProblemSummary: validators.SanitizeString(body.ProblemSummary, maxLongTextLen),
			Location:       validators.SanitizeString(body.Location, maxShortTextLen),
			PreferredDate:  body.PreferredDate,
			OnSiteRequired: onSite,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

type consultancyRequest struct {
	Topic         string  `json:"topic" validate:"required"`
	Industry      string  `json:"industry" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	BudgetRange   *string `json:"budget_range,omitempty"`
	DurationWeeks *int    `json:"duration_weeks,omitempty" validate:"omitempty,gt=0"`
}

// ServiceCreateConsultancy opens a consultancy inquiry.
func ServiceCreateConsultancy(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body consultancyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.CreateConsultancy(r.Context(), userID, servicesvc.ConsultancyInput{
			Topic:         validators.SanitizeString(body.Topic, maxShortTextLen),
			Industry:      validators.SanitizeString(body.Industry, maxShortTextLen),
			Description:   validators.SanitizeString(body.Description, maxLongTextLen),
			BudgetRange:   sanitizeOptional(body.BudgetRange, maxShortTextLen),
			DurationWeeks: body.DurationWeeks,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

type turnkeyRequest struct {
	ProjectName     string     `json:"project_name" validate:"required"`
	ProjectScope    string     `json:"project_scope" validate:"required"`
	Location        string     `json:"location" validate:"required"`
	EstimatedBudget *string    `json:"estimated_budget,omitempty"`
	TargetDate      *time.Time `json:"target_date,omitempty"`
}

// ServiceCreateTurnkey opens a turnkey project inquiry.
func ServiceCreateTurnkey(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body turnkeyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.CreateTurnkey(r.Context(), userID, servicesvc.TurnkeyInput{
			ProjectName:     validators.SanitizeString(body.ProjectName, maxShortTextLen),
			ProjectScope:    validators.SanitizeString(body.ProjectScope, maxLongTextLen),
			Location:        validators.SanitizeString(body.Location, maxShortTextLen),
			EstimatedBudget: sanitizeOptional(body.EstimatedBudget, maxShortTextLen),
			TargetDate:      body.TargetDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

type acquisitionRequest struct {
	TargetKind  string  `json:"target_kind" validate:"required"`
	Description string  `json:"description" validate:"required"`
	BudgetRange *string `json:"budget_range,omitempty"`
	Region      *string `json:"region,omitempty"`
}

// ServiceCreateAcquisition opens an acquisition inquiry.
func ServiceCreateAcquisition(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body acquisitionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.CreateAcquisition(r.Context(), userID, servicesvc.AcquisitionInput{
			TargetKind:  validators.SanitizeString(body.TargetKind, maxShortTextLen),
			Description: validators.SanitizeString(body.Description, maxLongTextLen),
			BudgetRange: sanitizeOptional(body.BudgetRange, maxShortTextLen),
			Region:      sanitizeOptional(body.Region, maxShortTextLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

type manpowerRequest struct {
	PositionTitle  string  `json:"position_title" validate:"required"`
	HeadCount      int     `json:"head_count" validate:"required,gt=0"`
	SkillsRequired string  `json:"skills_required" validate:"required"`
	Location       string  `json:"location" validate:"required"`
	ContractType   *string `json:"contract_type,omitempty"`
}

// ServiceCreateManpower opens a staffing inquiry.
func ServiceCreateManpower(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body manpowerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.CreateManpower(r.Context(), userID, servicesvc.ManpowerInput{
			PositionTitle:  validators.SanitizeString(body.PositionTitle, maxShortTextLen),
			HeadCount:      body.HeadCount,
			SkillsRequired: validators.SanitizeString(body.SkillsRequired, maxLongTextLen),
			Location:       validators.SanitizeString(body.Location, maxShortTextLen),
			ContractType:   sanitizeOptional(body.ContractType, maxShortTextLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// ServiceCreateJobSeeker registers a job seeker profile with an optional
// multipart CV upload (PDF).
func ServiceCreateJobSeeker(svc servicesvc.Service, media mediasvc.Service, mediaCfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || media == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxBytes := int64(mediaCfg.MaxUploadMB) * 1024 * 1024
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		input := servicesvc.JobSeekerInput{
			FullName:   validators.SanitizeString(r.FormValue("full_name"), maxShortTextLen),
			Profession: validators.SanitizeString(r.FormValue("profession"), maxShortTextLen),
		}
		if raw := strings.TrimSpace(r.FormValue("years_experience")); raw != "" {
			years, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid years_experience"))
				return
			}
			input.YearsExperience = years
		}
		if raw := validators.SanitizeString(r.FormValue("summary"), maxLongTextLen); raw != "" {
			input.Summary = &raw
		}

		if parts := r.MultipartForm.File["cv"]; len(parts) > 0 {
			upload, err := bufferFilePart(parts[0])
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			url, err := media.UploadCV(r.Context(), *upload)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.CVURL = &url
		}

		request, err := svc.CreateJobSeeker(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// ServiceListMine returns the requester's service requests with details.
func ServiceListMine(svc servicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service request service unavailable"))
			return
		}
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requests, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, requests)
	}
}
