package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/industrahub/industrahub-backend/pkg/db"
	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/pagination"
)

// Service exposes the six structured inquiry forms plus the admin lifecycle.
type Service interface {
	CreateMaintenance(ctx context.Context, requesterID uuid.UUID, input MaintenanceInput) (*ServiceRequestDTO, error)
	CreateConsultancy(ctx context.Context, requesterID uuid.UUID, input ConsultancyInput) (*ServiceRequestDTO, error)
	CreateTurnkey(ctx context.Context, requesterID uuid.UUID, input TurnkeyInput) (*ServiceRequestDTO, error)
	CreateAcquisition(ctx context.Context, requesterID uuid.UUID, input AcquisitionInput) (*ServiceRequestDTO, error)
	CreateManpower(ctx context.Context, requesterID uuid.UUID, input ManpowerInput) (*ServiceRequestDTO, error)
	CreateJobSeeker(ctx context.Context, requesterID uuid.UUID, input JobSeekerInput) (*ServiceRequestDTO, error)

	ListMine(ctx context.Context, requesterID uuid.UUID) ([]ServiceRequestDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ServiceRequestDTO, error)
	ListAdmin(ctx context.Context, input ListInput) (*ServiceRequestListDTO, error)
	UpdateStatus(ctx context.Context, id, actorID uuid.UUID, target enums.ServiceStatus) (*ServiceRequestDTO, error)
	Assign(ctx context.Context, id, actorID uuid.UUID, assigneeID *uuid.UUID) (*ServiceRequestDTO, error)
	Delete(ctx context.Context, id uuid.UUID, actorRole enums.UserRole) error
}

// MaintenanceInput holds the validated maintenance inquiry payload.
type MaintenanceInput struct {
	MachineBrand   string
	MachineModel   string
	MachineType    *string
	ProblemSummary string
	Location       string
	PreferredDate  *time.Time
	OnSiteRequired bool
}

func (in MaintenanceInput) validate() error {
	return requireFields(map[string]string{
		"machine_brand":   in.MachineBrand,
		"machine_model":   in.MachineModel,
		"problem_summary": in.ProblemSummary,
		"location":        in.Location,
	})
}

// ConsultancyInput holds the validated consultancy inquiry payload.
type ConsultancyInput struct {
	Topic         string
	Industry      string
	Description   string
	BudgetRange   *string
	DurationWeeks *int
}

func (in ConsultancyInput) validate() error {
	return requireFields(map[string]string{
		"topic":       in.Topic,
		"industry":    in.Industry,
		"description": in.Description,
	})
}

// TurnkeyInput holds the validated turnkey project inquiry payload.
type TurnkeyInput struct {
	ProjectName     string
	ProjectScope    string
	Location        string
	EstimatedBudget *string
	TargetDate      *time.Time
}

func (in TurnkeyInput) validate() error {
	return requireFields(map[string]string{
		"project_name":  in.ProjectName,
		"project_scope": in.ProjectScope,
		"location":      in.Location,
	})
}

// AcquisitionInput holds the validated acquisition inquiry payload.
type AcquisitionInput struct {
	TargetKind  string
	Description string
	BudgetRange *string
	Region      *string
}

func (in AcquisitionInput) validate() error {
	return requireFields(map[string]string{
		"target_kind": in.TargetKind,
		"description": in.Description,
	})
}

// ManpowerInput holds the validated manpower inquiry payload.
type ManpowerInput struct {
	PositionTitle  string
	HeadCount      int
	SkillsRequired string
	Location       string
	ContractType   *string
}

func (in ManpowerInput) validate() error {
	if err := requireFields(map[string]string{
		"position_title":  in.PositionTitle,
		"skills_required": in.SkillsRequired,
		"location":        in.Location,
	}); err != nil {
		return err
	}
	if in.HeadCount < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "head_count must be at least 1")
	}
	return nil
}

// JobSeekerInput holds the validated job seeker payload. CVURL points at an
// already stored blob; the media service runs before this.
type JobSeekerInput struct {
	FullName        string
	Profession      string
	YearsExperience int
	Summary         *string
	CVURL           *string
}

func (in JobSeekerInput) validate() error {
	if err := requireFields(map[string]string{
		"full_name":  in.FullName,
		"profession": in.Profession,
	}); err != nil {
		return err
	}
	if in.YearsExperience < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "years_experience cannot be negative")
	}
	return nil
}

// ListInput holds admin listing parameters.
type ListInput struct {
	Pagination  pagination.Params
	ServiceType *enums.ServiceType
	Status      *enums.ServiceStatus
	AssignedTo  *uuid.UUID
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	users    userLoader
}

// NewService constructs a service request service instance.
func NewService(repo *Repository, dbClient *db.Client, users userLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("service repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, dbClient: dbClient, users: users}, nil
}

func (s *service) CreateMaintenance(ctx context.Context, requesterID uuid.UUID, input MaintenanceInput) (*ServiceRequestDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	detail := &models.MaintenanceDetail{
		MachineBrand:   strings.TrimSpace(input.MachineBrand),
		MachineModel:   strings.TrimSpace(input.MachineModel),
		MachineType:    input.MachineType,
		ProblemSummary: strings.TrimSpace(input.ProblemSummary),
		Location:       strings.TrimSpace(input.Location),
		PreferredDate:  input.PreferredDate,
		OnSiteRequired: input.OnSiteRequired,
	}
	return s.submit(ctx, requesterID, enums.ServiceTypeMaintenance, detail, func(request *models.ServiceRequest) {
		request.MaintenanceDetailID = &detail.ID
		request.MaintenanceDetail = detail
	})
}

func (s *service) CreateConsultancy(ctx context.Context, requesterID uuid.UUID, input ConsultancyInput) (*ServiceRequestDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	detail := &models.ConsultancyDetail{
		Topic:         strings.TrimSpace(input.Topic),
		Industry:      strings.TrimSpace(input.Industry),
		Description:   strings.TrimSpace(input.Description),
		BudgetRange:   input.BudgetRange,
		DurationWeeks: input.DurationWeeks,
	}
	return s.submit(ctx, requesterID, enums.ServiceTypeConsultancy, detail, func(request *models.ServiceRequest) {
		request.ConsultancyDetailID = &detail.ID
		request.ConsultancyDetail = detail
	})
}

func (s *service) CreateTurnkey(ctx context.Context, requesterID uuid.UUID, input TurnkeyInput) (*ServiceRequestDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	detail := &models.TurnkeyDetail{
		ProjectName:     strings.TrimSpace(input.ProjectName),
		ProjectScope:    strings.TrimSpace(input.ProjectScope),
		Location:        strings.TrimSpace(input.Location),
		EstimatedBudget: input.EstimatedBudget,
		TargetDate:      input.TargetDate,
	}
	return s.submit(ctx, requesterID, enums.ServiceTypeTurnkey, detail, func(request *models.ServiceRequest) {
		request.TurnkeyDetailID = &detail.ID
		request.TurnkeyDetail = detail
	})
}

func (s *service) CreateAcquisition(ctx context.Context, requesterID uuid.UUID, input AcquisitionInput) (*ServiceRequestDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	detail := &models.AcquisitionDetail{
		TargetKind:  strings.TrimSpace(input.TargetKind),
		Description: strings.TrimSpace(input.Description),
		BudgetRange: input.BudgetRange,
		Region:      input.Region,
	}
	return s.submit(ctx, requesterID, enums.ServiceTypeAcquisition, detail, func(request *models.ServiceRequest) {
		request.AcquisitionDetailID = &detail.ID
		request.AcquisitionDetail = detail
	})
}

func (s *service) CreateManpower(ctx context.Context, requesterID uuid.UUID, input ManpowerInput) (*ServiceRequestDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	detail := &models.ManpowerDetail{
		PositionTitle:  strings.TrimSpace(input.PositionTitle),
		HeadCount:      input.HeadCount,
		SkillsRequired: strings.TrimSpace(input.SkillsRequired),
		Location:       strings.TrimSpace(input.Location),
		ContractType:   input.ContractType,
	}
	return s.submit(ctx, requesterID, enums.ServiceTypeManpower, detail, func(request *models.ServiceRequest) {
		request.ManpowerDetailID = &detail.ID
		request.ManpowerDetail = detail
	})
}

func (s *service) CreateJobSeeker(ctx context.Context, requesterID uuid.UUID, input JobSeekerInput) (*ServiceRequestDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	detail := &models.JobSeekerDetail{
		FullName:        strings.TrimSpace(input.FullName),
		Profession:      strings.TrimSpace(input.Profession),
		YearsExperience: input.YearsExperience,
		Summary:         input.Summary,
		CVURL:           input.CVURL,
	}
	return s.submit(ctx, requesterID, enums.ServiceTypeJobSeeker, detail, func(request *models.ServiceRequest) {
		request.JobSeekerDetailID = &detail.ID
		request.JobSeekerDetail = detail
	})
}

// submit creates the detail row, the envelope pointing at it, and the first
// audit entry in one transaction. A failure anywhere leaves no partial rows.
func (s *service) submit(ctx context.Context, requesterID uuid.UUID, serviceType enums.ServiceType, detail any, attach func(*models.ServiceRequest)) (*ServiceRequestDTO, error) {
	request := &models.ServiceRequest{
		ServiceType: serviceType,
		Status:      enums.ServiceStatusSubmitted,
		RequesterID: requesterID,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateDetail(ctx, detail); err != nil {
			return fmt.Errorf("insert %s detail: %w", serviceType, err)
		}
		attach(request)
		if _, err := txRepo.CreateEnvelope(ctx, request); err != nil {
			return fmt.Errorf("insert service request: %w", err)
		}
		return txRepo.AppendActionLog(ctx, &models.ServiceActionLog{
			ServiceRequestID: request.ID,
			ActorID:          requesterID,
			Action:           "submitted",
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create service request")
	}

	return newServiceRequestDTO(request), nil
}

func (s *service) ListMine(ctx context.Context, requesterID uuid.UUID) ([]ServiceRequestDTO, error) {
	rows, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list service requests")
	}
	dtos := make([]ServiceRequestDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *newServiceRequestDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ServiceRequestDTO, error) {
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return newServiceRequestDTO(request), nil
}

func (s *service) ListAdmin(ctx context.Context, input ListInput) (*ServiceRequestListDTO, error) {
	result, err := s.repo.List(ctx, listQuery{
		Pagination:  input.Pagination,
		ServiceType: input.ServiceType,
		Status:      input.Status,
		AssignedTo:  input.AssignedTo,
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list service requests")
	}
	dtos := make([]ServiceRequestDTO, 0, len(result.Requests))
	for i := range result.Requests {
		dtos = append(dtos, *newServiceRequestDTO(&result.Requests[i]))
	}
	return &ServiceRequestListDTO{Requests: dtos, NextCursor: result.NextCursor}, nil
}

// UpdateStatus sets any valid status from any other. The lifecycle is
// deliberately unguarded; the audit trail records who moved it where.
func (s *service) UpdateStatus(ctx context.Context, id, actorID uuid.UUID, target enums.ServiceStatus) (*ServiceRequestDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service status")
	}

	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := request.Status
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateStatus(ctx, id, target); err != nil {
			return err
		}
		return txRepo.AppendActionLog(ctx, &models.ServiceActionLog{
			ServiceRequestID: id,
			ActorID:          actorID,
			Action:           fmt.Sprintf("status changed from %s to %s", previous, target),
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update service status")
	}

	request.Status = target
	request.ActionLogs = nil
	return newServiceRequestDTO(request), nil
}

// Assign sets or clears the assigned admin. A non-nil assignee must hold an
// admin role.
func (s *service) Assign(ctx context.Context, id, actorID uuid.UUID, assigneeID *uuid.UUID) (*ServiceRequestDTO, error) {
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	action := "assignment cleared"
	if assigneeID != nil {
		assignee, err := s.users.FindByID(ctx, *assigneeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignee not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignee")
		}
		if !assignee.Role.IsAdmin() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignee must be an admin")
		}
		action = fmt.Sprintf("assigned to %s", assignee.ID)
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateAssignee(ctx, id, assigneeID); err != nil {
			return err
		}
		return txRepo.AppendActionLog(ctx, &models.ServiceActionLog{
			ServiceRequestID: id,
			ActorID:          actorID,
			Action:           action,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update assignment")
	}

	request.AssignedToID = assigneeID
	request.ActionLogs = nil
	return newServiceRequestDTO(request), nil
}

// Delete removes the request, its detail row, and (via cascade) its audit
// trail. Restricted to super admins.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actorRole enums.UserRole) error {
	if actorRole != enums.UserRoleSuperAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "super admin role required")
	}

	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return err
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Delete(ctx, id); err != nil {
			return err
		}
		return deleteDetailRow(ctx, txRepo, request)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete service request")
	}
	return nil
}

func deleteDetailRow(ctx context.Context, repo *Repository, request *models.ServiceRequest) error {
	switch {
	case request.MaintenanceDetailID != nil:
		return repo.DeleteDetail(ctx, &models.MaintenanceDetail{}, *request.MaintenanceDetailID)
	case request.ConsultancyDetailID != nil:
		return repo.DeleteDetail(ctx, &models.ConsultancyDetail{}, *request.ConsultancyDetailID)
	case request.TurnkeyDetailID != nil:
		return repo.DeleteDetail(ctx, &models.TurnkeyDetail{}, *request.TurnkeyDetailID)
	case request.AcquisitionDetailID != nil:
		return repo.DeleteDetail(ctx, &models.AcquisitionDetail{}, *request.AcquisitionDetailID)
	case request.ManpowerDetailID != nil:
		return repo.DeleteDetail(ctx, &models.ManpowerDetail{}, *request.ManpowerDetailID)
	case request.JobSeekerDetailID != nil:
		return repo.DeleteDetail(ctx, &models.JobSeekerDetail{}, *request.JobSeekerDetailID)
	}
	return nil
}

func (s *service) loadRequest(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service request")
	}
	return request, nil
}

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is required", name))
		}
	}
	return nil
}
