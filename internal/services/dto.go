package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
)

// ServiceRequestDTO is the transport shape for a service request envelope.
// Exactly one of the detail fields is set, matching ServiceType.
type ServiceRequestDTO struct {
	ID           uuid.UUID           `json:"id"`
	ServiceType  enums.ServiceType   `json:"service_type"`
	Status       enums.ServiceStatus `json:"status"`
	RequesterID  uuid.UUID           `json:"requester_id"`
	AssignedToID *uuid.UUID          `json:"assigned_to_id,omitempty"`

	Maintenance *MaintenanceDTO `json:"maintenance,omitempty"`
	Consultancy *ConsultancyDTO `json:"consultancy,omitempty"`
	Turnkey     *TurnkeyDTO     `json:"turnkey,omitempty"`
	Acquisition *AcquisitionDTO `json:"acquisition,omitempty"`
	Manpower    *ManpowerDTO    `json:"manpower,omitempty"`
	JobSeeker   *JobSeekerDTO   `json:"job_seeker,omitempty"`

	ActionLogs []ActionLogDTO `json:"action_logs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaintenanceDTO mirrors the maintenance detail row.
type MaintenanceDTO struct {
	MachineBrand   string     `json:"machine_brand"`
	MachineModel   string     `json:"machine_model"`
	MachineType    *string    `json:"machine_type,omitempty"`
	ProblemSummary string     `json:"problem_summary"`
	Location       string     `json:"location"`
	PreferredDate  *time.Time `json:"preferred_date,omitempty"`
	OnSiteRequired bool       `json:"on_site_required"`
}

// ConsultancyDTO mirrors the consultancy detail row.
type ConsultancyDTO struct {
	Topic         string  `json:"topic"`
	Industry      string  `json:"industry"`
	Description   string  `json:"description"`
	BudgetRange   *string `json:"budget_range,omitempty"`
	DurationWeeks *int    `json:"duration_weeks,omitempty"`
}

// TurnkeyDTO mirrors the turnkey project detail row.
type TurnkeyDTO struct {
	ProjectName     string     `json:"project_name"`
	ProjectScope    string     `json:"project_scope"`
	Location        string     `json:"location"`
	EstimatedBudget *string    `json:"estimated_budget,omitempty"`
	TargetDate      *time.Time `json:"target_date,omitempty"`
}

// AcquisitionDTO mirrors the acquisition detail row.
type AcquisitionDTO struct {
	TargetKind  string  `json:"target_kind"`
	Description string  `json:"description"`
	BudgetRange *string `json:"budget_range,omitempty"`
	Region      *string `json:"region,omitempty"`
}

// ManpowerDTO mirrors the manpower detail row.
type ManpowerDTO struct {
	PositionTitle  string  `json:"position_title"`
	HeadCount      int     `json:"head_count"`
	SkillsRequired string  `json:"skills_required"`
	Location       string  `json:"location"`
	ContractType   *string `json:"contract_type,omitempty"`
}

// JobSeekerDTO mirrors the job seeker detail row.
type JobSeekerDTO struct {
	FullName        string  `json:"full_name"`
	Profession      string  `json:"profession"`
	YearsExperience int     `json:"years_experience"`
	Summary         *string `json:"summary,omitempty"`
	CVURL           *string `json:"cv_url,omitempty"`
}

// ActionLogDTO is one audit entry in a request's history.
type ActionLogDTO struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceRequestListDTO is one page of service requests.
type ServiceRequestListDTO struct {
	Requests   []ServiceRequestDTO `json:"requests"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

func newServiceRequestDTO(request *models.ServiceRequest) *ServiceRequestDTO {
	if request == nil {
		return nil
	}

	dto := &ServiceRequestDTO{
		ID:           request.ID,
		ServiceType:  request.ServiceType,
		Status:       request.Status,
		RequesterID:  request.RequesterID,
		AssignedToID: request.AssignedToID,
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}

	if d := request.MaintenanceDetail; d != nil {
		dto.Maintenance = &MaintenanceDTO{
			MachineBrand:   d.MachineBrand,
			MachineModel:   d.MachineModel,
			MachineType:    d.MachineType,
			ProblemSummary: d.ProblemSummary,
			Location:       d.Location,
			PreferredDate:  d.PreferredDate,
			OnSiteRequired: d.OnSiteRequired,
		}
	}
	if d := request.ConsultancyDetail; d != nil {
		dto.Consultancy = &ConsultancyDTO{
			Topic:         d.Topic,
			Industry:      d.Industry,
			Description:   d.Description,
			BudgetRange:   d.BudgetRange,
			DurationWeeks: d.DurationWeeks,
		}
	}
	if d := request.TurnkeyDetail; d != nil {
		dto.Turnkey = &TurnkeyDTO{
			ProjectName:     d.ProjectName,
			ProjectScope:    d.ProjectScope,
			Location:        d.Location,
			EstimatedBudget: d.EstimatedBudget,
			TargetDate:      d.TargetDate,
		}
	}
	if d := request.AcquisitionDetail; d != nil {
		dto.Acquisition = &AcquisitionDTO{
			TargetKind:  d.TargetKind,
			Description: d.Description,
			BudgetRange: d.BudgetRange,
			Region:      d.Region,
		}
	}
	if d := request.ManpowerDetail; d != nil {
		dto.Manpower = &ManpowerDTO{
			PositionTitle:  d.PositionTitle,
			HeadCount:      d.HeadCount,
			SkillsRequired: d.SkillsRequired,
			Location:       d.Location,
			ContractType:   d.ContractType,
		}
	}
	if d := request.JobSeekerDetail; d != nil {
		dto.JobSeeker = &JobSeekerDTO{
			FullName:        d.FullName,
			Profession:      d.Profession,
			YearsExperience: d.YearsExperience,
			Summary:         d.Summary,
			CVURL:           d.CVURL,
		}
	}

	if len(request.ActionLogs) > 0 {
		logs := make([]ActionLogDTO, 0, len(request.ActionLogs))
		for _, entry := range request.ActionLogs {
			logs = append(logs, ActionLogDTO{
				ID:        entry.ID,
				ActorID:   entry.ActorID,
				Action:    entry.Action,
				CreatedAt: entry.CreatedAt,
			})
		}
		dto.ActionLogs = logs
	}

	return dto
}
