package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/pkg/enums"
)

// ServiceRequest is the generic envelope around exactly one of six detail
// rows. Which detail FK is set is determined by ServiceType.
type ServiceRequest struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceType  enums.ServiceType   `gorm:"column:service_type;type:text;not null"`
	Status       enums.ServiceStatus `gorm:"column:status;type:text;not null;default:'SUBMITTED'"`
	RequesterID  uuid.UUID           `gorm:"column:requester_id;type:uuid;not null"`
	AssignedToID *uuid.UUID          `gorm:"column:assigned_to_id;type:uuid"`

	MaintenanceDetailID *uuid.UUID `gorm:"column:maintenance_detail_id;type:uuid"`
	ConsultancyDetailID *uuid.UUID `gorm:"column:consultancy_detail_id;type:uuid"`
	TurnkeyDetailID     *uuid.UUID `gorm:"column:turnkey_detail_id;type:uuid"`
	AcquisitionDetailID *uuid.UUID `gorm:"column:acquisition_detail_id;type:uuid"`
	ManpowerDetailID    *uuid.UUID `gorm:"column:manpower_detail_id;type:uuid"`
	JobSeekerDetailID   *uuid.UUID `gorm:"column:job_seeker_detail_id;type:uuid"`

	MaintenanceDetail *MaintenanceDetail `gorm:"foreignKey:MaintenanceDetailID"`
	ConsultancyDetail *ConsultancyDetail `gorm:"foreignKey:ConsultancyDetailID"`
	TurnkeyDetail     *TurnkeyDetail     `gorm:"foreignKey:TurnkeyDetailID"`
	AcquisitionDetail *AcquisitionDetail `gorm:"foreignKey:AcquisitionDetailID"`
	ManpowerDetail    *ManpowerDetail    `gorm:"foreignKey:ManpowerDetailID"`
	JobSeekerDetail   *JobSeekerDetail   `gorm:"foreignKey:JobSeekerDetailID"`

	ActionLogs []ServiceActionLog `gorm:"foreignKey:ServiceRequestID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
