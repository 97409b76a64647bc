package models

import (
	"time"

	"github.com/google/uuid"
)

// MaintenanceDetail captures a machine maintenance/repair inquiry.
type MaintenanceDetail struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MachineBrand   string     `gorm:"column:machine_brand;not null"`
	MachineModel   string     `gorm:"column:machine_model;not null"`
	MachineType    *string    `gorm:"column:machine_type"`
	ProblemSummary string     `gorm:"column:problem_summary;not null"`
	Location       string     `gorm:"column:location;not null"`
	PreferredDate  *time.Time `gorm:"column:preferred_date"`
	OnSiteRequired bool       `gorm:"column:on_site_required;not null;default:true"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// ConsultancyDetail captures a consultancy engagement inquiry.
type ConsultancyDetail struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Topic         string    `gorm:"column:topic;not null"`
	Industry      string    `gorm:"column:industry;not null"`
	Description   string    `gorm:"column:description;not null"`
	BudgetRange   *string   `gorm:"column:budget_range"`
	DurationWeeks *int      `gorm:"column:duration_weeks"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TurnkeyDetail captures a turnkey project inquiry.
type TurnkeyDetail struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectName     string     `gorm:"column:project_name;not null"`
	ProjectScope    string     `gorm:"column:project_scope;not null"`
	Location        string     `gorm:"column:location;not null"`
	EstimatedBudget *string    `gorm:"column:estimated_budget"`
	TargetDate      *time.Time `gorm:"column:target_date"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// AcquisitionDetail captures a machinery/company acquisition inquiry.
type AcquisitionDetail struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TargetKind  string    `gorm:"column:target_kind;not null"`
	Description string    `gorm:"column:description;not null"`
	BudgetRange *string   `gorm:"column:budget_range"`
	Region      *string   `gorm:"column:region"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ManpowerDetail captures a staffing/hiring inquiry.
type ManpowerDetail struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PositionTitle  string    `gorm:"column:position_title;not null"`
	HeadCount      int       `gorm:"column:head_count;not null;default:1"`
	SkillsRequired string    `gorm:"column:skills_required;not null"`
	Location       string    `gorm:"column:location;not null"`
	ContractType   *string   `gorm:"column:contract_type"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// JobSeekerDetail captures an individual job-seeker profile, including the
// uploaded CV location.
type JobSeekerDetail struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FullName        string    `gorm:"column:full_name;not null"`
	Profession      string    `gorm:"column:profession;not null"`
	YearsExperience int       `gorm:"column:years_experience;not null;default:0"`
	Summary         *string   `gorm:"column:summary"`
	CVURL           *string   `gorm:"column:cv_url"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
