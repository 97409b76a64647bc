package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceActionLog is an append-only audit row written on every service
// request status change or assignment. Rows are never mutated or deleted;
// the action text is descriptive, not a replayable event.
type ServiceActionLog struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceRequestID uuid.UUID `gorm:"column:service_request_id;type:uuid;not null"`
	ActorID          uuid.UUID `gorm:"column:actor_id;type:uuid;not null"`
	Action           string    `gorm:"column:action;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}
