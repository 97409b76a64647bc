package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	"github.com/industrahub/industrahub-backend/pkg/pagination"
)

// Repository wires together service request persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the envelope with its detail row and action logs.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.db.WithContext(ctx).
		Preload("MaintenanceDetail").
		Preload("ConsultancyDetail").
		Preload("TurnkeyDetail").
		Preload("AcquisitionDetail").
		Preload("ManpowerDetail").
		Preload("JobSeekerDetail").
		Preload("ActionLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&request, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateDetail inserts any of the six detail row types.
func (r *Repository) CreateDetail(ctx context.Context, detail any) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

// CreateEnvelope inserts the service request row.
func (r *Repository) CreateEnvelope(ctx context.Context, request *models.ServiceRequest) (*models.ServiceRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// AppendActionLog writes one immutable audit row.
func (r *Repository) AppendActionLog(ctx context.Context, log *models.ServiceActionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// UpdateStatus persists a status change on the envelope.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ServiceStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// UpdateAssignee sets or clears the assigned admin.
func (r *Repository) UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("id = ?", id).
		Update("assigned_to_id", assigneeID).
		Error
}

// Delete removes the envelope. Action logs cascade at the database; detail
// rows are removed explicitly by the service layer.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ServiceRequest{}).Error
}

// DeleteDetail removes a detail row of any of the six types.
func (r *Repository) DeleteDetail(ctx context.Context, detail any, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(detail).Error
}

// ListByRequester returns the requester's envelopes with details, newest first.
func (r *Repository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]models.ServiceRequest, error) {
	var rows []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Preload("MaintenanceDetail").
		Preload("ConsultancyDetail").
		Preload("TurnkeyDetail").
		Preload("AcquisitionDetail").
		Preload("ManpowerDetail").
		Preload("JobSeekerDetail").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

type listQuery struct {
	Pagination  pagination.Params
	ServiceType *enums.ServiceType
	Status      *enums.ServiceStatus
	AssignedTo  *uuid.UUID
}

// ListResult carries one page of envelopes plus the cursor for the next page.
type ListResult struct {
	Requests   []models.ServiceRequest
	NextCursor string
}

func (r *Repository) List(ctx context.Context, query listQuery) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).Model(&models.ServiceRequest{}).
		Preload("MaintenanceDetail").
		Preload("ConsultancyDetail").
		Preload("TurnkeyDetail").
		Preload("AcquisitionDetail").
		Preload("ManpowerDetail").
		Preload("JobSeekerDetail")

	if query.ServiceType != nil {
		qb = qb.Where("service_type = ?", *query.ServiceType)
	}
	if query.Status != nil {
		qb = qb.Where("status = ?", *query.Status)
	}
	if query.AssignedTo != nil {
		qb = qb.Where("assigned_to_id = ?", *query.AssignedTo)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var rows []models.ServiceRequest
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &ListResult{
		Requests:   rows,
		NextCursor: nextCursor,
	}, nil
}
