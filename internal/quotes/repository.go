package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	"github.com/industrahub/industrahub-backend/pkg/pagination"
)

// Repository wires together quote request persistence helpers.
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

// FindByID loads the quote request by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	var quote models.QuoteRequest
	if err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// Create inserts a new quote request row.
func (r *Repository) Create(ctx context.Context, quote *models.QuoteRequest) (*models.QuoteRequest, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// UpdateStatus persists a status change on the quote.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.QuoteRequest{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// ListByUser returns the requester's quotes newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QuoteRequest, error) {
	var rows []models.QuoteRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

type listQuery struct {
	Pagination pagination.Params
	Status     *enums.QuoteStatus
}

// ListResult carries one page of quotes plus the cursor for the next page.
type ListResult struct {
	Quotes     []models.QuoteRequest
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

	qb := r.db.WithContext(ctx).Model(&models.QuoteRequest{})
	if query.Status != nil {
		qb = qb.Where("status = ?", *query.Status)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var rows []models.QuoteRequest
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
		Quotes:     rows,
		NextCursor: nextCursor,
	}, nil
}
