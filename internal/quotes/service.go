package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/pagination"
	"github.com/industrahub/industrahub-backend/pkg/visibility"
)

// Service exposes quote request operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*QuoteDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]QuoteDTO, error)
	ListAdmin(ctx context.Context, input ListInput) (*QuoteListDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, target enums.QuoteStatus) (*QuoteDTO, error)
}

// CreateInput holds the validated payload to open a quote.
type CreateInput struct {
	ProductID   uuid.UUID
	CompanyName string
	Address     string
	Phone       *string
	Message     *string
}

// ListInput holds admin listing parameters.
type ListInput struct {
	Pagination pagination.Params
	Status     *enums.QuoteStatus
}

// QuoteDTO is the transport shape for a quote request.
type QuoteDTO struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	ProductID   uuid.UUID         `json:"product_id"`
	CompanyName string            `json:"company_name"`
	Address     string            `json:"address"`
	Phone       *string           `json:"phone,omitempty"`
	Message     *string           `json:"message,omitempty"`
	Status      enums.QuoteStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// QuoteListDTO is one page of quotes.
type QuoteListDTO struct {
	Quotes     []QuoteDTO `json:"quotes"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     *Repository
	products productLoader
}

// NewService constructs a quote service instance.
func NewService(repo *Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, products: products}, nil
}

// Create opens a PENDING quote against a publicly visible product. Hidden
// products read as not found so listings never leak through quotes.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*QuoteDTO, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := visibility.EnsurePubliclyVisible(product); err != nil {
		return nil, err
	}

	quote := &models.QuoteRequest{
		UserID:      userID,
		ProductID:   input.ProductID,
		CompanyName: strings.TrimSpace(input.CompanyName),
		Address:     strings.TrimSpace(input.Address),
		Phone:       input.Phone,
		Message:     input.Message,
		Status:      enums.QuoteStatusPending,
	}

	created, err := s.repo.Create(ctx, quote)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert quote")
	}
	return newQuoteDTO(created), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]QuoteDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	dtos := make([]QuoteDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *newQuoteDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) ListAdmin(ctx context.Context, input ListInput) (*QuoteListDTO, error) {
	result, err := s.repo.List(ctx, listQuery{
		Pagination: input.Pagination,
		Status:     input.Status,
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	dtos := make([]QuoteDTO, 0, len(result.Quotes))
	for i := range result.Quotes {
		dtos = append(dtos, *newQuoteDTO(&result.Quotes[i]))
	}
	return &QuoteListDTO{Quotes: dtos, NextCursor: result.NextCursor}, nil
}

// UpdateStatus moves the quote along its lifecycle. Illegal transitions are
// state conflicts, not validation errors: the payload was fine, the quote
// just isn't in a state that allows it.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, target enums.QuoteStatus) (*QuoteDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote status")
	}

	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}

	if !quote.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition quote from %s to %s", quote.Status, target))
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update quote status")
	}

	quote.Status = target
	return newQuoteDTO(quote), nil
}

func newQuoteDTO(quote *models.QuoteRequest) *QuoteDTO {
	if quote == nil {
		return nil
	}
	return &QuoteDTO{
		ID:          quote.ID,
		UserID:      quote.UserID,
		ProductID:   quote.ProductID,
		CompanyName: quote.CompanyName,
		Address:     quote.Address,
		Phone:       quote.Phone,
		Message:     quote.Message,
		Status:      quote.Status,
		CreatedAt:   quote.CreatedAt,
		UpdatedAt:   quote.UpdatedAt,
	}
}
