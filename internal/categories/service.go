package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/industrahub/industrahub-backend/pkg/db"
	"github.com/industrahub/industrahub-backend/pkg/db/models"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
)

// Service exposes category management operations.
type Service interface {
	LookupOrCreate(ctx context.Context, name string) (*CategoryDTO, error)
	List(ctx context.Context) ([]CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryDTO is the transport shape for a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a category service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// LookupOrCreate returns the existing category with the given name or creates
// it. The lookup and insert are separate statements; under a concurrent
// create the unique index rejects the loser and we re-read the winner.
func (s *service) LookupOrCreate(ctx context.Context, name string) (*CategoryDTO, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	existing, err := s.repo.FindByName(ctx, trimmed)
	if err == nil {
		return newCategoryDTO(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup category")
	}

	created, err := s.repo.Create(ctx, &models.Category{Name: trimmed})
	if err != nil {
		// lost the race: the name now exists, return the winner
		if winner, findErr := s.repo.FindByName(ctx, trimmed); findErr == nil {
			return newCategoryDTO(winner), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return newCategoryDTO(created), nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *newCategoryDTO(&rows[i]))
	}
	return dtos, nil
}

// Delete removes an unused category. Categories still referenced by products
// cannot be removed.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "category has products")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func newCategoryDTO(category *models.Category) *CategoryDTO {
	if category == nil {
		return nil
	}
	return &CategoryDTO{ID: category.ID, Name: category.Name}
}
