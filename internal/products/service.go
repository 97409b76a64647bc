package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/industrahub/industrahub-backend/internal/categories"
	"github.com/industrahub/industrahub-backend/pkg/db"
	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/pagination"
	"github.com/industrahub/industrahub-backend/pkg/visibility"
)

// Service exposes product listing, submission, moderation, and admin CRUD.
type Service interface {
	ListPublic(ctx context.Context, input ListInput) (*ProductListDTO, error)
	GetPublic(ctx context.Context, id uuid.UUID) (*ProductDTO, error)

	Create(ctx context.Context, creatorID uuid.UUID, creatorRole enums.UserRole, input CreateInput) (*ProductDTO, error)

	ListAdmin(ctx context.Context, input ListInput) (*ProductListDTO, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListPendingSubmissions(ctx context.Context, input ListInput) (*ProductListDTO, error)
	ApproveSubmission(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	RejectSubmission(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
}

// ListInput holds pagination and filters for listing queries.
type ListInput struct {
	Pagination pagination.Params
	Filters    ListFilters
}

// CreateInput holds the validated payload to create a product. Media URLs
// are already stored blobs; the media service runs before this.
type CreateInput struct {
	Title             string
	Description       string
	Price             decimal.Decimal
	Quantity          int
	Condition         enums.ProductCondition
	Status            enums.ProductStatus
	ProductType       enums.ProductType
	MachineType       *enums.MachineType
	Specifications    map[string]any
	CategoryName      string
	ImageURLs         []string
	VideoURL          *string
	PDFURL            *string
	ThumbnailURL      *string
	VideoThumbnailURL *string
}

// UpdateInput holds optional mutation values for a product. A nil MachineType
// leaves the stored value alone; ClearMachineType drops it to null.
type UpdateInput struct {
	Title            *string
	Description      *string
	Price            *decimal.Decimal
	Quantity         *int
	Condition        *enums.ProductCondition
	Status           *enums.ProductStatus
	ProductType      *enums.ProductType
	MachineType      *enums.MachineType
	ClearMachineType bool
	Specifications   *map[string]any
	CategoryName     *string
}

type categoryResolver interface {
	LookupOrCreate(ctx context.Context, name string) (*categories.CategoryDTO, error)
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	categories categoryResolver
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, categorySvc categoryResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if categorySvc == nil {
		return nil, fmt.Errorf("category service required")
	}
	return &service{
		repo:       repo,
		dbClient:   dbClient,
		categories: categorySvc,
	}, nil
}

func (s *service) ListPublic(ctx context.Context, input ListInput) (*ProductListDTO, error) {
	result, err := s.repo.List(ctx, listQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
		PublicOnly: true,
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toListDTO(result, NewPublicProductDTO), nil
}

func (s *service) GetPublic(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := visibility.EnsurePubliclyVisible(product); err != nil {
		return nil, err
	}
	return NewPublicProductDTO(product), nil
}

// Create inserts a listing. Non-admin creators enter moderation: their
// products start DRAFT with submission status PENDING_APPROVAL regardless of
// the requested status.
func (s *service) Create(ctx context.Context, creatorID uuid.UUID, creatorRole enums.UserRole, input CreateInput) (*ProductDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	category, err := s.categories.LookupOrCreate(ctx, input.CategoryName)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:             strings.TrimSpace(input.Title),
		Description:       strings.TrimSpace(input.Description),
		Price:             input.Price,
		Quantity:          input.Quantity,
		Condition:         input.Condition,
		ProductType:       input.ProductType,
		MachineType:       input.MachineType,
		Specifications:    encodeSpecifications(input.Specifications),
		ImageURLs:         append([]string(nil), input.ImageURLs...),
		VideoURL:          input.VideoURL,
		PDFURL:            input.PDFURL,
		ThumbnailURL:      input.ThumbnailURL,
		VideoThumbnailURL: input.VideoThumbnailURL,
		CreatorID:         creatorID,
		CategoryID:        category.ID,
	}

	if creatorRole.IsAdmin() {
		product.Status = input.Status
		product.SubmissionStatus = nil
	} else {
		pending := enums.SubmissionStatusPending
		product.Status = enums.ProductStatusDraft
		product.SubmissionStatus = &pending
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	return s.adminDTOByID(ctx, created.ID)
}

func (s *service) ListAdmin(ctx context.Context, input ListInput) (*ProductListDTO, error) {
	result, err := s.repo.List(ctx, listQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toListDTO(result, NewAdminProductDTO), nil
}

func (s *service) GetAdmin(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewAdminProductDTO(product), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryName != nil {
		category, err := s.categories.LookupOrCreate(ctx, *input.CategoryName)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = nil
	}

	if err := applyUpdate(product, input); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return s.adminDTOByID(ctx, product.ID)
}

// Delete removes a product and relies on FK cascades for quote requests.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) ListPendingSubmissions(ctx context.Context, input ListInput) (*ProductListDTO, error) {
	pending := enums.SubmissionStatusPending
	result, err := s.repo.List(ctx, listQuery{
		Pagination:       input.Pagination,
		Filters:          input.Filters,
		SubmissionStatus: &pending,
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list submissions")
	}
	return toListDTO(result, NewAdminProductDTO), nil
}

// ApproveSubmission marks the submission APPROVED and puts the listing live.
// Concurrent approve/reject is last-write-wins.
func (s *service) ApproveSubmission(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	approved := enums.SubmissionStatusApproved
	product.SubmissionStatus = &approved
	product.Status = enums.ProductStatusAvailable

	if _, err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: approve submission")
	}
	return s.adminDTOByID(ctx, product.ID)
}

// RejectSubmission marks the submission REJECTED. Status is left untouched,
// so a rejected product keeps whatever stock state it had.
func (s *service) RejectSubmission(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	rejected := enums.SubmissionStatusRejected
	product.SubmissionStatus = &rejected

	if _, err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reject submission")
	}
	return s.adminDTOByID(ctx, product.ID)
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) loadDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) loadSubmission(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SubmissionStatus == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is not a submission")
	}
	return product, nil
}

func (s *service) adminDTOByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	detail, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewAdminProductDTO(detail), nil
}

func validateCreate(input CreateInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}
	if !input.Condition.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid condition")
	}
	if !input.ProductType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product type")
	}
	if input.MachineType != nil && !input.MachineType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid machine type")
	}
	if input.Status != "" && !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	if strings.TrimSpace(input.CategoryName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	return nil
}

func applyUpdate(product *models.Product, input UpdateInput) error {
	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
		}
		product.Quantity = *input.Quantity
	}
	if input.Condition != nil {
		if !input.Condition.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid condition")
		}
		product.Condition = *input.Condition
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		product.Status = *input.Status
	}
	if input.ProductType != nil {
		if !input.ProductType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid product type")
		}
		product.ProductType = *input.ProductType
	}
	if input.ClearMachineType {
		product.MachineType = nil
	} else if input.MachineType != nil {
		if !input.MachineType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid machine type")
		}
		product.MachineType = input.MachineType
	}
	if input.Specifications != nil {
		product.Specifications = encodeSpecifications(*input.Specifications)
	}
	return nil
}

func encodeSpecifications(specs map[string]any) *string {
	if len(specs) == 0 {
		return nil
	}
	raw, err := json.Marshal(specs)
	if err != nil {
		return nil
	}
	text := string(raw)
	return &text
}

func toListDTO(result *ListResult, mapper func(*models.Product) *ProductDTO) *ProductListDTO {
	dtos := make([]ProductDTO, 0, len(result.Products))
	for i := range result.Products {
		dtos = append(dtos, *mapper(&result.Products[i]))
	}
	return &ProductListDTO{
		Products:   dtos,
		NextCursor: result.NextCursor,
	}
}
