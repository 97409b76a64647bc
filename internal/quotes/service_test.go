package quotes

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/pagination"
)

type stubProductLoader struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProductLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func openQuoteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	schema := `CREATE TABLE quote_requests (
		id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' ||
			lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
		user_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		company_name TEXT NOT NULL,
		address TEXT NOT NULL,
		phone TEXT,
		message TEXT,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at DATETIME,
		updated_at DATETIME
	)`
	if err := conn.Exec(schema).Error; err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return conn
}

func visibleProduct() *models.Product {
	return &models.Product{
		ID:          uuid.New(),
		Title:       "Band saw",
		Price:       decimal.NewFromInt(900),
		Status:      enums.ProductStatusAvailable,
		ProductType: enums.ProductTypeEquipment,
	}
}

func newQuoteService(t *testing.T, conn *gorm.DB, loader *stubProductLoader) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), loader)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestCreateQuoteForVisibleProduct(t *testing.T) {
	conn := openQuoteDB(t)
	product := visibleProduct()
	loader := &stubProductLoader{products: map[uuid.UUID]*models.Product{product.ID: product}}
	svc := newQuoteService(t, conn, loader)

	userID := uuid.New()
	dto, err := svc.Create(context.Background(), userID, CreateInput{
		ProductID:   product.ID,
		CompanyName: "  Apex Industries  ",
		Address:     "12 Mill Road",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.Status != enums.QuoteStatusPending {
		t.Fatalf("expected PENDING, got %s", dto.Status)
	}
	if dto.CompanyName != "Apex Industries" {
		t.Fatalf("expected trimmed company name, got %q", dto.CompanyName)
	}
	if dto.UserID != userID || dto.ProductID != product.ID {
		t.Fatal("expected requester and product to be recorded")
	}
}

func TestCreateQuoteValidatesInput(t *testing.T) {
	conn := openQuoteDB(t)
	svc := newQuoteService(t, conn, &stubProductLoader{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{ProductID: uuid.New(), Address: "somewhere"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing company name, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), CreateInput{ProductID: uuid.New(), CompanyName: "Apex"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing address, got %v", err)
	}
}

func TestCreateQuoteHidesInvisibleProducts(t *testing.T) {
	conn := openQuoteDB(t)

	hidden := visibleProduct()
	pending := enums.SubmissionStatusPending
	hidden.SubmissionStatus = &pending

	loader := &stubProductLoader{products: map[uuid.UUID]*models.Product{hidden.ID: hidden}}
	svc := newQuoteService(t, conn, loader)

	input := CreateInput{ProductID: hidden.ID, CompanyName: "Apex", Address: "12 Mill Road"}
	_, err := svc.Create(context.Background(), uuid.New(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for hidden product, got %v", err)
	}

	input.ProductID = uuid.New()
	_, err = svc.Create(context.Background(), uuid.New(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing product, got %v", err)
	}
}

func TestUpdateQuoteStatus(t *testing.T) {
	conn := openQuoteDB(t)
	product := visibleProduct()
	loader := &stubProductLoader{products: map[uuid.UUID]*models.Product{product.ID: product}}
	svc := newQuoteService(t, conn, loader)

	created, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		ProductID:   product.ID,
		CompanyName: "Apex",
		Address:     "12 Mill Road",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid transition persists", func(t *testing.T) {
		dto, err := svc.UpdateStatus(context.Background(), created.ID, enums.QuoteStatusReviewed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dto.Status != enums.QuoteStatusReviewed {
			t.Fatalf("expected REVIEWED, got %s", dto.Status)
		}

		reloaded, err := NewRepository(conn).FindByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if reloaded.Status != enums.QuoteStatusReviewed {
			t.Fatalf("expected persisted REVIEWED, got %s", reloaded.Status)
		}
	})

	t.Run("illegal transition is a state conflict", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), created.ID, enums.QuoteStatusPending)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("expected state conflict, got %v", err)
		}
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), created.ID, enums.QuoteStatus("ARCHIVED"))
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown quote is not found", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.QuoteStatusReviewed)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestListAdminRejectsMalformedCursor(t *testing.T) {
	conn := openQuoteDB(t)
	svc := newQuoteService(t, conn, &stubProductLoader{})

	for _, cursor := range []string{"!!not-base64!!", "bm8tcGlwZQ"} {
		_, err := svc.ListAdmin(context.Background(), ListInput{
			Pagination: pagination.Params{Limit: 10, Cursor: cursor},
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for cursor %q, got %v", cursor, err)
		}
	}
}

func TestListMineReturnsOnlyRequestersQuotes(t *testing.T) {
	conn := openQuoteDB(t)
	product := visibleProduct()
	loader := &stubProductLoader{products: map[uuid.UUID]*models.Product{product.ID: product}}
	svc := newQuoteService(t, conn, loader)

	mine := uuid.New()
	other := uuid.New()
	for _, userID := range []uuid.UUID{mine, other, mine} {
		if _, err := svc.Create(context.Background(), userID, CreateInput{
			ProductID:   product.ID,
			CompanyName: "Apex",
			Address:     "12 Mill Road",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	quotes, err := svc.ListMine(context.Background(), mine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	for _, quote := range quotes {
		if quote.UserID != mine {
			t.Fatalf("expected only the requester's quotes, got user %s", quote.UserID)
		}
	}
}
