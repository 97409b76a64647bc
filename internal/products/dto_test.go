package products

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
)

func sampleProduct(productType enums.ProductType) *models.Product {
	approved := enums.SubmissionStatusApproved
	return &models.Product{
		ID:               uuid.New(),
		Title:            "Horizontal boring mill",
		Description:      "Refurbished 2018 unit",
		Price:            decimal.NewFromFloat(125000.50),
		Quantity:         1,
		Condition:        enums.ProductConditionRefurbished,
		Status:           enums.ProductStatusAvailable,
		SubmissionStatus: &approved,
		ProductType:      productType,
		ImageURLs:        []string{"https://cdn.example.com/a.jpg"},
		CreatorID:        uuid.New(),
		CategoryID:       uuid.New(),
		Category:         &models.Category{Name: "Machining"},
	}
}

func TestNewPublicProductDTOHidesMachineryPrice(t *testing.T) {
	dto := NewPublicProductDTO(sampleProduct(enums.ProductTypeMachinery))
	if dto == nil {
		t.Fatal("expected dto")
	}
	if dto.Price != nil {
		t.Fatalf("expected machinery price to be withheld, got %s", *dto.Price)
	}
	if dto.SubmissionStatus != nil {
		t.Fatal("expected moderation state to be withheld publicly")
	}
	if dto.CategoryName != "Machining" {
		t.Fatalf("expected category name, got %q", dto.CategoryName)
	}
}

func TestNewPublicProductDTOKeepsSparePartPrice(t *testing.T) {
	dto := NewPublicProductDTO(sampleProduct(enums.ProductTypeSparePart))
	if dto.Price == nil {
		t.Fatal("expected spare part price to be present")
	}
	if *dto.Price != "125000.50" {
		t.Fatalf("expected two decimal places, got %s", *dto.Price)
	}
}

func TestNewAdminProductDTOKeepsEverything(t *testing.T) {
	dto := NewAdminProductDTO(sampleProduct(enums.ProductTypeMachinery))
	if dto.Price == nil {
		t.Fatal("expected admin view to include machinery price")
	}
	if dto.SubmissionStatus == nil || *dto.SubmissionStatus != enums.SubmissionStatusApproved {
		t.Fatalf("expected submission status, got %v", dto.SubmissionStatus)
	}
}

func TestNewProductDTONilInput(t *testing.T) {
	if NewPublicProductDTO(nil) != nil {
		t.Fatal("expected nil dto for nil product")
	}
	if NewAdminProductDTO(nil) != nil {
		t.Fatal("expected nil dto for nil product")
	}
}

func TestParseSpecifications(t *testing.T) {
	valid := `{"power_kw": 45, "axis_count": 5}`
	specs := parseSpecifications(&valid)
	if specs == nil {
		t.Fatal("expected parsed specifications")
	}
	if specs["axis_count"] != float64(5) {
		t.Fatalf("unexpected axis_count: %v", specs["axis_count"])
	}

	broken := `{"power_kw": `
	if parseSpecifications(&broken) != nil {
		t.Fatal("expected unparseable payload to be dropped")
	}

	empty := ""
	if parseSpecifications(&empty) != nil {
		t.Fatal("expected empty payload to produce nil")
	}
	if parseSpecifications(nil) != nil {
		t.Fatal("expected nil payload to produce nil")
	}
}
