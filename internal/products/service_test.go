package products

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
)

func validCreateInput() CreateInput {
	return CreateInput{
		Title:        "Surface grinder",
		Description:  "Lightly used surface grinder",
		Price:        decimal.NewFromInt(4200),
		Quantity:     2,
		Condition:    enums.ProductConditionUsed,
		ProductType:  enums.ProductTypeMachinery,
		CategoryName: "Grinding",
	}
}

func TestValidateCreate(t *testing.T) {
	if err := validateCreate(validCreateInput()); err != nil {
		t.Fatalf("unexpected error for valid input: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"blank title", func(in *CreateInput) { in.Title = "   " }},
		{"blank description", func(in *CreateInput) { in.Description = "" }},
		{"negative price", func(in *CreateInput) { in.Price = decimal.NewFromInt(-1) }},
		{"negative quantity", func(in *CreateInput) { in.Quantity = -1 }},
		{"bad condition", func(in *CreateInput) { in.Condition = "MINT" }},
		{"bad product type", func(in *CreateInput) { in.ProductType = "FURNITURE" }},
		{"bad machine type", func(in *CreateInput) {
			bad := enums.MachineType("TOASTER")
			in.MachineType = &bad
		}},
		{"bad status", func(in *CreateInput) { in.Status = "MISSING" }},
		{"blank category", func(in *CreateInput) { in.CategoryName = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)
			err := validateCreate(input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestApplyUpdateMutatesOnlyProvidedFields(t *testing.T) {
	product := &models.Product{
		Title:       "Old title",
		Description: "Old description",
		Price:       decimal.NewFromInt(100),
		Quantity:    5,
		Condition:   enums.ProductConditionNew,
		Status:      enums.ProductStatusAvailable,
		ProductType: enums.ProductTypeEquipment,
	}

	title := "  New title  "
	price := decimal.NewFromInt(250)
	if err := applyUpdate(product, UpdateInput{Title: &title, Price: &price}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if product.Title != "New title" {
		t.Fatalf("expected trimmed title, got %q", product.Title)
	}
	if !product.Price.Equal(price) {
		t.Fatalf("expected updated price, got %s", product.Price)
	}
	if product.Description != "Old description" || product.Quantity != 5 {
		t.Fatal("expected untouched fields to survive")
	}
}

func TestApplyUpdateClearsMachineType(t *testing.T) {
	lathe := enums.MachineTypeLathe
	product := &models.Product{
		ProductType: enums.ProductTypeMachinery,
		MachineType: &lathe,
	}

	if err := applyUpdate(product, UpdateInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.MachineType == nil || *product.MachineType != lathe {
		t.Fatal("expected an absent machine_type to leave the value alone")
	}

	cnc := enums.MachineTypeCNC
	if err := applyUpdate(product, UpdateInput{MachineType: &cnc}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.MachineType == nil || *product.MachineType != cnc {
		t.Fatalf("expected CNC, got %v", product.MachineType)
	}

	if err := applyUpdate(product, UpdateInput{ClearMachineType: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.MachineType != nil {
		t.Fatalf("expected machine_type cleared, got %v", *product.MachineType)
	}
}

func TestApplyUpdateRejectsBadValues(t *testing.T) {
	negative := decimal.NewFromInt(-5)
	badQuantity := -1
	badStatus := enums.ProductStatus("GONE")

	cases := []struct {
		name  string
		input UpdateInput
	}{
		{"negative price", UpdateInput{Price: &negative}},
		{"negative quantity", UpdateInput{Quantity: &badQuantity}},
		{"bad status", UpdateInput{Status: &badStatus}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := &models.Product{Price: decimal.NewFromInt(10)}
			err := applyUpdate(product, tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestEncodeSpecifications(t *testing.T) {
	if encodeSpecifications(nil) != nil {
		t.Fatal("expected nil for empty specs")
	}
	if encodeSpecifications(map[string]any{}) != nil {
		t.Fatal("expected nil for empty map")
	}

	raw := encodeSpecifications(map[string]any{"voltage": 400})
	if raw == nil {
		t.Fatal("expected encoded specs")
	}
	if *raw != `{"voltage":400}` {
		t.Fatalf("unexpected encoding: %s", *raw)
	}
}
