package visibility

import (
	"testing"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
)

func submissionPtr(s enums.SubmissionStatus) *enums.SubmissionStatus {
	return &s
}

func TestIsPubliclyVisible(t *testing.T) {
	cases := []struct {
		name    string
		product *models.Product
		want    bool
	}{
		{
			name: "availableNoSubmission",
			product: &models.Product{
				Status: enums.ProductStatusAvailable,
			},
			want: true,
		},
		{
			name: "availableApproved",
			product: &models.Product{
				Status:           enums.ProductStatusAvailable,
				SubmissionStatus: submissionPtr(enums.SubmissionStatusApproved),
			},
			want: true,
		},
		{
			name: "availablePending",
			product: &models.Product{
				Status:           enums.ProductStatusAvailable,
				SubmissionStatus: submissionPtr(enums.SubmissionStatusPending),
			},
			want: false,
		},
		{
			name: "availableRejected",
			product: &models.Product{
				Status:           enums.ProductStatusAvailable,
				SubmissionStatus: submissionPtr(enums.SubmissionStatusRejected),
			},
			want: false,
		},
		{
			name: "draftApproved",
			product: &models.Product{
				Status:           enums.ProductStatusDraft,
				SubmissionStatus: submissionPtr(enums.SubmissionStatusApproved),
			},
			want: false,
		},
		{
			name: "nilProduct",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsPubliclyVisible(tc.product); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEnsurePubliclyVisibleReadsAsNotFound(t *testing.T) {
	hidden := &models.Product{
		Status:           enums.ProductStatusAvailable,
		SubmissionStatus: submissionPtr(enums.SubmissionStatusPending),
	}

	err := EnsurePubliclyVisible(hidden)
	if err == nil {
		t.Fatal("expected error for hidden product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}

	if err := EnsurePubliclyVisible(&models.Product{Status: enums.ProductStatusAvailable}); err != nil {
		t.Fatalf("expected visible product to pass, got %v", err)
	}
}

func TestPriceHidden(t *testing.T) {
	if !PriceHidden(&models.Product{ProductType: enums.ProductTypeMachinery}) {
		t.Fatal("expected machinery price to be hidden")
	}
	if PriceHidden(&models.Product{ProductType: enums.ProductTypeSparePart}) {
		t.Fatal("expected non-machinery price to be shown")
	}
}
