package enums

import "testing"

func TestQuoteStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from QuoteStatus
		to   QuoteStatus
		want bool
	}{
		{QuoteStatusPending, QuoteStatusReviewed, true},
		{QuoteStatusReviewed, QuoteStatusCompleted, true},
		{QuoteStatusPending, QuoteStatusCancelled, true},
		{QuoteStatusReviewed, QuoteStatusCancelled, true},
		{QuoteStatusCompleted, QuoteStatusCancelled, true},

		{QuoteStatusPending, QuoteStatusCompleted, false},
		{QuoteStatusReviewed, QuoteStatusPending, false},
		{QuoteStatusCompleted, QuoteStatusReviewed, false},
		{QuoteStatusCancelled, QuoteStatusPending, false},
		{QuoteStatusCancelled, QuoteStatusCancelled, false},
		{QuoteStatusPending, QuoteStatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestParseQuoteStatus(t *testing.T) {
	status, err := ParseQuoteStatus("REVIEWED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != QuoteStatusReviewed {
		t.Fatalf("expected REVIEWED, got %s", status)
	}

	if _, err := ParseQuoteStatus("reviewed"); err == nil {
		t.Fatal("expected error for lowercase input")
	}
	if _, err := ParseQuoteStatus("ARCHIVED"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
