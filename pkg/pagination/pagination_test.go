package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{in: 0, want: DefaultLimit},
		{in: -5, want: DefaultLimit},
		{in: 7, want: 7},
		{in: MaxLimit, want: MaxLimit},
		{in: MaxLimit + 1, want: MaxLimit},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.in); got != tc.want {
			t.Fatalf("NormalizeLimit(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}

	if got := LimitWithBuffer(7); got != 8 {
		t.Fatalf("expected buffered limit 8, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	encoded := EncodeCursor(original)
	decoded, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if decoded == nil {
		t.Fatal("expected decoded cursor")
	}
	if !decoded.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("expected %v, got %v", original.CreatedAt, decoded.CreatedAt)
	}
	if decoded.ID != original.ID {
		t.Fatalf("expected %s, got %s", original.ID, decoded.ID)
	}
}

func TestParseCursorEmpty(t *testing.T) {
	cursor, err := ParseCursor("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != nil {
		t.Fatalf("expected nil cursor, got %+v", cursor)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	for _, value := range []string{
		"not-base64!!",
		"bm8tcGlwZQ",           // decodes without a separator
		"MjAyNXxub3QtYS11dWlk", // bad timestamp and id
	} {
		_, err := ParseCursor(value)
		if err == nil {
			t.Fatalf("expected error for cursor %q", value)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for cursor %q, got %v", value, err)
		}
	}
}
