package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/types"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "Lathe"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %s", ct)
	}

	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if envelope.StatusCode != http.StatusOK || envelope.Message != "success" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["name"] != "Lathe" {
		t.Fatalf("unexpected data: %v", envelope.Data)
	}
}

func TestWriteSuccessStatusAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessStatus(rec, http.StatusCreated, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	WriteSuccessMessage(rec, http.StatusOK, nil, "queued")
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if envelope.Message != "queued" {
		t.Fatalf("expected custom message, got %q", envelope.Message)
	}
}

func TestWriteErrorTypedCodes(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "not found keeps its message",
			err:        pkgerrors.New(pkgerrors.CodeNotFound, "product not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "product not found",
		},
		{
			name:       "validation keeps its message",
			err:        pkgerrors.New(pkgerrors.CodeValidation, "title is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantMsg:    "title is required",
		},
		{
			name:       "dependency hides its message",
			err:        pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("dial tcp: refused"), "db: insert product"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "DEPENDENCY_ERROR",
			wantMsg:    "dependency unavailable",
		},
		{
			name:       "untyped error is internal",
			err:        errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var envelope types.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if envelope.Error.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %s", tc.wantCode, envelope.Error.Code)
			}
			if envelope.Error.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, envelope.Error.Message)
			}
		})
	}
}

func TestWriteErrorDetailsOnlyWhereAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "invalid media payload").
		WithDetails(map[string]string{"image 1": "too large"})
	WriteError(context.Background(), nil, rec, err)

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if envelope.Error.Details == nil {
		t.Fatal("expected details on a validation error")
	}

	rec = httptest.NewRecorder()
	hidden := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials").
		WithDetails(map[string]string{"secret": "leaky"})
	WriteError(context.Background(), nil, rec, hidden)

	envelope = types.ErrorEnvelope{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if envelope.Error.Details != nil {
		t.Fatal("expected details to be withheld for unauthorized errors")
	}
}
