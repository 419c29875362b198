package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

func TestClassify_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		outcome  Outcome
		kind     domain.FailureKind
		sentinel error
		message  string
	}{
		{
			name:     "transport error is network",
			outcome:  Outcome{Err: errors.New("dial tcp: connection refused")},
			kind:     domain.FailureNetwork,
			sentinel: domain.ErrNetwork,
			message:  "Unable to reach server. Please start the backend and try again.",
		},
		{
			name:     "401 is auth expired",
			outcome:  Outcome{Status: http.StatusUnauthorized, Body: []byte(`{"error":"Invalid token"}`)},
			kind:     domain.FailureAuthExpired,
			sentinel: domain.ErrAuthExpired,
			message:  "Invalid token",
		},
		{
			name:     "401 without body uses default message",
			outcome:  Outcome{Status: http.StatusUnauthorized},
			kind:     domain.FailureAuthExpired,
			sentinel: domain.ErrAuthExpired,
			message:  msgAuthExpired,
		},
		{
			name:     "400 with error field is validation",
			outcome:  Outcome{Status: http.StatusBadRequest, Body: []byte(`{"error":"Email already exists"}`)},
			kind:     domain.FailureValidation,
			sentinel: domain.ErrValidation,
			message:  "Email already exists",
		},
		{
			name:     "403 with message field is validation",
			outcome:  Outcome{Status: http.StatusForbidden, Body: []byte(`{"message":"Access denied"}`)},
			kind:     domain.FailureValidation,
			sentinel: domain.ErrValidation,
			message:  "Access denied",
		},
		{
			name:     "404 with no body gets generic message",
			outcome:  Outcome{Status: http.StatusNotFound, Body: []byte("<html>not found</html>")},
			kind:     domain.FailureValidation,
			sentinel: domain.ErrValidation,
			message:  msgValidation,
		},
		{
			name:     "500 is server",
			outcome:  Outcome{Status: http.StatusInternalServerError, Body: []byte(`{"error":"db down"}`)},
			kind:     domain.FailureServer,
			sentinel: domain.ErrServer,
			message:  "db down",
		},
		{
			name:     "unexpected 3xx is server",
			outcome:  Outcome{Status: http.StatusNotModified},
			kind:     domain.FailureServer,
			sentinel: domain.ErrServer,
			message:  msgServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(tt.outcome)
			if f.Kind != tt.kind {
				t.Fatalf("expected kind %s, got %s", tt.kind, f.Kind)
			}
			if !errors.Is(f, tt.sentinel) {
				t.Fatalf("expected errors.Is(%v) to hold", tt.sentinel)
			}
			if f.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, f.Message)
			}
			if tt.outcome.Err == nil && f.Status != tt.outcome.Status {
				t.Fatalf("expected status %d, got %d", tt.outcome.Status, f.Status)
			}
		})
	}
}

func TestClassify_OnlyAuthExpiredRedirects(t *testing.T) {
	if got := Classify(Outcome{Status: http.StatusUnauthorized}).Redirect; got != domain.RouteLogin {
		t.Fatalf("expected redirect %q, got %q", domain.RouteLogin, got)
	}
	for _, o := range []Outcome{
		{Err: errors.New("timeout")},
		{Status: http.StatusBadRequest},
		{Status: http.StatusBadGateway},
	} {
		if got := Classify(o).Redirect; got != "" {
			t.Fatalf("expected no redirect for %+v, got %q", o, got)
		}
	}
}

func TestServerMessage_ValidatorArray(t *testing.T) {
	body := []byte(`{"errors":[{"msg":"Name must be 20-60 characters"},{"message":"Invalid email"},"Address too long"]}`)
	want := "Name must be 20-60 characters; Invalid email; Address too long"
	if got := serverMessage(body); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
