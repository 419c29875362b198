package fakeapi

import (
	"net/http"
	"testing"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

func TestHealth(t *testing.T) {
	s := New(Options{Secret: "secret", Prefix: "/api"})

	if rec, resp := do(t, s, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK || resp["status"] != "ok" {
		t.Fatalf("liveness: %d %v", rec.Code, resp)
	}
	if rec, resp := do(t, s, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusServiceUnavailable || resp["status"] != "degraded" {
		t.Fatalf("readiness without admin: %d %v", rec.Code, resp)
	}

	if _, err := s.SeedUser(domain.NewUser{Name: "a", Email: "admin@roxiler.com", Password: "Admin@123", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec, resp := do(t, s, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK || resp["users"] != float64(1) {
		t.Fatalf("readiness: %d %v", rec.Code, resp)
	}
}
