package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

func do(t *testing.T, s *Server, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Options{Secret: "secret", Logger: zerolog.Nop()})
}

func TestSignup_Success(t *testing.T) {
	s := newTestServer(t)
	rec, resp := do(t, s, http.MethodPost, "/auth/signup", "",
		`{"name":"Alexandra Montgomery Smith","email":"alex@example.com","password":"Secret#123","address":"12 Park Lane","role":"user"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if tok, _ := resp["token"].(string); tok == "" {
		t.Fatal("expected token in response")
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "user" || user["email"] != "alex@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestSignup_Validation(t *testing.T) {
	s := newTestServer(t)
	rec, resp := do(t, s, http.MethodPost, "/auth/signup", "",
		`{"name":"Too Short","email":"alex@example.com","password":"Secret#123"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg, _ := resp["error"].(string); !strings.Contains(msg, "name must be at least 20 characters") {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"Alexandra Montgomery Smith","email":"alex@example.com","password":"Secret#123"}`
	do(t, s, http.MethodPost, "/auth/signup", "", body)
	rec, resp := do(t, s, http.MethodPost, "/auth/signup", "", body)

	if rec.Code != http.StatusBadRequest || resp["error"] != "User already exists" {
		t.Fatalf("expected duplicate rejection, got %d %v", rec.Code, resp)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.SeedUser(domain.NewUser{Name: "n", Email: "a@x.io", Password: "Secret#123", Role: domain.RoleUser}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, resp := do(t, s, http.MethodPost, "/auth/login", "", `{"email":"a@x.io","password":"wrong"}`)
	if rec.Code != http.StatusBadRequest || resp["error"] != "Invalid credentials" {
		t.Fatalf("expected 400 invalid credentials, got %d %v", rec.Code, resp)
	}

	rec, resp = do(t, s, http.MethodPost, "/auth/login", "", `{"email":"a@x.io","password":"Secret#123"}`)
	if rec.Code != http.StatusOK || resp["token"] == nil {
		t.Fatalf("expected successful login, got %d %v", rec.Code, resp)
	}
}

func TestLogin_InvalidPayload(t *testing.T) {
	s := newTestServer(t)
	rec, _ := do(t, s, http.MethodPost, "/auth/login", "", "{")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdatePassword(t *testing.T) {
	s := newTestServer(t)
	u, _ := s.SeedUser(domain.NewUser{Name: "n", Email: "a@x.io", Password: "Secret#123", Role: domain.RoleUser})
	token, _ := s.Token(u, time.Hour)

	rec, resp := do(t, s, http.MethodPatch, "/auth/update-password", token, `{"currentPassword":"nope","newPassword":"Better#456"}`)
	if rec.Code != http.StatusBadRequest || resp["error"] != "Current password is incorrect" {
		t.Fatalf("expected wrong password rejection, got %d %v", rec.Code, resp)
	}

	rec, _ = do(t, s, http.MethodPatch, "/auth/update-password", token, `{"currentPassword":"Secret#123","newPassword":"Better#456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	rec, _ = do(t, s, http.MethodPost, "/auth/login", "", `{"email":"a@x.io","password":"Better#456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected login with new password, got %d", rec.Code)
	}
}

func TestRoutes_RequireMatchingRole(t *testing.T) {
	s := newTestServer(t)
	u, _ := s.SeedUser(domain.NewUser{Name: "n", Email: "u@x.io", Password: "Secret#123", Role: domain.RoleUser})
	token, _ := s.Token(u, time.Hour)

	if rec, _ := do(t, s, http.MethodGet, "/admin/dashboard", token, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user on admin route, got %d", rec.Code)
	}
	if rec, _ := do(t, s, http.MethodGet, "/user/stores", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	expired, _ := s.Token(u, -time.Minute)
	if rec, _ := do(t, s, http.MethodGet, "/user/stores", expired, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with expired token, got %d", rec.Code)
	}
}

func TestRatings_CreateThenUpdate(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.SeedUser(domain.NewUser{Name: "o", Email: "o@x.io", Password: "Secret#123", Role: domain.RoleOwner})
	u, _ := s.SeedUser(domain.NewUser{Name: "u", Email: "u@x.io", Password: "Secret#123", Role: domain.RoleUser})
	st, err := s.SeedStore(domain.NewStore{Name: "Corner Cafe", Email: "cafe@x.io", OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	token, _ := s.Token(u, time.Hour)

	if rec, _ := do(t, s, http.MethodPatch, "/user/ratings/1", token, `{"rating":3}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating a missing rating, got %d", rec.Code)
	}
	if rec, _ := do(t, s, http.MethodPost, "/user/ratings", token, `{"store_id":1,"rating":4}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec, resp := do(t, s, http.MethodPost, "/user/ratings", token, `{"store_id":1,"rating":5}`); rec.Code != http.StatusBadRequest || resp["error"] != "You have already rated this store" {
		t.Fatalf("expected duplicate rating rejection, got %d %v", rec.Code, resp)
	}
	if rec, _ := do(t, s, http.MethodPatch, "/user/ratings/1", token, `{"rating":2}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	stores := s.st.userStores(u.ID, "")
	if len(stores) != 1 || stores[0].ID != st.ID || *stores[0].UserRating != 2 || stores[0].RatingCount != 1 {
		t.Fatalf("unexpected stores %+v", stores)
	}
}

func TestFailNext_IsOneShot(t *testing.T) {
	s := newTestServer(t)
	s.FailNext(http.MethodPost, "/auth/login", http.StatusInternalServerError, "db down")

	rec, resp := do(t, s, http.MethodPost, "/auth/login", "", `{"email":"a@x.io","password":"x"}`)
	if rec.Code != http.StatusInternalServerError || resp["error"] != "db down" {
		t.Fatalf("expected injected failure, got %d %v", rec.Code, resp)
	}
	rec, _ = do(t, s, http.MethodPost, "/auth/login", "", `{"email":"a@x.io","password":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected normal handling afterwards, got %d", rec.Code)
	}
	if n := len(s.Requests()); n != 2 {
		t.Fatalf("expected 2 recorded requests, got %d", n)
	}
}
