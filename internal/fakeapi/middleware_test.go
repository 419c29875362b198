package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		if id, _ := c.Get(ctxUserID).(int64); id != 7 {
			t.Fatalf("user id not set, got %v", c.Get(ctxUserID))
		}
		if role, _ := c.Get(ctxRole).(domain.Role); role != domain.RoleOwner {
			t.Fatalf("role not set, got %v", c.Get(ctxRole))
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := sign(t, jwt.MapClaims{"id": 7, "role": "owner", "exp": time.Now().Add(time.Hour).Unix()}, "secret")
	rec, called := runAuth(t, "Bearer "+token)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run with 200, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"garbage token":  "Bearer not-a-token",
		"wrong secret":   "Bearer " + sign(t, jwt.MapClaims{"id": 7, "role": "owner"}, "other"),
		"expired":        "Bearer " + sign(t, jwt.MapClaims{"id": 7, "role": "owner", "exp": time.Now().Add(-time.Minute).Unix()}, "secret"),
		"unknown role":   "Bearer " + sign(t, jwt.MapClaims{"id": 7, "role": "root"}, "secret"),
		"missing id":     "Bearer " + sign(t, jwt.MapClaims{"role": "owner"}, "secret"),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called := runAuth(t, header)
			if called {
				t.Fatal("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
