package fakeapi

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// Auth validates the bearer JWT and injects the user id and role into the
// context. Any problem with the credential is a 401.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			id, _ := claims["id"].(float64)
			role, _ := claims["role"].(string)
			if id <= 0 || !domain.Role(role).Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ctxUserID, int64(id))
			c.Set(ctxRole, domain.Role(role))
			return next(c)
		}
	}
}

// Recorded is one request as the fake backend received it.
type Recorded struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          []byte
}

// record captures every request before routing so tests can assert on what
// the client actually sent.
func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:        req.Method,
			Path:          req.URL.Path,
			Query:         req.URL.RawQuery,
			Authorization: req.Header.Get("Authorization"),
			RequestID:     req.Header.Get(echo.HeaderXRequestID),
			Body:          body,
		})
		s.mu.Unlock()
		return next(c)
	}
}

// injectFailures answers with a queued failure instead of the real handler.
func (s *Server) injectFailures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + c.Request().URL.Path
		s.mu.Lock()
		queue := s.failures[key]
		var f *failure
		if len(queue) > 0 {
			f, s.failures[key] = &queue[0], queue[1:]
		}
		s.mu.Unlock()

		if f != nil {
			return c.JSON(f.status, errorResponse{Error: f.message})
		}
		return next(c)
	}
}
