// Package fakeapi is an in-memory implementation of the store rating backend.
// It backs the end-to-end tests and can run standalone for local development.
package fakeapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/forms"
)

const defaultTokenTTL = 24 * time.Hour

type Options struct {
	// Secret signs issued tokens. Defaults to "fakeapi-secret".
	Secret string
	// TokenTTL defaults to 24h.
	TokenTTL time.Duration
	// Prefix mounts every route under a path, e.g. "/api".
	Prefix string
	Logger zerolog.Logger
}

type failure struct {
	status  int
	message string
}

// Server is the fake backend. It implements http.Handler.
type Server struct {
	e      *echo.Echo
	st     *state
	secret string
	ttl    time.Duration
	log    zerolog.Logger

	mu       sync.Mutex
	requests []Recorded
	failures map[string][]failure
}

// New builds the Echo instance with all routes registered.
func New(opts Options) *Server {
	if opts.Secret == "" {
		opts.Secret = "fakeapi-secret"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}

	s := &Server{
		st:       newState(),
		secret:   opts.Secret,
		ttl:      opts.TokenTTL,
		log:      opts.Logger.With().Str("component", "fakeapi").Logger(),
		failures: make(map[string][]failure),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = forms.NewValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(s.log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(s.record)
	e.Use(s.injectFailures)

	// --- Health probes (no auth required) ---
	e.GET("/health", s.liveness)
	e.GET("/health/ready", s.readiness)

	auth := Auth(s.secret)
	g := e.Group(opts.Prefix)

	// --- Auth routes ---
	g.POST("/auth/signup", s.signup)
	g.POST("/auth/login", s.login)
	g.PATCH("/auth/update-password", s.updatePassword, auth)

	// --- Admin routes ---
	admin := g.Group("/admin", auth, RBAC(domain.RoleAdmin))
	admin.GET("/dashboard", s.adminDashboard)
	admin.GET("/users", s.adminUsers)
	admin.POST("/users", s.adminAddUser)
	admin.GET("/users/:id", s.adminUser)
	admin.GET("/stores", s.adminStores)
	admin.POST("/stores", s.adminAddStore)

	// --- Owner routes ---
	g.GET("/owner/dashboard", s.ownerDashboard, auth, RBAC(domain.RoleOwner))

	// --- User routes ---
	user := g.Group("/user", auth, RBAC(domain.RoleUser))
	user.GET("/stores", s.userStores)
	user.POST("/ratings", s.createRating)
	user.PATCH("/ratings/:storeId", s.updateRating)

	s.e = e
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Start listens on addr until the server fails or is shut down.
func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Shutdown stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// SeedUser creates an account directly, bypassing signup validation.
func (s *Server) SeedUser(in domain.NewUser) (domain.User, error) {
	return s.st.addUser(in)
}

// SeedStore creates a store directly.
func (s *Server) SeedStore(in domain.NewStore) (domain.AdminStore, error) {
	return s.st.addStore(in)
}

// SeedRating records a rating directly.
func (s *Server) SeedRating(userID, storeID int64, value int) error {
	return s.st.createRating(userID, storeID, value)
}

// Token issues a token for u that expires after ttl; a negative ttl yields
// an already expired token.
func (s *Server) Token(u domain.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"role":  string(u.Role),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

// FailNext makes the next request to method and path (including the prefix)
// answer with status and {"error": message}.
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], failure{status: status, message: message})
	s.mu.Unlock()
}

// Requests returns every request received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// ResetRequests forgets the recorded requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
}
