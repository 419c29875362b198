package fakeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type readinessResponse struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
	Stores int    `json:"stores"`
}

// liveness handles GET /health.
func (s *Server) liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// readiness handles GET /health/ready. The fake is ready once at least one
// admin account exists, since nothing else can be created without one.
func (s *Server) readiness(c echo.Context) error {
	users, stores, admins := s.st.counts()

	status, code := "ok", http.StatusOK
	if admins == 0 {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	return c.JSON(code, readinessResponse{Status: status, Users: users, Stores: stores})
}
