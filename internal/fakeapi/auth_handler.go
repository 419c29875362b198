package fakeapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

type signupRequest struct {
	Name     string      `json:"name" validate:"required,min=20,max=60"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=16,password_policy"`
	Address  string      `json:"address" validate:"max=400"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" label:"current password"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=16,password_policy" label:"new password"`
}

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}

// bindValid binds the JSON body into req and runs its validate tags.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	return c.Validate(req)
}

func (s *Server) signup(c echo.Context) error {
	var req signupRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user, err := s.st.addUser(domain.NewUser{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     domain.RoleUser,
		Address:  strings.TrimSpace(req.Address),
	})
	if err != nil {
		return err
	}
	return s.issue(c, http.StatusCreated, "User registered successfully", user)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user, err := s.st.login(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return err
	}
	return s.issue(c, http.StatusOK, "Login successful", user)
}

func (s *Server) updatePassword(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	var req passwordRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := s.st.updatePassword(id, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (s *Server) issue(c echo.Context, status int, msg string, user domain.User) error {
	token, err := s.Token(user, s.ttl)
	if err != nil {
		return err
	}
	s.log.Debug().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("token issued")
	return c.JSON(status, authResponse{Message: msg, Token: token, User: user})
}
