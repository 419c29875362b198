package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/core/ports"
	"github.com/roxiler/storerating-client/internal/forms"
)

// AuthService implements signup, login, logout and password change on top
// of the session manager.
type AuthService struct {
	api      ports.AuthAPI
	session  *SessionService
	validate *forms.Validator
	logger   zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, session *SessionService, validate *forms.Validator, logger zerolog.Logger) *AuthService {
	return &AuthService{
		api:      api,
		session:  session,
		validate: validate,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

// Login authenticates and returns the landing route of the user's role.
func (s *AuthService) Login(ctx context.Context, form forms.LoginForm) (domain.Route, error) {
	form = form.Trim()
	if err := s.validate.Validate(form); err != nil {
		return "", err
	}

	res, err := s.api.Login(ctx, ports.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return "", err
	}
	sess, err := s.open(ctx, res)
	if err != nil {
		return "", err
	}
	return domain.LandingRoute(sess.User.Role), nil
}

// Signup creates a plain user account and signs it in.
func (s *AuthService) Signup(ctx context.Context, form forms.SignupForm) (domain.Route, error) {
	form = form.Trim()
	if err := s.validate.Validate(form); err != nil {
		return "", err
	}

	res, err := s.api.Signup(ctx, ports.SignupInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Address:  form.Address,
		Role:     domain.RoleUser,
	})
	if err != nil {
		return "", err
	}
	if _, err := s.open(ctx, res); err != nil {
		return "", err
	}
	return domain.LandingRoute(domain.RoleUser), nil
}

// Logout ends the session and returns the login route.
func (s *AuthService) Logout(ctx context.Context) domain.Route {
	s.session.Logout(ctx)
	return domain.RouteLogin
}

// UpdatePassword changes the signed-in user's password.
func (s *AuthService) UpdatePassword(ctx context.Context, form forms.PasswordForm) error {
	if _, ok := s.session.CurrentToken(); !ok {
		return domain.ErrNoSession
	}
	if err := s.validate.Validate(form); err != nil {
		return err
	}
	if err := s.api.UpdatePassword(ctx, ports.PasswordInput{
		CurrentPassword: form.CurrentPassword,
		NewPassword:     form.NewPassword,
	}); err != nil {
		return err
	}
	s.logger.Info().Msg("password updated")
	return nil
}

// open turns an auth response into a session. A response missing either
// half never produces a session.
func (s *AuthService) open(ctx context.Context, res *ports.AuthResult) (domain.Session, error) {
	if res == nil || res.User == nil || res.Token == "" || !res.User.Role.Valid() {
		s.logger.Error().Msg("auth response without user or token")
		return domain.Session{}, domain.ServerFailure(http.StatusOK, "incomplete authentication response")
	}
	return s.session.Login(ctx, res.User, res.Token), nil
}
