package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/core/ports"
	"github.com/roxiler/storerating-client/internal/forms"
)

// DefaultOwnerEmail is preferred as the owner of new stores when present.
const DefaultOwnerEmail = "admin@roxiler.com"

var (
	ErrNoOwners = errors.New("no store owners found")

	msgNoOwners           = "No store owners found. Create owner users first or use an admin as owner."
	msgOwnersUnauthorized = "Unauthorized. Please log in as an admin to see owners."
	msgOwnersFailed       = "Failed to load owners. Check your network or backend."
)

// OwnerCandidates is the list of users that may own a store plus the one
// preselected for a new store.
type OwnerCandidates struct {
	Owners  []domain.User
	Default *domain.User
}

type AdminService struct {
	api      ports.AdminAPI
	validate *forms.Validator
	logger   zerolog.Logger
}

func NewAdminService(api ports.AdminAPI, validate *forms.Validator, logger zerolog.Logger) *AdminService {
	return &AdminService{api: api, validate: validate, logger: logger.With().Str("component", "admin").Logger()}
}

func (s *AdminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	return s.api.Dashboard(ctx)
}

func (s *AdminService) Users(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	return s.api.Users(ctx, filter)
}

func (s *AdminService) Stores(ctx context.Context, filter domain.StoreFilter) ([]domain.AdminStore, error) {
	return s.api.Stores(ctx, filter)
}

func (s *AdminService) User(ctx context.Context, id int64) (*domain.UserDetail, error) {
	return s.api.User(ctx, id)
}

func (s *AdminService) AddUser(ctx context.Context, form forms.UserForm) (*domain.User, error) {
	form = form.Trim()
	if err := s.validate.Validate(form); err != nil {
		return nil, err
	}
	u, err := s.api.AddUser(ctx, form.ToNewUser())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", u.ID).Str("role", string(u.Role)).Msg("user created")
	return u, nil
}

// AddOwner creates a user with the owner role.
func (s *AdminService) AddOwner(ctx context.Context, form forms.UserForm) (*domain.User, error) {
	form.Role = domain.RoleOwner
	return s.AddUser(ctx, form)
}

// AddStore creates a store. When the form names no owner the default
// candidate is used.
func (s *AdminService) AddStore(ctx context.Context, form forms.StoreForm) (*domain.AdminStore, error) {
	form = form.Trim()
	if err := s.validate.Validate(form); err != nil {
		return nil, err
	}
	if form.OwnerID == 0 {
		c, err := s.OwnerCandidates(ctx)
		if err != nil {
			return nil, err
		}
		form.OwnerID = c.Default.ID
	}

	st, err := s.api.AddStore(ctx, form.ToNewStore())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("store_id", st.ID).Int64("owner_id", form.OwnerID).Msg("store created")
	return st, nil
}

// OwnerCandidates lists users with the owner or admin role. The default is
// DefaultOwnerEmail when present, otherwise the first candidate. An empty
// list yields ErrNoOwners.
func (s *AdminService) OwnerCandidates(ctx context.Context) (*OwnerCandidates, error) {
	users, err := s.api.Users(ctx, domain.UserFilter{})
	if err != nil {
		return nil, err
	}

	out := &OwnerCandidates{}
	for _, u := range users {
		if u.Role == domain.RoleOwner || u.Role == domain.RoleAdmin {
			out.Owners = append(out.Owners, u)
		}
	}
	if len(out.Owners) == 0 {
		return nil, ErrNoOwners
	}

	out.Default = &out.Owners[0]
	for i := range out.Owners {
		if strings.EqualFold(out.Owners[i].Email, DefaultOwnerEmail) {
			out.Default = &out.Owners[i]
			break
		}
	}
	return out, nil
}

// OwnersError renders an OwnerCandidates failure for display.
func OwnersError(err error) string {
	switch {
	case errors.Is(err, ErrNoOwners):
		return msgNoOwners
	case errors.Is(err, domain.ErrAuthExpired):
		return msgOwnersUnauthorized
	default:
		return msgOwnersFailed
	}
}

type OwnerService struct {
	api ports.OwnerAPI
}

func NewOwnerService(api ports.OwnerAPI) *OwnerService {
	return &OwnerService{api: api}
}

func (s *OwnerService) Dashboard(ctx context.Context) (*domain.OwnerDashboard, error) {
	return s.api.Dashboard(ctx)
}
