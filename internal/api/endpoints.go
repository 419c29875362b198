package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/core/ports"
)

// decode unmarshals a success body. A body that does not match the expected
// shape is reported as a server failure so callers only ever see one of the
// four failure kinds.
func decode[T any](body []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		f := domain.ServerFailure(http.StatusOK, "malformed response from server")
		f.Err = err
		return nil, f
	}
	return &out, nil
}

func decodeList[T any](body []byte) ([]T, error) {
	out, err := decode[[]T](body)
	if err != nil {
		return nil, err
	}
	if *out == nil {
		return []T{}, nil
	}
	return *out, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// ── Auth ──────────────────────────────────────────────────────────────────────

// AuthClient calls the /auth endpoints.
type AuthClient struct{ c Caller }

var _ ports.AuthAPI = (*AuthClient)(nil)

func NewAuthClient(c Caller) *AuthClient { return &AuthClient{c: c} }

func (a *AuthClient) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	body, err := a.c.Call(ctx, Request{Method: http.MethodPost, Path: "/auth/signup", Body: in})
	if err != nil {
		return nil, err
	}
	return decode[ports.AuthResult](body)
}

func (a *AuthClient) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	body, err := a.c.Call(ctx, Request{Method: http.MethodPost, Path: "/auth/login", Body: in})
	if err != nil {
		return nil, err
	}
	return decode[ports.AuthResult](body)
}

func (a *AuthClient) UpdatePassword(ctx context.Context, in ports.PasswordInput) error {
	_, err := a.c.Call(ctx, Request{Method: http.MethodPatch, Path: "/auth/update-password", Body: in})
	return err
}

// ── Admin ─────────────────────────────────────────────────────────────────────

// AdminClient calls the /admin endpoints.
type AdminClient struct{ c Caller }

var _ ports.AdminAPI = (*AdminClient)(nil)

func NewAdminClient(c Caller) *AdminClient { return &AdminClient{c: c} }

func (a *AdminClient) Dashboard(ctx context.Context) (*domain.AdminStats, error) {
	body, err := a.c.Call(ctx, Request{Method: http.MethodGet, Path: "/admin/dashboard"})
	if err != nil {
		return nil, err
	}
	return decode[domain.AdminStats](body)
}

func (a *AdminClient) Users(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	q := url.Values{}
	setIf(q, "name", filter.Name)
	setIf(q, "email", filter.Email)
	setIf(q, "address", filter.Address)
	setIf(q, "role", string(filter.Role))
	setIf(q, "sortBy", filter.SortBy)
	setIf(q, "order", filter.Order)

	body, err := a.c.Call(ctx, Request{Method: http.MethodGet, Path: "/admin/users", Query: q})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.User](body)
}

// createdUser accepts both a bare user and {"user": {...}}.
type createdUser struct {
	domain.User
	Wrapped *domain.User `json:"user"`
}

func (a *AdminClient) AddUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	body, err := a.c.Call(ctx, Request{Method: http.MethodPost, Path: "/admin/users", Body: in})
	if err != nil {
		return nil, err
	}
	out, err := decode[createdUser](body)
	if err != nil {
		return nil, err
	}
	if out.Wrapped != nil {
		return out.Wrapped, nil
	}
	return &out.User, nil
}

func (a *AdminClient) Stores(ctx context.Context, filter domain.StoreFilter) ([]domain.AdminStore, error) {
	q := url.Values{}
	setIf(q, "name", filter.Name)
	setIf(q, "email", filter.Email)
	setIf(q, "address", filter.Address)
	setIf(q, "sortBy", filter.SortBy)
	setIf(q, "order", filter.Order)

	body, err := a.c.Call(ctx, Request{Method: http.MethodGet, Path: "/admin/stores", Query: q})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.AdminStore](body)
}

type createdStore struct {
	domain.AdminStore
	Wrapped *domain.AdminStore `json:"store"`
}

func (a *AdminClient) AddStore(ctx context.Context, in domain.NewStore) (*domain.AdminStore, error) {
	body, err := a.c.Call(ctx, Request{Method: http.MethodPost, Path: "/admin/stores", Body: in})
	if err != nil {
		return nil, err
	}
	out, err := decode[createdStore](body)
	if err != nil {
		return nil, err
	}
	if out.Wrapped != nil {
		return out.Wrapped, nil
	}
	return &out.AdminStore, nil
}

func (a *AdminClient) User(ctx context.Context, id int64) (*domain.UserDetail, error) {
	path := "/admin/users/" + strconv.FormatInt(id, 10)
	body, err := a.c.Call(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	return decode[domain.UserDetail](body)
}

// ── Owner ─────────────────────────────────────────────────────────────────────

// OwnerClient calls the /owner endpoints.
type OwnerClient struct{ c Caller }

var _ ports.OwnerAPI = (*OwnerClient)(nil)

func NewOwnerClient(c Caller) *OwnerClient { return &OwnerClient{c: c} }

func (o *OwnerClient) Dashboard(ctx context.Context) (*domain.OwnerDashboard, error) {
	body, err := o.c.Call(ctx, Request{Method: http.MethodGet, Path: "/owner/dashboard"})
	if err != nil {
		return nil, err
	}
	return decode[domain.OwnerDashboard](body)
}

// ── User ──────────────────────────────────────────────────────────────────────

// UserClient calls the /user endpoints.
type UserClient struct{ c Caller }

var _ ports.UserAPI = (*UserClient)(nil)

func NewUserClient(c Caller) *UserClient { return &UserClient{c: c} }

// Stores lists stores with the caller's own rating embedded. The search
// parameter is always sent, empty when browsing everything.
func (u *UserClient) Stores(ctx context.Context, search string) ([]domain.Store, error) {
	q := url.Values{"search": []string{search}}
	body, err := u.c.Call(ctx, Request{Method: http.MethodGet, Path: "/user/stores", Query: q})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Store](body)
}

type createRatingBody struct {
	StoreID int64 `json:"store_id"`
	Rating  int   `json:"rating"`
}

type updateRatingBody struct {
	Rating int `json:"rating"`
}

func (u *UserClient) CreateRating(ctx context.Context, storeID int64, value int) error {
	_, err := u.c.Call(ctx, Request{
		Method: http.MethodPost,
		Path:   "/user/ratings",
		Body:   createRatingBody{StoreID: storeID, Rating: value},
	})
	return err
}

func (u *UserClient) UpdateRating(ctx context.Context, storeID int64, value int) error {
	_, err := u.c.Call(ctx, Request{
		Method: http.MethodPatch,
		Path:   "/user/ratings/" + strconv.FormatInt(storeID, 10),
		Body:   updateRatingBody{Rating: value},
	})
	return err
}
