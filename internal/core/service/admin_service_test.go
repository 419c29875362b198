package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/forms"
)

type stubAdminAPI struct {
	users     []domain.User
	usersErr  error
	newUsers  []domain.NewUser
	newStores []domain.NewStore
}

func (a *stubAdminAPI) Dashboard(context.Context) (*domain.AdminStats, error) {
	return &domain.AdminStats{UsersCount: domain.Count(len(a.users))}, nil
}

func (a *stubAdminAPI) Users(context.Context, domain.UserFilter) ([]domain.User, error) {
	return a.users, a.usersErr
}

func (a *stubAdminAPI) AddUser(_ context.Context, in domain.NewUser) (*domain.User, error) {
	a.newUsers = append(a.newUsers, in)
	return &domain.User{ID: int64(100 + len(a.newUsers)), Name: in.Name, Email: in.Email, Role: in.Role}, nil
}

func (a *stubAdminAPI) Stores(context.Context, domain.StoreFilter) ([]domain.AdminStore, error) {
	return nil, nil
}

func (a *stubAdminAPI) AddStore(_ context.Context, in domain.NewStore) (*domain.AdminStore, error) {
	a.newStores = append(a.newStores, in)
	return &domain.AdminStore{ID: 1, Name: in.Name, Email: in.Email}, nil
}

func (a *stubAdminAPI) User(_ context.Context, id int64) (*domain.UserDetail, error) {
	return &domain.UserDetail{User: domain.User{ID: id}}, nil
}

func TestAdminService_OwnerCandidatesPrefersDefaultEmail(t *testing.T) {
	api := &stubAdminAPI{users: []domain.User{
		{ID: 1, Email: "someone@x.io", Role: domain.RoleUser},
		{ID: 2, Email: "owner@x.io", Role: domain.RoleOwner},
		{ID: 3, Email: "Admin@Roxiler.com", Role: domain.RoleAdmin},
	}}
	svc := NewAdminService(api, forms.NewValidator(), zerolog.Nop())

	c, err := svc.OwnerCandidates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Owners) != 2 {
		t.Fatalf("expected owners and admins only, got %+v", c.Owners)
	}
	if c.Default.ID != 3 {
		t.Fatalf("expected admin@roxiler.com as default, got %+v", c.Default)
	}
}

func TestAdminService_OwnerCandidatesFallsBackToFirst(t *testing.T) {
	api := &stubAdminAPI{users: []domain.User{
		{ID: 5, Email: "a@x.io", Role: domain.RoleOwner},
		{ID: 6, Email: "b@x.io", Role: domain.RoleAdmin},
	}}
	svc := NewAdminService(api, forms.NewValidator(), zerolog.Nop())

	c, err := svc.OwnerCandidates(context.Background())
	if err != nil || c.Default.ID != 5 {
		t.Fatalf("expected first candidate as default, got %+v %v", c, err)
	}
}

func TestAdminService_NoOwners(t *testing.T) {
	svc := NewAdminService(&stubAdminAPI{users: []domain.User{{ID: 1, Role: domain.RoleUser}}}, forms.NewValidator(), zerolog.Nop())

	_, err := svc.OwnerCandidates(context.Background())
	if !errors.Is(err, ErrNoOwners) {
		t.Fatalf("expected ErrNoOwners, got %v", err)
	}
	if got := OwnersError(err); got != "No store owners found. Create owner users first or use an admin as owner." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := OwnersError(&domain.Failure{Kind: domain.FailureAuthExpired}); got != "Unauthorized. Please log in as an admin to see owners." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAdminService_AddStoreDefaultsOwner(t *testing.T) {
	api := &stubAdminAPI{users: []domain.User{{ID: 9, Email: "admin@roxiler.com", Role: domain.RoleAdmin}}}
	svc := NewAdminService(api, forms.NewValidator(), zerolog.Nop())

	_, err := svc.AddStore(context.Background(), forms.StoreForm{
		Name:  "Green Grocers Market Hall",
		Email: "grocer@example.com",
	})
	if err != nil {
		t.Fatalf("AddStore returned error: %v", err)
	}
	if len(api.newStores) != 1 || api.newStores[0].OwnerID != 9 {
		t.Fatalf("expected default owner 9, got %+v", api.newStores)
	}
}

func TestAdminService_AddOwnerForcesRole(t *testing.T) {
	api := &stubAdminAPI{}
	svc := NewAdminService(api, forms.NewValidator(), zerolog.Nop())

	u, err := svc.AddOwner(context.Background(), forms.UserForm{
		Name:     "Olivia Owner of the Corner",
		Email:    "olivia@example.com",
		Password: "Owner#2024",
		Role:     domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("AddOwner returned error: %v", err)
	}
	if u.Role != domain.RoleOwner || api.newUsers[0].Role != domain.RoleOwner {
		t.Fatalf("expected owner role, got %+v", u)
	}
}

func TestAdminService_AddUserValidation(t *testing.T) {
	api := &stubAdminAPI{}
	svc := NewAdminService(api, forms.NewValidator(), zerolog.Nop())

	if _, err := svc.AddUser(context.Background(), forms.UserForm{Name: "short"}); !errors.Is(err, forms.ErrInvalid) {
		t.Fatalf("expected form error, got %v", err)
	}
	if len(api.newUsers) != 0 {
		t.Fatal("expected no call")
	}
}

func TestAdminService_TrimsBeforeValidating(t *testing.T) {
	api := &stubAdminAPI{}
	svc := NewAdminService(api, forms.NewValidator(), zerolog.Nop())

	if _, err := svc.AddUser(context.Background(), forms.UserForm{
		Name:     " Olivia Owner of the Corner ",
		Email:    " olivia@example.com ",
		Password: "Owner#2024",
		Role:     domain.RoleUser,
	}); err != nil {
		t.Fatalf("AddUser returned error: %v", err)
	}
	if u := api.newUsers[0]; u.Email != "olivia@example.com" || u.Name != "Olivia Owner of the Corner" {
		t.Fatalf("expected trimmed user, got %+v", u)
	}

	if _, err := svc.AddStore(context.Background(), forms.StoreForm{
		Name:    "Green Grocers Market Hall ",
		Email:   "\tgrocer@example.com",
		OwnerID: 9,
	}); err != nil {
		t.Fatalf("AddStore returned error: %v", err)
	}
	if st := api.newStores[0]; st.Email != "grocer@example.com" || st.Name != "Green Grocers Market Hall" {
		t.Fatalf("expected trimmed store, got %+v", st)
	}
}
