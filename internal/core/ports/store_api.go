package ports

import (
	"context"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

// AdminAPI covers the /admin endpoints.
type AdminAPI interface {
	Dashboard(ctx context.Context) (*domain.AdminStats, error)
	Users(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	AddUser(ctx context.Context, in domain.NewUser) (*domain.User, error)
	Stores(ctx context.Context, filter domain.StoreFilter) ([]domain.AdminStore, error)
	AddStore(ctx context.Context, in domain.NewStore) (*domain.AdminStore, error)
	User(ctx context.Context, id int64) (*domain.UserDetail, error)
}

// OwnerAPI covers the /owner endpoints.
type OwnerAPI interface {
	Dashboard(ctx context.Context) (*domain.OwnerDashboard, error)
}

// UserAPI covers the /user endpoints: store browsing and rating.
type UserAPI interface {
	Stores(ctx context.Context, search string) ([]domain.Store, error)
	CreateRating(ctx context.Context, storeID int64, value int) error
	UpdateRating(ctx context.Context, storeID int64, value int) error
}
