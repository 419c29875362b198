package domain

import (
	"errors"
	"time"
)

var ErrStoreNotFound = errors.New("store not found")

// Store is the end-user view of a store. UserRating is relative to the
// currently authenticated user and is nil when that user never rated it.
type Store struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address,omitempty"`
	OwnerID       int64   `json:"owner_id"`
	OverallRating Decimal `json:"overall_rating"`
	RatingCount   Count   `json:"rating_count"`
	UserRating    *int    `json:"user_rating"`
}

// AdminStore is a row of the admin store listing.
type AdminStore struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address,omitempty"`
	OwnerName     string  `json:"owner_name,omitempty"`
	AverageRating Decimal `json:"average_rating"`
	RatingCount   Count   `json:"rating_count"`
}

// StoreFilter narrows the admin store listing. Empty fields are not sent.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
	SortBy  string
	Order   string
}

// NewStore carries the fields an admin submits to create a store.
type NewStore struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	OwnerID int64  `json:"owner_id"`
}

// AdminStats holds the aggregate counters of the admin dashboard.
type AdminStats struct {
	UsersCount   Count `json:"usersCount"`
	StoresCount  Count `json:"storesCount"`
	RatingsCount Count `json:"ratingsCount"`
}

// Rater is one rating received by an owner's store.
type Rater struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerDashboard is the owner's store summary plus its raters.
type OwnerDashboard struct {
	Store         string  `json:"store"`
	AverageRating Decimal `json:"average_rating"`
	RatingCount   Count   `json:"rating_count"`
	Raters        []Rater `json:"raters"`
}
