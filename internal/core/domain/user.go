package domain

import "errors"

// Role fixes which endpoints and which dashboard a session may use.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

var ErrNoSession = errors.New("no active session")

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	}
	return false
}

// User models an authenticated actor as returned by the backend.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Address string `json:"address,omitempty"`
}

// UserDetail is the admin view of a single user. Rating is only reported
// for store owners and is the average of their store.
type UserDetail struct {
	User
	Rating Decimal `json:"rating"`
}

// UserFilter narrows the admin user listing. Empty fields are not sent.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    Role
	SortBy  string
	Order   string
}

// NewUser carries the fields an admin submits to create an account.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Address  string `json:"address,omitempty"`
}
