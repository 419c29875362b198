package ports

import (
	"context"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

// SignupInput is the account creation payload. Role is always "user" for
// self-service signups.
type SignupInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Address  string      `json:"address,omitempty"`
	Role     domain.Role `json:"role"`
}

// LoginInput holds login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordInput is the password change payload.
type PasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResult is the body of a successful login or signup.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// AuthAPI covers the /auth endpoints.
type AuthAPI interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	UpdatePassword(ctx context.Context, in PasswordInput) error
}
