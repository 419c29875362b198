package forms

import (
	"strings"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Trim strips surrounding spaces from the text fields. Passwords are kept
// as typed.
func (f LoginForm) Trim() LoginForm {
	f.Email = strings.TrimSpace(f.Email)
	return f
}

// SignupForm is the self-service account form. The role is not part of it:
// signups always create plain users.
type SignupForm struct {
	Name            string `validate:"required,min=20,max=60"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8,max=16,password_policy"`
	ConfirmPassword string `validate:"eqfield=Password" label:"confirm password"`
	Address         string `validate:"max=400"`
}

func (f SignupForm) Trim() SignupForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	return f
}

type PasswordForm struct {
	CurrentPassword string `validate:"required" label:"current password"`
	NewPassword     string `validate:"required,min=8,max=16,password_policy" label:"new password"`
	ConfirmPassword string `validate:"eqfield=NewPassword" label:"confirm password"`
}

// UserForm is the admin form for creating any account, owners included.
type UserForm struct {
	Name     string      `validate:"required,min=20,max=60"`
	Email    string      `validate:"required,email"`
	Password string      `validate:"required,min=8,max=16,password_policy"`
	Role     domain.Role `validate:"required,oneof=admin owner user"`
	Address  string      `validate:"max=400"`
}

func (f UserForm) Trim() UserForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	return f
}

// ToNewUser maps the form onto the create payload.
func (f UserForm) ToNewUser() domain.NewUser {
	return domain.NewUser{
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
		Address:  f.Address,
	}
}

// StoreForm is the admin form for creating a store. OwnerID zero means "use
// the default owner".
type StoreForm struct {
	Name    string `validate:"required,min=20,max=60"`
	Email   string `validate:"required,email"`
	Address string `validate:"max=400"`
	OwnerID int64  `validate:"gte=0" label:"owner"`
}

func (f StoreForm) Trim() StoreForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	return f
}

func (f StoreForm) ToNewStore() domain.NewStore {
	return domain.NewStore{
		Name:    f.Name,
		Email:   f.Email,
		Address: f.Address,
		OwnerID: f.OwnerID,
	}
}

// RatingForm is a star selection.
type RatingForm struct {
	StoreID int64 `validate:"gt=0" label:"store"`
	Rating  int   `validate:"gte=1,lte=5"`
}
