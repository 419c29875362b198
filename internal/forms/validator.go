// Package forms holds the user-facing input forms, their client-side
// validation and the single-message notice shown after each attempt.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PasswordSpecials are the characters of which a password needs at least one.
const PasswordSpecials = "!@#$%^&*"

// ErrInvalid is matched by every error returned from Validator.Validate.
var ErrInvalid = errors.New("invalid form")

// Validator wraps go-playground/validator. It also satisfies echo.Validator
// so the fake backend validates request bodies with the same rules.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator with the password_policy tag registered.
// Field names in messages come from the `label` tag, falling back to the
// lower-cased field name.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return strings.ToLower(f.Name)
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("password_policy", passwordPolicy)
	return &Validator{v: v}
}

// Validate checks i and joins one message per failing field.
func (fv *Validator) Validate(i any) error {
	if err := fv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// Message strips the ErrInvalid prefix from a validation error.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalid.Error()+": ")
}

func passwordPolicy(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' }) &&
		strings.ContainsAny(s, PasswordSpecials)
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "password_policy":
		return fmt.Sprintf("%s must contain at least one uppercase letter and one special character (%s)", field, PasswordSpecials)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
