package domain

import (
	"strings"

	"vidtok/pkg/validation"
)

// Form inputs are immutable snapshots validated on submit. Validation
// failures are user-input errors surfaced inline by the rendering layer;
// they never halt a component.

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	if strings.TrimSpace(in.Email) == "" {
		return &ValidationError{Field: "email", Reason: "email is required"}
	}
	if in.Password == "" {
		return &ValidationError{Field: "password", Reason: "password is required"}
	}
	return nil
}

type SignupInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (in SignupInput) Validate() error {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return &ValidationError{Field: "username", Reason: err.Error()}
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return &ValidationError{Field: "email", Reason: err.Error()}
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return &ValidationError{Field: "password", Reason: err.Error()}
	}
	if in.Password != in.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Reason: "passwords do not match"}
	}
	return nil
}

// ValidationError carries the failing field and a display-ready reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
