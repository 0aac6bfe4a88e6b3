package auth

import (
	"github.com/sipalaciosv/dupe/internal/domain"
)

// LoginInput is the input for Login.
type LoginInput struct {
	Code string
}

// Validate checks the input fields.
func (in LoginInput) Validate() error {
	var fields []domain.FieldError
	if in.Code == "" {
		fields = append(fields, domain.FieldError{Field: "code", Message: "is required"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// RefreshInput is the input for Refresh.
type RefreshInput struct {
	RefreshToken string
}

// Validate checks the input fields.
func (in RefreshInput) Validate() error {
	var fields []domain.FieldError
	if in.RefreshToken == "" {
		fields = append(fields, domain.FieldError{Field: "refreshToken", Message: "is required"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// LogoutInput is the input for Logout.
type LogoutInput struct {
	RefreshToken string
	All          bool
}

// Validate checks the input fields.
func (in LogoutInput) Validate() error {
	var fields []domain.FieldError
	if in.RefreshToken == "" && !in.All {
		fields = append(fields, domain.FieldError{Field: "refreshToken", Message: "is required unless all sessions are being revoked"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
