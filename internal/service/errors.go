package service

import "errors"

var (
	// missing email or password on login
	ErrMissingFields = errors.New("email and password are required")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
)

// ValidationError carries the per-field messages from registration
// validation. All failing fields are reported together.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
