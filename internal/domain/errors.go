package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicate          = errors.New("duplicate key")
)

// ValidationError rejects a listing before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
