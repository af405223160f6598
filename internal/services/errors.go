package services

import "errors"

var (
	// ErrNotFound covers both a nonexistent id and another tenant's record;
	// callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// PageSize is the fixed page size for every list endpoint. Pages are
// 1-indexed.
const PageSize = 20

// ValidationError reports a bad field value. No partial write happens when
// one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
