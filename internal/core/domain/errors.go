package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated covers missing, malformed and revoked tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when a valid identity targets a post it does not own.
	ErrForbidden = errors.New("access forbidden")
	ErrPostNotFound       = errors.New("post not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries per-field failure messages. Operations abort before
// any persistence side effect when one of these is produced.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for field and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// Empty reports whether no field has failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
