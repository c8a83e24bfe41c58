package model

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used across the application
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrWrongRole          = errors.New("operation not permitted for this role")

	// User store errors
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrProfileNotFound = errors.New("profile not found")

	// Registration errors
	ErrInvalidRole = errors.New("invalid role")
)

// MissingFieldsError reports which required registration fields were absent.
// Login failures stay generic; registration gets field-level detail so the
// form can be corrected in one pass.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
