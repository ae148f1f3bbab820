package apperrors

import (
	"errors"
	"fmt"
)

// Common error types for the travel API client
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionExpired     = errors.New("session expired")

	// Validation errors (detected before any request is sent)
	ErrValidation = errors.New("validation failed")

	// Resource errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// Remote analysis errors
	ErrAnalysis = errors.New("analysis failed")

	// Transport errors
	ErrServer  = errors.New("server error")
	ErrNetwork = errors.New("network error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
