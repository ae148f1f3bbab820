package auth

import (
	"regexp"
	"strings"

	"github.com/jrsteele09/go-travel-client/internal/apperrors"
	"github.com/pkg/errors"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	maxFullNameLength = 100
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator performs the client-side checks that run before any request is
// sent. Failures surface as apperrors.ErrValidation.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEmail checks the email has a plausible mailbox@domain shape.
// Full RFC 5322 validation is the server's job.
func (v *Validator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.Wrap(apperrors.ErrValidation, "email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.Wrapf(apperrors.ErrValidation, "%q is not a valid email address", email)
	}
	return nil
}

// ValidatePassword enforces the minimum credential strength accepted by the
// API.
func (v *Validator) ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.Wrapf(apperrors.ErrValidation, "password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return errors.Wrapf(apperrors.ErrValidation, "password must be at most %d characters", maxPasswordLength)
	}
	return nil
}

// ValidateSignUp validates all sign-up inputs together.
func (v *Validator) ValidateSignUp(email, password, fullName string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}
	if err := v.ValidatePassword(password); err != nil {
		return err
	}
	if len(fullName) > maxFullNameLength {
		return errors.Wrapf(apperrors.ErrValidation, "full name must be at most %d characters", maxFullNameLength)
	}
	return nil
}
