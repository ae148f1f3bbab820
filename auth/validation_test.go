package auth_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-travel-client/auth"
	"github.com/jrsteele09/go-travel-client/internal/apperrors"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	v := auth.NewValidator()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "user@example.com", wantErr: false},
		{name: "valid with plus tag", email: "user+tag@example.co.uk", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
		{name: "missing at", email: "userexample.com", wantErr: true},
		{name: "missing domain dot", email: "user@example", wantErr: true},
		{name: "contains space", email: "us er@example.com", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateEmail(tc.email)
			if tc.wantErr {
				require.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	v := auth.NewValidator()

	require.NoError(t, v.ValidatePassword("longenough1"))
	require.ErrorIs(t, v.ValidatePassword("short"), apperrors.ErrValidation)
	require.ErrorIs(t, v.ValidatePassword(strings.Repeat("x", 129)), apperrors.ErrValidation)
}

func TestValidateSignUp(t *testing.T) {
	v := auth.NewValidator()

	require.NoError(t, v.ValidateSignUp("user@example.com", "longenough1", "Jo Traveler"))
	require.ErrorIs(t, v.ValidateSignUp("bad", "longenough1", ""), apperrors.ErrValidation)
	require.ErrorIs(t, v.ValidateSignUp("user@example.com", "short", ""), apperrors.ErrValidation)
	require.ErrorIs(t, v.ValidateSignUp("user@example.com", "longenough1", strings.Repeat("n", 101)), apperrors.ErrValidation)
}
