package token

import "errors"

var (
	// ErrNoCredentials is returned by Get when no credential pair is stored.
	ErrNoCredentials = errors.New("no stored credentials")
)

// Credentials is the access/refresh token pair issued by the travel API.
// The pair is always stored and cleared together: an access token without a
// matching refresh token (or vice versa) is never persisted.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Valid reports whether both tokens of the pair are present.
func (c Credentials) Valid() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// Empty reports whether neither token is present.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// Store persists the credential pair outside process memory so a session
// survives a restart. Implementations must write the pair atomically
// (last-write-wins, never one field without the other).
type Store interface {
	Get() (Credentials, error)
	Set(creds Credentials) error
	Clear() error
}
