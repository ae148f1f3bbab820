package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-travel-client/token"
	"github.com/pkg/errors"
)

// AccessTokenExpiry reports the expiry of the stored access token by reading
// its claims without verifying the signature (verification is the server's
// job). A token without an exp claim has no known expiry.
func (c *Client) AccessTokenExpiry() (time.Time, error) {
	creds, err := c.tokens.Get()
	if err != nil {
		return time.Time{}, token.ErrNoCredentials
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(creds.AccessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[Client.AccessTokenExpiry] ParseUnverified")
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("[Client.AccessTokenExpiry] token has no exp claim")
	}
	return exp.Time, nil
}

// AccessTokenExpired reports whether the stored access token is past its
// expiry. This is observational only; the refresh protocol reacts to the
// server's 401, not to the local clock.
func (c *Client) AccessTokenExpired() bool {
	expiry, err := c.AccessTokenExpiry()
	if err != nil {
		return false
	}
	return time.Now().After(expiry)
}
