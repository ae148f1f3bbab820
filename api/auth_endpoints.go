package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

type signUpRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new account and returns the issued token pair with the
// created user.
func (c *Client) SignUp(ctx context.Context, email, password string, fullName *string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil,
		signUpRequest{Email: email, Password: password, FullName: fullName}, &resp, false)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.SignUp]")
	}
	return &resp, nil
}

// SignIn exchanges credentials for a token pair and the account user.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", nil,
		signInRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.SignIn]")
	}
	return &resp, nil
}

// SignOut invalidates the session server-side.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/signout", nil, nil, nil, true); err != nil {
		return errors.Wrap(err, "[Client.SignOut]")
	}
	return nil
}

// CurrentUser fetches the account behind the stored access token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user, true); err != nil {
		return nil, errors.Wrap(err, "[Client.CurrentUser]")
	}
	return &user, nil
}
