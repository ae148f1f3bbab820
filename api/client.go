package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-travel-client/internal/apperrors"
	"github.com/jrsteele09/go-travel-client/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 90 * time.Second

// Client issues authenticated requests against the travel API. On a 401 it
// runs the refresh-and-retry protocol: one coalesced call to /auth/refresh,
// then a single re-issue of the original request with the new access token.
// A failed refresh clears the stored credential pair, notifies the session
// expired handler and surfaces apperrors.ErrSessionExpired.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Store
	log        zerolog.Logger

	// refreshGroup coalesces concurrent 401s into at most one in-flight
	// refresh call; all waiters retry against the single resulting pair.
	refreshGroup singleflight.Group

	handlerLock      sync.RWMutex
	onSessionExpired func()
}

// Option modifies a Client instance.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client for the API at baseURL. Tokens are read from the
// store at send time, never cached inside the client.
func New(baseURL string, tokens token.Store, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		log:        log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetSessionExpiredHandler registers the callback fired when the refresh
// protocol exhausts itself. The auth manager uses it to flip to signed-out.
func (c *Client) SetSessionExpiredHandler(fn func()) {
	c.handlerLock.Lock()
	defer c.handlerLock.Unlock()
	c.onSessionExpired = fn
}

func (c *Client) sessionExpiredHandler() func() {
	c.handlerLock.RLock()
	defer c.handlerLock.RUnlock()
	return c.onSessionExpired
}

// do executes a request and decodes the response into out (which may be nil
// for 204-style endpoints). Authenticated requests that fail with 401 go
// through the refresh protocol exactly once.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	status, respBody, err := c.send(ctx, method, path, query, body, authed)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && authed {
		creds, credsErr := c.tokens.Get()
		if credsErr != nil || creds.RefreshToken == "" {
			// Nothing to refresh with, propagate the auth failure unchanged
			return statusError(status, respBody)
		}

		c.log.Debug().Str("method", method).Str("path", path).Msg("Access token rejected, refreshing")
		if err := c.refreshTokens(ctx); err != nil {
			return err
		}

		status, respBody, err = c.send(ctx, method, path, query, body, authed)
		if err != nil {
			return err
		}
	}

	if !is2xx(status) {
		return statusError(status, respBody)
	}
	return decode(respBody, out)
}

// send builds and executes a single HTTP request, reading the bearer token
// from the store at send time. The response body is fully read so the
// request can be safely re-issued.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}, authed bool) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, errors.Wrap(err, "[Client.send] Marshal")
		}
		reader = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "[Client.send] NewRequest")
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		if creds, err := c.tokens.Get(); err == nil && creds.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(apperrors.ErrNetwork, "[Client.send] %s %s: %s", method, path, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrapf(apperrors.ErrNetwork, "[Client.send] reading response: %s", err.Error())
	}
	return resp.StatusCode, respBody, nil
}

// refreshTokens coalesces concurrent refresh attempts into a single call.
func (c *Client) refreshTokens(ctx context.Context) error {
	_, err, shared := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		return nil, c.refresh(ctx)
	})
	if shared {
		c.log.Debug().Msg("Joined in-flight token refresh")
	}
	return err
}

// refresh calls /auth/refresh with the stored refresh token. Any failure is
// terminal: the pair is cleared and the session expires.
func (c *Client) refresh(ctx context.Context) error {
	creds, err := c.tokens.Get()
	if err != nil || creds.RefreshToken == "" {
		return c.expireSession(errors.New("no refresh token available"))
	}

	status, body, err := c.send(ctx, http.MethodPost, "/auth/refresh", nil,
		map[string]string{"refresh_token": creds.RefreshToken}, false)
	if err != nil {
		return c.expireSession(err)
	}
	if !is2xx(status) {
		return c.expireSession(statusError(status, body))
	}

	var pair TokenPair
	if err := decode(body, &pair); err != nil {
		return c.expireSession(err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return c.expireSession(errors.New("refresh returned a partial token pair"))
	}

	if err := c.tokens.Set(token.Credentials{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}); err != nil {
		return c.expireSession(err)
	}

	c.log.Info().Msg("Access token refreshed")
	return nil
}

// expireSession clears the credential pair, notifies the registered handler
// and returns ErrSessionExpired carrying the cause.
func (c *Client) expireSession(cause error) error {
	if err := c.tokens.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to clear stored credentials")
	}
	if fn := c.sessionExpiredHandler(); fn != nil {
		fn()
	}
	c.log.Warn().Err(cause).Msg("Session expired")
	return errors.Wrapf(apperrors.ErrSessionExpired, "token refresh failed: %s", cause.Error())
}

func decode(body []byte, out interface{}) error {
	if out == nil {
		return nil
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "[Client] decoding response")
	}
	return nil
}
