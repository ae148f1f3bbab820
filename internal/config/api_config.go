package config

import (
	"strconv"
	"time"
)

const (
	apiURLVar      = "TRAVEL_API_URL"
	httpTimeoutVar = "HTTP_TIMEOUT_SECONDS"
)

type APIConfig interface {
	GetAPIURL() string
	GetHTTPTimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

// GetAPIURL returns the base URL of the travel API (e.g. "https://api.example.com/api/v1")
func (API) GetAPIURL() string {
	return GetEnv(apiURLVar, "http://localhost:8000/api")
}

// GetHTTPTimeout returns the per-request timeout. Itinerary generation can
// take tens of seconds, so the default is generous.
func (API) GetHTTPTimeout() time.Duration {
	seconds, err := strconv.Atoi(GetEnv(httpTimeoutVar, "90"))
	if err != nil || seconds <= 0 {
		seconds = 90
	}
	return time.Duration(seconds) * time.Second
}
