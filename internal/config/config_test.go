package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-travel-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("TRAVEL_API_URL", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("TRAVEL_DATA_FOLDER", "")
	t.Setenv("APP_NAME", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := config.New()
	require.Equal(t, "http://localhost:8000/api", cfg.GetAPIURL())
	require.Equal(t, 90*time.Second, cfg.GetHTTPTimeout())
	require.Equal(t, "./data", cfg.GetDataFolder())
	require.Equal(t, "Travel Client", cfg.GetAppName())
	require.Equal(t, "info", cfg.GetLogLevel())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRAVEL_API_URL", "https://travel.example.com/api/v1")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "15")
	t.Setenv("TRAVEL_DATA_FOLDER", "/var/lib/travel")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.New()
	require.Equal(t, "https://travel.example.com/api/v1", cfg.GetAPIURL())
	require.Equal(t, 15*time.Second, cfg.GetHTTPTimeout())
	require.Equal(t, "/var/lib/travel", cfg.GetDataFolder())
	require.Equal(t, "debug", cfg.GetLogLevel())
}

func TestInvalidTimeoutFallsBackToDefault(t *testing.T) {
	for _, raw := range []string{"not-a-number", "0", "-5"} {
		t.Setenv("HTTP_TIMEOUT_SECONDS", raw)
		require.Equal(t, 90*time.Second, config.New().GetHTTPTimeout())
	}
}
