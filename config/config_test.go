package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears a variable for the duration of the test
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"GEMINI_MODEL", "SERVER_PORT", "CORS_ALLOWED_ORIGINS", "SESSION_IDLE_TIMEOUT", "SESSION_SWEEP_INTERVAL", "LOG_LEVEL", "SAMPLE_DATA_PATH"} {
		unset(t, key)
	}
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Session.IdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.SampleDataPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://dash.example.com")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30m")
	t.Setenv("SESSION_SWEEP_INTERVAL", "1m")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://dash.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected error
	}{
		{
			name:     "Missing API key",
			env:      map[string]string{"GEMINI_API_KEY": ""},
			expected: ErrMissingAPIKey,
		},
		{
			name: "Invalid duration",
			env:  map[string]string{"GEMINI_API_KEY": "secret", "SESSION_IDLE_TIMEOUT": "soon"},
		},
		{
			name: "Zero sweep interval",
			env:  map[string]string{"GEMINI_API_KEY": "secret", "SESSION_SWEEP_INTERVAL": "0s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig(noEnvFile(t))
			assert.Nil(t, cfg)
			require.Error(t, err)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	unset(t, "GEMINI_API_KEY")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=from-file\nLOG_LEVEL=debug\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Gemini.APIKey)
	assert.Equal(t, "warn", cfg.LogLevel, "the process environment wins over the file")
}
