package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is fatal: without a key no analysis or chat can be served
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not found in environment variables")

type Config struct {
	Gemini struct {
		// Credential for the Gemini API, required
		APIKey string `env:"GEMINI_API_KEY"`

		Model string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-pro"`
	}

	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Origins allowed by CORS, comma separated
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	}

	Session struct {
		// Sessions unused for this long are dropped together with their catalog
		IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"1h"`

		SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
	}

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// YAML file replacing the built-in sample data; empty keeps the built-in set
	SampleDataPath string `env:"SAMPLE_DATA_PATH"`
}

// LoadConfig reads the given .env files (".env" when none are named) and then
// the environment. Variables already set in the environment win over the files.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.Gemini.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Session.SweepInterval <= 0 {
		return nil, fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive, got %s", cfg.Session.SweepInterval)
	}
	return cfg, nil
}
