// Package config loads process configuration from environment variables.
//
// Every knob has a default so a bare `go run ./cmd/server` works out of the
// box; production deployments override via the environment (or a .env file
// loaded in main).
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime configuration for the server.
type Config struct {
	Port          int    `env:"PORT,           default=8080"`
	DBPath        string `env:"DB_PATH,        default=data/snackboard.db"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN, default=http://localhost:5173"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`

	// BcryptCost is the work factor for newly hashed passwords. The default
	// matches the hashes already in production databases.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// RedactLoginHash blanks the password hash in login responses without
	// changing the response shape. Off by default: existing clients consume
	// the full stored row.
	RedactLoginHash bool `env:"REDACT_LOGIN_HASH, default=false"`
}

// Load reads configuration from the environment using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: processing environment: %w", err)
	}
	return &cfg, nil
}
