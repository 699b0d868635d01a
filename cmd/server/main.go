// Package main is the entry point for the snackboard server.
//
// main stays minimal: load configuration, build the logger, hand off to
// internal/server. All actual behavior lives in the internal packages.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sakif/snackboard/internal/config"
	"github.com/sakif/snackboard/internal/server"
)

func main() {
	// A .env file is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	// The SQLite file lives inside a directory that may not exist yet on a
	// fresh checkout (e.g. data/). ":memory:" has no directory to create.
	if cfg.DBPath != ":memory:" {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				logger.Error("failed to create database directory",
					slog.String("dir", dir),
					slog.String("error", err.Error()),
				)
				os.Exit(1)
			}
		}
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		DBPath:          cfg.DBPath,
		AllowedOrigin:   cfg.AllowedOrigin,
		BcryptCost:      cfg.BcryptCost,
		RedactLoginHash: cfg.RedactLoginHash,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// parseLogLevel maps the LOG_LEVEL config string onto slog levels,
// defaulting to info for unrecognised values.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
