// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and shape responses; services enforce the rules and
// orchestrate repositories; repositories talk SQL. Services receive the
// repository interfaces (not concrete types), so tests run against mocks
// and the handlers never see a database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/snackboard/internal/apperror"
	"github.com/sakif/snackboard/internal/auth"
	"github.com/sakif/snackboard/internal/model"
	"github.com/sakif/snackboard/internal/repository"
)

// DefaultRole is assigned to registrations that omit the role field.
// Roles are a client-side convention; the server never checks them.
const DefaultRole = "user"

// invalidCredentials is the single message for every authentication
// failure. An unknown username and a wrong password must be
// indistinguishable to the caller, otherwise the endpoint enumerates
// usernames.
const invalidCredentials = "invalid username or password"

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new user account and returns it.
//
// Flow: check the username is free, bcrypt-hash the password, insert.
// A taken username returns apperror.ErrConflict before anything is
// written. The check and the insert are not one transaction — a
// concurrent registration of the same username can slip between them, in
// which case the loser fails on the UNIQUE constraint and surfaces as an
// insert error rather than a conflict.
func (s *AuthService) Register(ctx context.Context, username, password, role, name string) (*model.User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if role == "" {
		role = DefaultRole
	}

	// Duplicate check: anything other than "not found" from the lookup is
	// either an existing user (conflict) or a real datastore failure.
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil, apperror.Conflict("username already taken")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		s.logger.Error("failed to check username availability",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	user := &model.User{
		Username: username,
		Password: hash,
		Role:     role,
		Name:     name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
		slog.String("role", user.Role),
	)

	return user, nil
}

// Login authenticates a username/password pair and returns the stored
// user row.
//
// Both failure modes — unknown username and wrong password — return
// apperror.ErrUnauthorized with the identical generic message. The bcrypt
// comparison is constant-time. No session or token is issued; the caller
// keeps the returned row as its notion of being logged in.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(invalidCredentials)
		}
		s.logger.Error("failed to look up user for login",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("logging in: %w", err)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}
