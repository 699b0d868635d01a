// Package repository declares the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite); the
// services only ever see these interfaces, so tests swap in mocks and the
// backing store can change without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/snackboard/internal/model"
)

// UserRepository stores registered accounts. Users are created once and
// never updated or deleted through the service.
type UserRepository interface {
	// Create inserts a new user and sets user.ID to the generated key.
	// A duplicate username fails on the column's UNIQUE constraint.
	Create(ctx context.Context, user *model.User) error

	// GetByUsername looks a user up by exact username match.
	// Returns apperror.ErrNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// GetByID returns apperror.ErrNotFound when no such user exists.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// RequestRepository stores snack requests and their ordering lifecycle.
// All mutating methods return apperror.ErrNotFound when the id does not
// match a row.
type RequestRepository interface {
	// Create inserts a new request with server-assigned created_at and
	// sets req.ID and req.CreatedAt to the persisted values.
	Create(ctx context.Context, req *model.SnackRequest) error

	// ListAll returns every request joined with the requesting user's
	// display name, sorted descending by a single effective timestamp:
	// ordered_at for ordered requests, created_at for the rest.
	ListAll(ctx context.Context) ([]model.SnackRequest, error)

	// ListByUser returns one user's requests, newest created first.
	ListByUser(ctx context.Context, userID int64) ([]model.SnackRequest, error)

	// SetOrdered writes ordered_flag and ordered_at together: marking true
	// stamps ordered_at with the current time, marking false clears it.
	SetOrdered(ctx context.Context, id int64, ordered bool) error

	// SetKeepOnHand flips the standing-item flag, leaving the ordered
	// state untouched.
	SetKeepOnHand(ctx context.Context, id int64, keep bool) error

	// Delete removes the row permanently.
	Delete(ctx context.Context, id int64) error
}
