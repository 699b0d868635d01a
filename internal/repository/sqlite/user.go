package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/snackboard/internal/apperror"
	"github.com/sakif/snackboard/internal/model"
	"github.com/sakif/snackboard/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB implements repository.UserRepository on the shared pool.
type UserDB struct {
	conn *sql.DB
}

// Create inserts a new user and fills in the generated id.
//
// The caller (AuthService) checks for a taken username first, but two
// concurrent registrations can both pass that check; the loser fails here
// on the UNIQUE constraint and the error propagates as a plain insert
// failure.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	res, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (username, password, role, name)
		 VALUES (?, ?, ?, ?)`,
		user.Username,
		user.Password,
		user.Role,
		user.Name,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByUsername looks a user up by exact username match.
// Returns apperror.ErrNotFound when no row matches.
func (u *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var usr model.User

	err := u.conn.QueryRowContext(ctx,
		`SELECT id, username, password, role, name
		 FROM users WHERE username = ?`,
		username,
	).Scan(
		&usr.ID,
		&usr.Username,
		&usr.Password,
		&usr.Role,
		&usr.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user not found with username %s", username),
			}
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	return &usr, nil
}

// GetByID retrieves a user by their id.
// Returns apperror.ErrNotFound when no row matches.
func (u *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var usr model.User

	err := u.conn.QueryRowContext(ctx,
		`SELECT id, username, password, role, name
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&usr.ID,
		&usr.Username,
		&usr.Password,
		&usr.Role,
		&usr.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return &usr, nil
}
