package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/snackboard/internal/apperror"
	"github.com/sakif/snackboard/internal/model"
	"github.com/sakif/snackboard/internal/repository"
)

// compile-time check that *RequestDB implements repository.RequestRepository
var _ repository.RequestRepository = (*RequestDB)(nil)

// RequestDB implements repository.RequestRepository on the shared pool.
type RequestDB struct {
	conn *sql.DB
}

// requestColumns is the projection shared by every SELECT in this file.
// Scan order in scanRequest must match.
const requestColumns = `id, user_id, snack, drink, misc, link,
	ordered_flag, created_at, ordered_at, keep_on_hand`

// Create inserts a new request with created_at stamped server-side.
// After the call, req.ID and req.CreatedAt hold the persisted values;
// the flags keep their zero-value defaults (false/false).
//
// user_id is not checked against the users table here — the foreign key
// constraint enforces referential integrity at the schema level, and a
// nonexistent user fails the insert.
func (r *RequestDB) Create(ctx context.Context, req *model.SnackRequest) error {
	req.CreatedAt = time.Now().UTC()
	req.OrderedFlag = false
	req.OrderedAt = nil
	req.KeepOnHand = false

	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO snack_requests (user_id, snack, drink, misc, link, ordered_flag, created_at, keep_on_hand)
		 VALUES (?, ?, ?, ?, ?, 0, ?, 0)`,
		req.UserID,
		req.Snack,
		req.Drink,
		req.Misc,
		req.Link,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting snack request for user %d: %w", req.UserID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new request id: %w", err)
	}
	req.ID = id

	return nil
}

// ListAll returns every request joined with the requesting user's display
// name, newest activity first.
//
// The ordering key is a single mixed timestamp: ordered requests sort by
// when they were ordered, unordered ones by when they were created. This
// is one sort pass over one effective column, not two grouped passes.
func (r *RequestDB) ListAll(ctx context.Context) ([]model.SnackRequest, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.snack, r.drink, r.misc, r.link,
		        r.ordered_flag, r.created_at, r.ordered_at, r.keep_on_hand,
		        u.name AS user_name
		 FROM snack_requests r
		 JOIN users u ON u.id = r.user_id
		 ORDER BY CASE WHEN r.ordered_flag = 1 THEN r.ordered_at ELSE r.created_at END DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snack requests: %w", err)
	}
	defer rows.Close()

	requests := make([]model.SnackRequest, 0, 16)
	for rows.Next() {
		var req model.SnackRequest
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.Snack, &req.Drink, &req.Misc, &req.Link,
			&req.OrderedFlag, &req.CreatedAt, &req.OrderedAt, &req.KeepOnHand,
			&req.UserName,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning snack request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snack requests: %w", err)
	}

	return requests, nil
}

// ListByUser returns one user's requests ordered by created_at only —
// ordered_at does not affect this view. An unknown user id simply yields
// an empty list.
func (r *RequestDB) ListByUser(ctx context.Context, userID int64) ([]model.SnackRequest, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+requestColumns+`
		 FROM snack_requests
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snack requests for user %d: %w", userID, err)
	}
	defer rows.Close()

	requests := make([]model.SnackRequest, 0, 8)
	for rows.Next() {
		var req model.SnackRequest
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.Snack, &req.Drink, &req.Misc, &req.Link,
			&req.OrderedFlag, &req.CreatedAt, &req.OrderedAt, &req.KeepOnHand,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning snack request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snack requests: %w", err)
	}

	return requests, nil
}

// SetOrdered writes ordered_flag and ordered_at together in one statement,
// keeping the invariant that ordered_at is non-null iff the flag is true.
// Marking is a toggle: ordered=false clears the timestamp again.
func (r *RequestDB) SetOrdered(ctx context.Context, id int64, ordered bool) error {
	var orderedAt any // nil → SQL NULL when un-marking
	if ordered {
		orderedAt = time.Now().UTC()
	}

	result, err := r.conn.ExecContext(ctx,
		`UPDATE snack_requests SET ordered_flag = ?, ordered_at = ? WHERE id = ?`,
		ordered,
		orderedAt,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating order status of request %d: %w", id, err)
	}

	return checkAffected(result, id)
}

// SetKeepOnHand flips only the standing-item flag; the ordered columns are
// deliberately untouched.
func (r *RequestDB) SetKeepOnHand(ctx context.Context, id int64, keep bool) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE snack_requests SET keep_on_hand = ? WHERE id = ?`,
		keep,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating keep_on_hand of request %d: %w", id, err)
	}

	return checkAffected(result, id)
}

// Delete removes the row permanently. There is no soft delete.
func (r *RequestDB) Delete(ctx context.Context, id int64) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM snack_requests WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting request %d: %w", id, err)
	}

	return checkAffected(result, id)
}

// checkAffected translates "zero rows touched" into a NotFound domain
// error. One UPDATE/DELETE plus RowsAffected is cheaper than a SELECT
// followed by the mutation.
func checkAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("snack request", id)
	}
	return nil
}
