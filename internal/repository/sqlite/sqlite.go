// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// We use modernc.org/sqlite — a pure Go translation of SQLite — so the
// binary builds without CGo and cross-compiles anywhere Go runs. Access
// goes through database/sql: sql.DB is a connection pool, every query
// borrows a connection for its duration and returns it on completion, and
// all repository methods take a context so a cancelled request releases
// its connection.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB owns the sql.DB pool and hands out the per-table repositories.
// Create it once at startup (server.New) and Close it on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath, verifies the connection, and
// creates the schema if it does not exist yet.
//
// A failure here aborts startup — the service does not limp along against
// a datastore it could not initialise.
//
// dbPath examples:
//   - "data/snackboard.db" → file-based, persistent
//   - ":memory:"           → in-memory, used by the tests
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// SQLite allows a single writer, and both the PRAGMAs below and a
	// ":memory:" database are per-connection state. One pooled connection
	// keeps all of that consistent.
	conn.SetMaxOpenConns(1)

	// Ping forces a real connection now so a bad path or permissions
	// problem surfaces at startup, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — several request
	// goroutines hit this database concurrently.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// SQLite ships with foreign keys off; snack_requests.user_id relies on
	// the constraint, so turn them on per connection.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Defer this wherever New is called.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this pool.
func (db *DB) Users() *UserDB {
	return &UserDB{conn: db.conn}
}

// Requests returns the snack-request repository backed by this pool.
func (db *DB) Requests() *RequestDB {
	return &RequestDB{conn: db.conn}
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is idempotent, so
// running against an already-initialised database is safe and destroys
// nothing. Order matters: users first, snack_requests references it.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role     TEXT NOT NULL DEFAULT 'user',
			name     TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS snack_requests (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      INTEGER NOT NULL REFERENCES users(id),
			snack        TEXT NOT NULL DEFAULT '',
			drink        TEXT NOT NULL DEFAULT '',
			misc         TEXT NOT NULL DEFAULT '',
			link         TEXT NOT NULL DEFAULT '',
			ordered_flag INTEGER NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			ordered_at   DATETIME,
			keep_on_hand INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_snack_requests_user_id ON snack_requests(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating snack_requests table: %w", err)
	}

	return nil
}
