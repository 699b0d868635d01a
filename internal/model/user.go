// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — the `json:"..."` tags tell
// encoding/json how to serialize each field, and the `db:"..."` tags document
// the column each field maps to.
package model

// User represents a registered account.
//
// Password holds the bcrypt hash of the user's password, never the plaintext.
// Note that the field carries a json tag: the login endpoint returns the full
// stored row, hash included, because existing clients consume that shape.
// This exposure is deliberate and documented in DESIGN.md — the server can be
// configured to blank the hash in login responses without changing the shape.
//
// Role is free text with the convention "user" / "admin"; the server applies
// no role-based checks. Distinguishing administrators is a client concern.
type User struct {
	ID       int64  `json:"id"       db:"id"`
	Username string `json:"username" db:"username"` // unique, exact-match login key
	Password string `json:"password" db:"password"` // bcrypt hash, never plaintext
	Role     string `json:"role"     db:"role"`     // defaults to "user"
	Name     string `json:"name"     db:"name"`     // display name
}
