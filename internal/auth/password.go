// Package auth — password hashing utilities.
//
// bcrypt is deliberately slow and salts every hash itself, so the output is
// a self-contained string (version, cost, salt, digest) that goes straight
// into the password column. Never store plaintext or fast hashes.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor used for new passwords.
//
// Cost 10 (2^10 rounds) is the contract this service inherited from the
// system it replaces — stored hashes from both generations verify against
// each other, since bcrypt encodes the cost in the hash itself.
const defaultCost = 10

// PasswordService provides bcrypt hashing and verification.
//
// The cost is injectable so tests can use the bcrypt minimum (cost 4) and
// avoid paying ~100ms per hashing operation.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the given cost.
// Values below bcrypt.MinCost fall back to the default (10).
func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost {
		cost = defaultCost
	}
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// Returns an error if the plaintext exceeds 72 bytes — bcrypt silently
// truncates longer inputs, so we reject them explicitly instead.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt hash.
// Returns nil on a match. The comparison is constant-time inside bcrypt,
// so response timing does not leak how close a guess was.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
