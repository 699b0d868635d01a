package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/snackboard/internal/apperror"
	"github.com/sakif/snackboard/internal/auth"
	"github.com/sakif/snackboard/internal/model"
)

// mockUserRepo is an in-memory repository.UserRepository. Service tests
// run against this instead of SQLite so they exercise only the business
// rules.
type mockUserRepo struct {
	byUsername map[string]*model.User
	nextID     int64
	createErr  error // forced failure for the insert path
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byUsername: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, taken := m.byUsername[user.Username]; taken {
		// mirrors the UNIQUE constraint firing at insert time
		return fmt.Errorf("UNIQUE constraint failed: users.username")
	}
	m.nextID++
	user.ID = m.nextID
	m.byUsername[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return nil, &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: "user not found with username " + username,
		}
	}
	return user, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, user := range m.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// bcrypt cost 4 keeps each test to a few milliseconds
	return NewAuthService(repo, auth.NewPasswordService(4), logger)
}

// =========================================================================
// Register TESTS
// =========================================================================

func TestRegister_Success(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	user, err := svc.Register(context.Background(), "alice", "s3cret", "", "Alice")
	require.NoError(t, err)

	assert.Positive(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.Name)
}

func TestRegister_DefaultsRole(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	user, err := svc.Register(context.Background(), "alice", "s3cret", "", "Alice")
	require.NoError(t, err)
	assert.Equal(t, DefaultRole, user.Role)

	admin, err := svc.Register(context.Background(), "root", "s3cret", "admin", "Root")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "alice", "s3cret", "", "Alice")
	require.NoError(t, err)

	stored := repo.byUsername["alice"]
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"), "stored password should be a bcrypt hash, got %q", stored.Password)
}

func TestRegister_DuplicateUsernameIsConflict(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Register(context.Background(), "alice", "s3cret", "", "Alice")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other", "", "Other Alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRegister_MissingFieldsAreValidationErrors(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	tests := []struct {
		name                           string
		username, password, role, uname string
	}{
		{"missing username", "", "pw", "", "Name"},
		{"whitespace username", "   ", "pw", "", "Name"},
		{"missing password", "alice", "", "", "Name"},
		{"missing name", "alice", "pw", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password, tt.role, tt.uname)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

// Two registrations can pass the duplicate pre-check before either
// inserts; the loser must surface as a failed insert, not a panic or a
// silent success.
func TestRegister_InsertFailureIsReported(t *testing.T) {
	repo := newMockUserRepo()
	repo.createErr = fmt.Errorf("UNIQUE constraint failed: users.username")
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "alice", "s3cret", "", "Alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrConflict, "a lost insert race is an internal failure, not a pre-checked conflict")
}

// =========================================================================
// Login TESTS
// =========================================================================

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	registered, err := svc.Register(context.Background(), "alice", "s3cret", "", "Alice")
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
	// Login returns the stored row as-is, hash included.
	assert.True(t, strings.HasPrefix(user.Password, "$2"))
}

func TestLogin_WrongPasswordAndUnknownUserAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Register(context.Background(), "alice", "s3cret", "", "Alice")
	require.NoError(t, err)

	_, wrongPw := svc.Login(context.Background(), "alice", "not-it")
	_, unknownUser := svc.Login(context.Background(), "mallory", "whatever")

	require.Error(t, wrongPw)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPw, apperror.ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, apperror.ErrUnauthorized)

	// The message must be identical in both cases so the endpoint cannot
	// be used to enumerate usernames.
	assert.Equal(t, wrongPw.Error(), unknownUser.Error())
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
