package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/snackboard/internal/apperror"
	"github.com/sakif/snackboard/internal/service"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth       *service.AuthService
	redactHash bool
	logger     *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
//
// redactHash controls whether login responses blank the stored password
// hash. The default deployment leaves it false — existing clients read
// the full row — but the shape of the response is identical either way.
func NewAuthHandler(auth *service.AuthService, redactHash bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		redactHash: redactHash,
		logger:     logger,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"` // optional, defaults to "user"
	Name     string `json:"name" validate:"required"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates a new user account.
//
// HTTP: POST /api/register
// Body: {"username", "password", "role"?, "name"}
//
// 201 {"message","userId"} on success, 409 when the username is taken,
// 400 for a malformed or incomplete body.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password, req.Role, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "user registered",
		UserID:  user.ID,
	})
}

// HandleLogin authenticates a user and returns the stored row.
//
// HTTP: POST /api/login
// Body: {"username", "password"}
//
// 200 with the user row on success; 401 with one fixed generic message
// for both an unknown username and a wrong password. No token or session
// is issued.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.redactHash {
		// Copy before blanking so the service's row is untouched.
		redacted := *user
		redacted.Password = ""
		writeJSON(w, http.StatusOK, redacted)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
