// Package handler implements the HTTP layer: decode and validate request
// bodies, call the matching service method, shape the JSON response.
//
// Response contract:
//   - every error body is        {"error": "<message>"}
//   - success bodies are either raw row(s) or {"message": "<text>"}
//     (registration additionally returns the new userId)
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/snackboard/internal/apperror"
)

// ErrorResponse is the single error shape every endpoint returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the success shape for operations that return no row.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body byte, hence the fixed order here.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends the
// {"error": ...} body.
//
// The service layer returns apperror sentinels; this is the only place
// they become status codes. Errors that don't carry an AppError are
// internal failures — the caller gets a generic message and the detail
// stays in the server logs (the services already logged it).
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		}

		writeJSON(w, status, ErrorResponse{Error: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
