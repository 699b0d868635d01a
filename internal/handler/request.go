package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/snackboard/internal/apperror"
	"github.com/sakif/snackboard/internal/service"
)

// RequestHandler exposes the snack-request lifecycle endpoints.
type RequestHandler struct {
	requests *service.RequestService
	logger   *slog.Logger
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(requests *service.RequestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		logger:   logger,
	}
}

type submitRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Snack  string `json:"snack"`
	Drink  string `json:"drink"`
	Misc   string `json:"misc"`
	Link   string `json:"link"`
}

// Boolean bodies use pointers so "required" can tell an explicit false
// apart from a missing field — un-marking sends {"ordered": false}.
type setOrderedRequest struct {
	Ordered *bool `json:"ordered" validate:"required"`
}

type setKeepOnHandRequest struct {
	KeepOnHand *bool `json:"keep_on_hand" validate:"required"`
}

// HandleListAll returns every snack request joined with the requester's
// display name.
//
// HTTP: GET /api/requests
//
// Rows are sorted descending by a single effective timestamp: ordered_at
// when the request has been ordered, created_at otherwise, so recently
// actioned items float to the top together with fresh submissions.
func (h *RequestHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// HandleListByUser returns one user's requests, newest created first.
//
// HTTP: GET /api/requests/user/{userID}
func (h *RequestHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	requests, err := h.requests.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// HandleSubmit creates a new snack request.
//
// HTTP: POST /api/requests
// Body: {"user_id", "snack"?, "drink"?, "misc"?, "link"?}
//
// Responds 201 with the full persisted row — the id and created_at in the
// response are the values actually written.
func (h *RequestHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid submit body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.requests.Submit(r.Context(), req.UserID, req.Snack, req.Drink, req.Misc, req.Link)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleSetOrdered marks or un-marks a request as ordered.
//
// HTTP: PUT /api/requests/{id}/order
// Body: {"ordered": true|false}
//
// Marking true stamps ordered_at; marking false clears it. 404 when the
// id matches no request.
func (h *RequestHandler) HandleSetOrdered(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req setOrderedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid order body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.requests.SetOrdered(r.Context(), id, *req.Ordered); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "order status updated"})
}

// HandleSetKeepOnHand marks or un-marks a request as a standing item,
// independent of its ordered state.
//
// HTTP: PUT /api/requests/{id}/keep
// Body: {"keep_on_hand": true|false}
func (h *RequestHandler) HandleSetKeepOnHand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req setKeepOnHandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid keep_on_hand body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.requests.SetKeepOnHand(r.Context(), id, *req.KeepOnHand); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "keep_on_hand updated"})
}

// HandleDelete permanently removes a request. Deleting the same id twice
// yields 200 then 404.
//
// HTTP: DELETE /api/requests/{id}
func (h *RequestHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.requests.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "request deleted"})
}

// pathID parses a numeric path parameter. Chi populates the request's
// path values, so r.PathValue works under chi routing.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, name+" must be an integer")
	}
	return id, nil
}
