package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/snackboard/internal/apperror"
	"github.com/sakif/snackboard/internal/model"
	"github.com/sakif/snackboard/internal/repository"
)

// RequestService handles the snack-request lifecycle: submit, list, mark
// ordered, mark keep-on-hand, delete.
type RequestService struct {
	requests repository.RequestRepository
	logger   *slog.Logger
}

// NewRequestService creates a RequestService.
func NewRequestService(requests repository.RequestRepository, logger *slog.Logger) *RequestService {
	return &RequestService{
		requests: requests,
		logger:   logger,
	}
}

// Submit creates a new snack request for the given user.
//
// Only userID is semantically required; the item fields may all be blank.
// The service does not verify the user exists — the foreign key does, and
// a nonexistent user fails the insert. On success the returned request
// carries the generated id and the persisted created_at.
func (s *RequestService) Submit(ctx context.Context, userID int64, snack, drink, misc, link string) (*model.SnackRequest, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "user_id must be a positive integer")
	}

	req := &model.SnackRequest{
		UserID: userID,
		Snack:  strings.TrimSpace(snack),
		Drink:  strings.TrimSpace(drink),
		Misc:   strings.TrimSpace(misc),
		Link:   strings.TrimSpace(link),
	}

	if err := s.requests.Create(ctx, req); err != nil {
		s.logger.Error("failed to create snack request",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("submitting snack request: %w", err)
	}

	s.logger.Info("snack request submitted",
		slog.Int64("id", req.ID),
		slog.Int64("userID", req.UserID),
	)

	return req, nil
}

// ListAll returns every request with the requester's name joined in,
// sorted by the mixed activity timestamp (see repository.RequestRepository).
func (s *RequestService) ListAll(ctx context.Context) ([]model.SnackRequest, error) {
	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list snack requests", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing snack requests: %w", err)
	}
	return requests, nil
}

// ListByUser returns one user's requests, newest created first.
func (s *RequestService) ListByUser(ctx context.Context, userID int64) ([]model.SnackRequest, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("userId", "user id must be a positive integer")
	}

	requests, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list snack requests for user",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing snack requests for user %d: %w", userID, err)
	}
	return requests, nil
}

// SetOrdered marks or un-marks a request as ordered. The repository stamps
// or clears ordered_at together with the flag.
func (s *RequestService) SetOrdered(ctx context.Context, id int64, ordered bool) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "request id must be a positive integer")
	}

	if err := s.requests.SetOrdered(ctx, id, ordered); err != nil {
		return err
	}

	s.logger.Info("snack request order status updated",
		slog.Int64("id", id),
		slog.Bool("ordered", ordered),
	)
	return nil
}

// SetKeepOnHand marks or un-marks a request as a standing item.
func (s *RequestService) SetKeepOnHand(ctx context.Context, id int64, keep bool) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "request id must be a positive integer")
	}

	if err := s.requests.SetKeepOnHand(ctx, id, keep); err != nil {
		return err
	}

	s.logger.Info("snack request keep_on_hand updated",
		slog.Int64("id", id),
		slog.Bool("keepOnHand", keep),
	)
	return nil
}

// Delete permanently removes a request.
func (s *RequestService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "request id must be a positive integer")
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("snack request deleted", slog.Int64("id", id))
	return nil
}
