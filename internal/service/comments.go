package service

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// CommentService gates comment creation on a completed approved booking.
// Eligibility is evaluated against the store on every write; it is never
// cached, so a booking that disappears between a read-side check and the
// write makes the write fail.
type CommentService struct {
	repo     domain.Repository
	guard    *AuthorizationGuard
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewCommentService(repo domain.Repository, guard *AuthorizationGuard, eventBus domain.EventPublisher, logger *zerolog.Logger) *CommentService {
	return &CommentService{
		repo:     repo,
		guard:    guard,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CanComment reports whether the user holds an approved booking on the item
// that ended strictly before now.
func (s *CommentService) CanComment(ctx context.Context, userID, itemID int64, now time.Time) (bool, error) {
	return s.repo.HasApprovedPastBooking(ctx, itemID, userID, now)
}

// Add persists a comment with a server-assigned creation time after
// re-checking eligibility.
func (s *CommentService) Add(ctx context.Context, userID, itemID int64, text string, now time.Time) (*models.Comment, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	eligible, err := s.CanComment(ctx, userID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, fmt.Errorf("user %d has no finished approved booking on item %d: %w",
			userID, itemID, domain.ErrForbidden)
	}

	comment := &models.Comment{
		ItemID:   itemID,
		AuthorID: userID,
		Text:     text,
		Created:  now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	metrics.IncCommentAdded()
	s.publishEvent(comment)
	return comment, nil
}

// List returns the item's comments as viewer-safe projections,
// oldest first.
func (s *CommentService) List(ctx context.Context, itemID int64) ([]*models.CommentView, error) {
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	comments, err := s.repo.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	views, err := s.guard.redactComments(ctx, comments)
	if err != nil {
		return nil, err
	}

	out := make([]*models.CommentView, len(views))
	for i := range views {
		out[i] = &views[i]
	}
	return out, nil
}

func (s *CommentService) publishEvent(comment *models.Comment) {
	if s.eventBus == nil {
		return
	}

	payload := events.CommentEventPayload{
		CommentID: comment.ID,
		ItemID:    comment.ItemID,
		AuthorID:  comment.AuthorID,
		Created:   comment.Created,
	}
	if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
		s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
	}
}
