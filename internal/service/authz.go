package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// AuthorizationGuard centralizes the owner/viewer visibility rules so the
// redaction logic lives in one place instead of being scattered across
// callers.
type AuthorizationGuard struct {
	repo       domain.Repository
	aggregator *AvailabilityAggregator
}

func NewAuthorizationGuard(repo domain.Repository, aggregator *AvailabilityAggregator) *AuthorizationGuard {
	return &AuthorizationGuard{repo: repo, aggregator: aggregator}
}

// CanModify reports whether the actor may mutate the item. Only the owner
// can; ownership never changes after creation.
func (g *AuthorizationGuard) CanModify(item *models.Item, actorID int64) bool {
	return item.OwnerID == actorID
}

// RequireOwner returns ErrForbidden unless the actor owns the item. Every
// mutating item operation goes through this before touching the store.
func (g *AuthorizationGuard) RequireOwner(item *models.Item, actorID int64) error {
	if !g.CanModify(item, actorID) {
		return fmt.Errorf("user %d does not own item %d: %w", actorID, item.ID, domain.ErrForbidden)
	}
	return nil
}

// RedactItem projects the item for the viewer: booking summaries are
// attached for the owner only, and comments carry the author's name but
// never the author's email.
func (g *AuthorizationGuard) RedactItem(ctx context.Context, item *models.Item, viewerID int64, now time.Time) (*models.ItemView, error) {
	view := &models.ItemView{Item: *item}

	last, next, err := g.aggregator.Summarize(ctx, item, viewerID, now)
	if err != nil {
		return nil, err
	}
	view.LastBooking = last
	view.NextBooking = next

	comments, err := g.repo.GetCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	view.Comments, err = g.redactComments(ctx, comments)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (g *AuthorizationGuard) redactComments(ctx context.Context, comments []*models.Comment) ([]models.CommentView, error) {
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		// A deleted author leaves the comment in place with a blank name;
		// a store failure still propagates.
		name := ""
		author, err := g.repo.GetUser(ctx, c.AuthorID)
		switch {
		case err == nil:
			name = author.Name
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
		views = append(views, models.CommentView{
			ID:         c.ID,
			Text:       c.Text,
			AuthorName: name,
			Created:    c.Created,
		})
	}
	return views, nil
}
