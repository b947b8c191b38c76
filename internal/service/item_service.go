package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	guard    *AuthorizationGuard
	cache    domain.SearchCache
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, guard *AuthorizationGuard, cache domain.SearchCache, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		guard:    guard,
		cache:    cache,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create persists a new item owned by ownerID. When the item fulfils an
// existing request the request must exist.
func (s *ItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if item.RequestID != 0 {
		if _, err := s.repo.GetRequest(ctx, item.RequestID); err != nil {
			return nil, err
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSearch(ctx)
	s.publishEvent(events.EventItemCreated, item, ownerID)
	return item, nil
}

// Get returns the item projected for the viewer.
func (s *ItemService) Get(ctx context.Context, itemID, viewerID int64) (*models.ItemView, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.guard.RedactItem(ctx, item, viewerID, time.Now())
}

// Update applies a partial update to name, description or availability.
// Owner only; ownership itself is never part of the patch.
func (s *ItemService) Update(ctx context.Context, actorID int64, patch *models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireOwner(item, actorID); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateSearch(ctx)
	return item, nil
}

// Delete removes the item. Owner only.
func (s *ItemService) Delete(ctx context.Context, itemID, actorID int64) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.guard.RequireOwner(item, actorID); err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.invalidateSearch(ctx)
	return nil
}

// ListByOwner returns the owner's items with booking summaries populated;
// the viewer is the owner, so nothing is redacted away.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.ItemView, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		view, err := s.guard.RedactItem(ctx, item, ownerID, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Search finds available items by text in name or description. Blank text
// yields an empty result, not the whole catalog. Results go through the
// search cache; the cache never sees booking or comment state.
func (s *ItemService) Search(ctx context.Context, text string, limit, offset int) ([]*models.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*models.Item{}, nil
	}
	if limit <= 0 {
		limit = models.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	if s.cache != nil {
		items, ok, err := s.cache.Get(ctx, text, limit, offset)
		if err != nil {
			s.logger.Warn().Err(err).Msg("search cache get error")
		} else if ok {
			return items, nil
		}
	}

	items, err := s.repo.SearchAvailableItems(ctx, text, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Item{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, text, limit, offset, items); err != nil {
			s.logger.Warn().Err(err).Msg("search cache set error")
		}
	}
	return items, nil
}

func (s *ItemService) invalidateSearch(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("search cache invalidate error")
	}
}

func (s *ItemService) publishEvent(eventType string, item *models.Item, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.ItemEventPayload{
		ItemID:    item.ID,
		OwnerID:   item.OwnerID,
		Name:      item.Name,
		Available: item.Available,
		ActorID:   actorID,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("item_id", item.ID).Msg("publish event error")
	}
}
