package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// RequestService manages item requests: wishes for items that do not exist
// in the catalog yet. Requests are read-only after creation.
type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, description string, now time.Time) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     now,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) Get(ctx context.Context, requestID, viewerID int64) (*models.RequestView, error) {
	if _, err := s.repo.GetUser(ctx, viewerID); err != nil {
		return nil, err
	}

	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, request)
}

// ListOwn returns the user's requests, newest first, with the items created
// to fulfil each one.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]*models.RequestView, error) {
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

// ListFromOthers pages through other users' requests, newest first.
func (s *RequestService) ListFromOthers(ctx context.Context, viewerID int64, limit, offset int) ([]*models.RequestView, error) {
	if _, err := s.repo.GetUser(ctx, viewerID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = models.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	requests, err := s.repo.GetRequestsFromOthers(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

func (s *RequestService) toView(ctx context.Context, request *models.ItemRequest) (*models.RequestView, error) {
	items, err := s.repo.GetItemsByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	view := &models.RequestView{ItemRequest: *request, Items: make([]models.Item, 0, len(items))}
	for _, item := range items {
		view.Items = append(view.Items, *item)
	}
	return view, nil
}

func (s *RequestService) toViews(ctx context.Context, requests []*models.ItemRequest) ([]*models.RequestView, error) {
	views := make([]*models.RequestView, 0, len(requests))
	for _, r := range requests {
		view, err := s.toView(ctx, r)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
