package service

import (
	"context"
	"io"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockRepo) UpdateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) GetUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockRepo) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}
func (m *mockRepo) CreateItem(ctx context.Context, i *models.Item) error {
	return m.Called(ctx, i).Error(0)
}
func (m *mockRepo) UpdateItem(ctx context.Context, i *models.Item) error {
	return m.Called(ctx, i).Error(0)
}
func (m *mockRepo) DeleteItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}
func (m *mockRepo) SearchAvailableItems(ctx context.Context, text string, limit, offset int) ([]*models.Item, error) {
	args := m.Called(ctx, text, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *mockRepo) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) DecideBooking(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockRepo) GetBookingsByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, bookerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetBookingsByOwner(ctx context.Context, ownerID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetBookingsByItemAndStatus(ctx context.Context, itemID int64, status string) ([]*models.Booking, error) {
	args := m.Called(ctx, itemID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) HasApprovedPastBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) CreateComment(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockRepo) GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *mockRepo) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}
func (m *mockRepo) CreateRequest(ctx context.Context, r *models.ItemRequest) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRepo) GetRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemRequest), args.Error(1)
}
func (m *mockRepo) GetRequestsFromOthers(ctx context.Context, requesterID int64, limit, offset int) ([]*models.ItemRequest, error) {
	args := m.Called(ctx, requesterID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemRequest), args.Error(1)
}
func (m *mockRepo) GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, text string, limit, offset int) ([]*models.Item, bool, error) {
	args := m.Called(ctx, text, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*models.Item), args.Bool(1), args.Error(2)
}
func (m *mockCache) Set(ctx context.Context, text string, limit, offset int, items []*models.Item) error {
	return m.Called(ctx, text, limit, offset, items).Error(0)
}
func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockBus struct {
	mock.Mock
}

func (m *mockBus) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}
