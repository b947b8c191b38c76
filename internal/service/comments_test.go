package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCommentService(repo *mockRepo) *CommentService {
	return NewCommentService(repo, newTestGuard(repo), nil, testLogger())
}

func TestCanComment(t *testing.T) {
	repo := new(mockRepo)
	svc := newCommentService(repo)

	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	repo.On("HasApprovedPastBooking", mock.Anything, int64(1), int64(2), now).Return(true, nil)
	repo.On("HasApprovedPastBooking", mock.Anything, int64(1), int64(3), now).Return(false, nil)

	ok, err := svc.CanComment(context.Background(), 2, 1, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanComment(context.Background(), 3, 1, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddComment(t *testing.T) {
	repo := new(mockRepo)
	svc := newCommentService(repo)

	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	repo.On("GetUser", mock.Anything, int64(2)).Return(&models.User{ID: 2, Name: "Booker"}, nil)
	repo.On("GetItem", mock.Anything, int64(1)).Return(&models.Item{ID: 1, OwnerID: 5}, nil)
	repo.On("HasApprovedPastBooking", mock.Anything, int64(1), int64(2), now).Return(true, nil)
	repo.On("CreateComment", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	comment, err := svc.Add(context.Background(), 2, 1, "great drill", now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), comment.AuthorID)
	assert.Equal(t, "great drill", comment.Text)
	// Creation time is assigned by the server, not the client.
	assert.True(t, comment.Created.Equal(now))
	repo.AssertExpectations(t)
}

func TestAddCommentIneligible(t *testing.T) {
	repo := new(mockRepo)
	svc := newCommentService(repo)

	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	repo.On("GetUser", mock.Anything, int64(3)).Return(&models.User{ID: 3}, nil)
	repo.On("GetItem", mock.Anything, int64(1)).Return(&models.Item{ID: 1, OwnerID: 5}, nil)
	repo.On("HasApprovedPastBooking", mock.Anything, int64(1), int64(3), now).Return(false, nil)

	_, err := svc.Add(context.Background(), 3, 1, "never used it", now)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
}

func TestAddCommentEligibilityCheckedAtWrite(t *testing.T) {
	repo := new(mockRepo)
	svc := newCommentService(repo)

	// Eligible at the earlier read but the booking is gone by write time.
	readTime := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	writeTime := readTime.Add(time.Minute)

	repo.On("HasApprovedPastBooking", mock.Anything, int64(1), int64(2), readTime).Return(true, nil)
	repo.On("HasApprovedPastBooking", mock.Anything, int64(1), int64(2), writeTime).Return(false, nil)
	repo.On("GetUser", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	repo.On("GetItem", mock.Anything, int64(1)).Return(&models.Item{ID: 1, OwnerID: 5}, nil)

	ok, err := svc.CanComment(context.Background(), 2, 1, readTime)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Add(context.Background(), 2, 1, "too late", writeTime)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
}

func TestAddCommentItemMissing(t *testing.T) {
	repo := new(mockRepo)
	svc := newCommentService(repo)

	repo.On("GetUser", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	repo.On("GetItem", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

	_, err := svc.Add(context.Background(), 2, 1, "text", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListComments(t *testing.T) {
	repo := new(mockRepo)
	svc := newCommentService(repo)

	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	repo.On("GetItem", mock.Anything, int64(1)).Return(&models.Item{ID: 1, OwnerID: 5}, nil)
	repo.On("GetCommentsByItem", mock.Anything, int64(1)).Return([]*models.Comment{
		{ID: 1, ItemID: 1, AuthorID: 2, Text: "first", Created: now.Add(-2 * time.Hour)},
		{ID: 2, ItemID: 1, AuthorID: 3, Text: "second", Created: now.Add(-time.Hour)},
	}, nil)
	repo.On("GetUser", mock.Anything, int64(2)).Return(&models.User{ID: 2, Name: "Alice"}, nil)
	repo.On("GetUser", mock.Anything, int64(3)).Return(&models.User{ID: 3, Name: "Bob"}, nil)

	views, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "first", views[0].Text)
	assert.Equal(t, "Alice", views[0].AuthorName)
	assert.Equal(t, "Bob", views[1].AuthorName)
}
