package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBooking(t *testing.T, db *DB, itemID, bookerID int64, start, end time.Time) *models.Booking {
	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	require.NoError(t, db.CreateBooking(context.Background(), booking))
	return booking
}

func TestCreateAndGetBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	start := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)
	booking := createTestBooking(t, db, item.ID, booker.ID, start, end)
	assert.NotZero(t, booking.ID)

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ItemID)
	assert.Equal(t, booker.ID, got.BookerID)
	assert.Equal(t, models.StatusWaiting, got.Status)
	assert.True(t, got.Start.Equal(start))
	assert.True(t, got.End.Equal(end))
}

func TestGetBookingNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBooking(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecideBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)
	booking := createTestBooking(t, db, item.ID, booker.ID,
		time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC))

	require.NoError(t, db.DecideBooking(ctx, booking.ID, models.StatusApproved))

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)

	// The booking is no longer waiting, so a second decision must fail.
	err = db.DecideBooking(ctx, booking.ID, models.StatusRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err = db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
}

func TestDecideBookingNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.DecideBooking(context.Background(), 123, models.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingListsOrderedByStartDesc(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	base := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	first := createTestBooking(t, db, item.ID, booker.ID, base, base.Add(24*time.Hour))
	second := createTestBooking(t, db, item.ID, booker.ID, base.Add(48*time.Hour), base.Add(72*time.Hour))

	byBooker, err := db.GetBookingsByBooker(ctx, booker.ID)
	require.NoError(t, err)
	require.Len(t, byBooker, 2)
	assert.Equal(t, second.ID, byBooker[0].ID)
	assert.Equal(t, first.ID, byBooker[1].ID)

	byOwner, err := db.GetBookingsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, byOwner, 2)
	assert.Equal(t, second.ID, byOwner[0].ID)

	// The booker is not an owner of anything.
	none, err := db.GetBookingsByOwner(ctx, booker.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetBookingsByItemAndStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	base := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	approved := createTestBooking(t, db, item.ID, booker.ID, base, base.Add(24*time.Hour))
	require.NoError(t, db.DecideBooking(ctx, approved.ID, models.StatusApproved))
	createTestBooking(t, db, item.ID, booker.ID, base.Add(48*time.Hour), base.Add(72*time.Hour))

	got, err := db.GetBookingsByItemAndStatus(ctx, item.ID, models.StatusApproved)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, approved.ID, got[0].ID)
}

func TestHasApprovedPastBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

	ok, err := db.HasApprovedPastBooking(ctx, item.ID, booker.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	// A finished booking that was never approved does not count.
	past := createTestBooking(t, db, item.ID, booker.ID,
		now.Add(-72*time.Hour), now.Add(-48*time.Hour))
	ok, err = db.HasApprovedPastBooking(ctx, item.ID, booker.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.DecideBooking(ctx, past.ID, models.StatusApproved))
	ok, err = db.HasApprovedPastBooking(ctx, item.ID, booker.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	// An approved booking still in progress does not count either.
	other := createTestUser(t, db, "Other", "other@example.com")
	ongoing := createTestBooking(t, db, item.ID, other.ID,
		now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, db.DecideBooking(ctx, ongoing.ID, models.StatusApproved))
	ok, err = db.HasApprovedPastBooking(ctx, item.ID, other.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)
}
