package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// AvailabilityAggregator computes the most recent started and the nearest
// upcoming approved booking on an item. A pure read; no side effects.
type AvailabilityAggregator struct {
	repo domain.Repository
}

func NewAvailabilityAggregator(repo domain.Repository) *AvailabilityAggregator {
	return &AvailabilityAggregator{repo: repo}
}

// Summarize returns (last, next) approved booking refs for the item. Both
// are nil unless the viewer owns the item: booking history on an item is
// the owner's business only. Items with no approved bookings yield nils.
func (a *AvailabilityAggregator) Summarize(ctx context.Context, item *models.Item, viewerID int64, now time.Time) (*models.BookingRef, *models.BookingRef, error) {
	if item.OwnerID != viewerID {
		return nil, nil, nil
	}

	bookings, err := a.repo.GetBookingsByItemAndStatus(ctx, item.ID, models.StatusApproved)
	if err != nil {
		return nil, nil, err
	}

	var last, next *models.Booking
	for _, b := range bookings {
		if b.Start.After(now) {
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		} else {
			if last == nil || b.Start.After(last.Start) {
				last = b
			}
		}
	}

	return bookingRef(last), bookingRef(next), nil
}

func bookingRef(b *models.Booking) *models.BookingRef {
	if b == nil {
		return nil
	}
	return &models.BookingRef{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
