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

// BookingService owns the booking state machine: creation into WAITING and
// the single owner-driven transition to APPROVED or REJECTED.
type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create validates the booking against the item and the booker and persists
// it in WAITING. The interval ordering is re-asserted here even though the
// API layer already validated syntax; the state machine does not trust
// callers with a domain invariant.
func (s *BookingService) Create(ctx context.Context, itemID, bookerID int64, start, end time.Time) (*models.Booking, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("booking start %s is not before end %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), domain.ErrInvalidInterval)
	}

	if _, err := s.repo.GetUser(ctx, bookerID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == bookerID {
		return nil, fmt.Errorf("user %d owns item %d: %w", bookerID, itemID, domain.ErrForbidden)
	}
	if !item.Available {
		return nil, fmt.Errorf("item %d is not available: %w", itemID, domain.ErrInvalidState)
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking, bookerID)
	return booking, nil
}

// Decide approves or rejects a WAITING booking. The status check-and-set is
// atomic in the store; a concurrent decide that loses the race gets
// ErrInvalidState and the stored status is left untouched.
func (s *BookingService) Decide(ctx context.Context, bookingID, ownerID int64, approve bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("user %d does not own item %d: %w", ownerID, item.ID, domain.ErrForbidden)
	}
	if booking.Status != models.StatusWaiting {
		return nil, fmt.Errorf("booking %d is already %s: %w", bookingID, booking.Status, domain.ErrInvalidState)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approve {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.repo.DecideBooking(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	metrics.IncBookingDecided(status)
	s.publishEvent(eventType, booking, ownerID)
	return booking, nil
}

// Get returns the booking to its booker or the item's owner; anyone else
// gets ErrForbidden.
func (s *BookingService) Get(ctx context.Context, bookingID, viewerID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID == viewerID {
		return booking, nil
	}

	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != viewerID {
		return nil, fmt.Errorf("user %d is neither booker nor owner of booking %d: %w",
			viewerID, bookingID, domain.ErrForbidden)
	}
	return booking, nil
}

// ListForUser returns the user's bookings as booker or owner, ordered by
// start descending and filtered by state. CURRENT, PAST and FUTURE are
// evaluated against a single now taken at the start of the call.
func (s *BookingService) ListForUser(ctx context.Context, userID int64, role, state string) ([]*models.Booking, error) {
	if !models.ValidListState(state) {
		return nil, fmt.Errorf("unknown list state %q: %w", state, domain.ErrInvalidState)
	}

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var bookings []*models.Booking
	var err error
	switch role {
	case models.RoleBooker:
		bookings, err = s.repo.GetBookingsByBooker(ctx, userID)
	case models.RoleOwner:
		bookings, err = s.repo.GetBookingsByOwner(ctx, userID)
	default:
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidState)
	}
	if err != nil {
		return nil, err
	}

	return filterByState(bookings, state, time.Now()), nil
}

// filterByState partitions bookings by time or status. The store returns
// them ordered by start descending and filtering preserves that order.
func filterByState(bookings []*models.Booking, state string, now time.Time) []*models.Booking {
	filtered := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		switch state {
		case models.StateAll:
			filtered = append(filtered, b)
		case models.StateCurrent:
			if !b.Start.After(now) && !b.End.Before(now) {
				filtered = append(filtered, b)
			}
		case models.StatePast:
			if b.End.Before(now) {
				filtered = append(filtered, b)
			}
		case models.StateFuture:
			if b.Start.After(now) {
				filtered = append(filtered, b)
			}
		case models.StateWaiting:
			if b.Status == models.StatusWaiting {
				filtered = append(filtered, b)
			}
		case models.StateRejected:
			if b.Status == models.StatusRejected {
				filtered = append(filtered, b)
			}
		}
	}
	return filtered
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
		ActorID:   actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
