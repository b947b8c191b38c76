package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository is the entity store consumed by the services. Implementations
// map their own "no rows" conditions to ErrNotFound and every other failure
// to ErrStoreUnavailable.
type Repository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	GetUsers(ctx context.Context) ([]*models.User, error)

	GetItem(ctx context.Context, id int64) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string, limit, offset int) ([]*models.Item, error)

	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	// DecideBooking sets the booking status to APPROVED or REJECTED iff the
	// stored status is still WAITING. It returns ErrInvalidState when the
	// booking was already decided, so concurrent decides have exactly one
	// winner.
	DecideBooking(ctx context.Context, id int64, status string) error
	GetBookingsByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64) ([]*models.Booking, error)
	GetBookingsByItemAndStatus(ctx context.Context, itemID int64, status string) ([]*models.Booking, error)
	HasApprovedPastBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)

	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	GetRequestsFromOthers(ctx context.Context, requesterID int64, limit, offset int) ([]*models.ItemRequest, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
}

// SearchCache caches item search results for the read-heavy search
// endpoint. Nothing booking- or comment-related ever enters it.
type SearchCache interface {
	Get(ctx context.Context, text string, limit, offset int) ([]*models.Item, bool, error)
	Set(ctx context.Context, text string, limit, offset int, items []*models.Item) error
	Invalidate(ctx context.Context) error
}

// EventPublisher publishes domain events. Publishing is fire-and-forget;
// failures are logged, never surfaced to the caller.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter limits requests per client key.
type RateLimiter interface {
	Allow(key string) bool
}

type BookingService interface {
	Create(ctx context.Context, itemID, bookerID int64, start, end time.Time) (*models.Booking, error)
	Decide(ctx context.Context, bookingID, ownerID int64, approve bool) (*models.Booking, error)
	Get(ctx context.Context, bookingID, viewerID int64) (*models.Booking, error)
	ListForUser(ctx context.Context, userID int64, role, state string) ([]*models.Booking, error)
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	Get(ctx context.Context, itemID, viewerID int64) (*models.ItemView, error)
	Update(ctx context.Context, actorID int64, patch *models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, itemID, actorID int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.ItemView, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*models.Item, error)
}

type CommentService interface {
	CanComment(ctx context.Context, userID, itemID int64, now time.Time) (bool, error)
	Add(ctx context.Context, userID, itemID int64, text string, now time.Time) (*models.Comment, error)
	List(ctx context.Context, itemID int64) ([]*models.CommentView, error)
}

type UserService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, name, email *string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.User, error)
}

type RequestService interface {
	Create(ctx context.Context, requesterID int64, description string, now time.Time) (*models.ItemRequest, error)
	Get(ctx context.Context, requestID, viewerID int64) (*models.RequestView, error)
	ListOwn(ctx context.Context, requesterID int64) ([]*models.RequestView, error)
	ListFromOthers(ctx context.Context, viewerID int64, limit, offset int) ([]*models.RequestView, error)
}
