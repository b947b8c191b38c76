package events

import (
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	EventBookingCreated  = "booking_created"
	EventBookingApproved = "booking_approved"
	EventBookingRejected = "booking_rejected"
	EventCommentAdded    = "comment_added"
	EventItemCreated     = "item_created"
)

// BookingEventPayload is the booking snapshot carried by booking events.
type BookingEventPayload struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ActorID   int64     `json:"actor_id,omitempty"`
}

// CommentEventPayload describes a newly added comment.
type CommentEventPayload struct {
	CommentID int64     `json:"comment_id"`
	ItemID    int64     `json:"item_id"`
	AuthorID  int64     `json:"author_id"`
	Created   time.Time `json:"created"`
}

// ItemEventPayload describes an item mutation.
type ItemEventPayload struct {
	ItemID    int64  `json:"item_id"`
	OwnerID   int64  `json:"owner_id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
	ActorID   int64  `json:"actor_id,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for every known event type.
func (b *EventBus) SubscribeAll(handler EventHandler) {
	for _, eventType := range []string{
		EventBookingCreated,
		EventBookingApproved,
		EventBookingRejected,
		EventCommentAdded,
		EventItemCreated,
	} {
		b.Subscribe(eventType, handler)
	}
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
