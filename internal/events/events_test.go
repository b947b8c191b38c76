package events

import (
	"testing"
	"time"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	payload := BookingEventPayload{
		BookingID: 7,
		ItemID:    1,
		BookerID:  2,
		Status:    "WAITING",
		Start:     time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC),
	}
	if err := bus.PublishJSON(EventBookingCreated, payload); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
	if received.Type != EventBookingCreated {
		t.Errorf("expected type %s, got %s", EventBookingCreated, received.Type)
	}

	var decoded BookingEventPayload
	if err := json.Unmarshal(received.Payload, &decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if decoded.BookingID != 7 || decoded.Status != "WAITING" {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe(EventCommentAdded, func(_ *Event) error { count1++; return nil })
	bus.Subscribe(EventCommentAdded, func(_ *Event) error { count2++; return nil })

	if err := bus.PublishJSON(EventCommentAdded, CommentEventPayload{CommentID: 1}); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestEventBusIgnoresOtherTypes(t *testing.T) {
	bus := NewEventBus()
	var called bool

	bus.Subscribe(EventItemCreated, func(_ *Event) error { called = true; return nil })

	if err := bus.PublishJSON(EventBookingRejected, BookingEventPayload{BookingID: 1}); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}
	if called {
		t.Error("handler for a different event type was called")
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := NewEventBus()
	seen := make(map[string]int)

	bus.SubscribeAll(func(event *Event) error {
		seen[event.Type]++
		return nil
	})

	for _, eventType := range []string{
		EventBookingCreated, EventBookingApproved, EventBookingRejected,
		EventCommentAdded, EventItemCreated,
	} {
		if err := bus.PublishJSON(eventType, map[string]int64{"id": 1}); err != nil {
			t.Fatalf("PublishJSON(%s) failed: %v", eventType, err)
		}
	}

	if len(seen) != 5 {
		t.Errorf("expected 5 event types, got %d: %v", len(seen), seen)
	}
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var bus *EventBus
	if err := bus.PublishJSON(EventItemCreated, ItemEventPayload{ItemID: 1}); err != nil {
		t.Errorf("nil bus publish returned error: %v", err)
	}
}
