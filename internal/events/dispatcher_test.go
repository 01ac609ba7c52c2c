package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventTriageCompleted, func(_ context.Context, e Event) error {
		got = append(got, "wrong-type")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "ticket-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	want := []string{"first:ticket-1", "second:ticket-1"}
	if len(got) != len(want) {
		t.Fatalf("deliveries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("deliveries = %v, want %v", got, want)
		}
	}
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()

	delivered := false
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		return errors.New("handler failure")
	})
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketStatusChanged}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !delivered {
		t.Error("second handler not invoked after first failed")
	}
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventSuggestionCreated}); err != nil {
		t.Fatalf("publish without subscribers: %v", err)
	}
}
