package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/service"
)

func TestStartNotificationWorkerForwardsEvents(t *testing.T) {
	StartNotificationWorker(nil)

	dispatcher := events.NewInMemoryDispatcher()
	var forwarded []events.EventType
	forward := func(_ context.Context, event events.Event) error {
		forwarded = append(forwarded, event.Type)
		return nil
	}
	StartNotificationWorker(service.NewNotificationService(dispatcher, zap.NewNop(), forward))

	for _, eventType := range events.AllEventTypes {
		if err := dispatcher.Publish(context.Background(), events.Event{Type: eventType}); err != nil {
			t.Fatalf("publish %s: %v", eventType, err)
		}
	}
	if len(forwarded) != len(events.AllEventTypes) {
		t.Fatalf("expected %d forwarded events, got %d", len(events.AllEventTypes), len(forwarded))
	}
}
