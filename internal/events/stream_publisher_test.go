package events

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestStreamPublisherWithoutClientIsNoop(t *testing.T) {
	var nilPublisher *StreamPublisher
	if err := nilPublisher.Handle(context.Background(), Event{Type: EventUserRegistered}); err != nil {
		t.Fatalf("nil publisher: %v", err)
	}
	if err := NewStreamPublisher(nil, "realty.events", 10).Handle(context.Background(), Event{}); err != nil {
		t.Fatalf("publisher without client: %v", err)
	}
}

func TestStreamPublisherReportsDeliveryFailure(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := NewStreamPublisher(client, "realty.events", 10).Handle(ctx, Event{ID: "evt-1", Type: EventPropertyCreated})
	if err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
	if !strings.Contains(err.Error(), "evt-1") {
		t.Fatalf("expected event id in error, got %v", err)
	}
}
