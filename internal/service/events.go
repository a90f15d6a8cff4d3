package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/events"
)

// publish emits an event after the unit of work committed. Delivery failures are logged only.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, eventType events.EventType, actorID int64, payload any) {
	if dispatcher == nil {
		return
	}
	event := events.Event{Type: eventType, ActorID: actorID, Payload: payload}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event delivery failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
