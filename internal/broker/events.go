package broker

import (
	"context"
	"fmt"

	"catalog-reseeder/internal/models"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCatalogReseeded publishes the run-completion event.
func (ep *EventPublisher) PublishCatalogReseeded(ctx context.Context, event *models.CatalogReseededEvent) error {
	key := fmt.Sprintf("reseed-%s", event.EventID)
	return ep.producer.PublishEvent(ctx, key, event)
}
