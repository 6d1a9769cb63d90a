package messaging

import (
	"context"
	"log"

	"github.com/ignite/customer-registry/internal/domain"
	"github.com/ignite/customer-registry/internal/pkg/logger"
)

// CustomerCreatedEvent emits the customer-created notification. Emission is
// best-effort: every publisher error is logged and swallowed here so the
// write path that created the customer is never affected by a messaging
// failure, and no record of a failed notification is kept for replay.
type CustomerCreatedEvent struct {
	publisher Publisher
	topic     string
}

// NewCustomerCreatedEvent creates the emitter for the configured topic.
func NewCustomerCreatedEvent(publisher Publisher, topic string) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{publisher: publisher, topic: topic}
}

// On publishes the created-customer payload to the configured topic.
func (e *CustomerCreatedEvent) On(ctx context.Context, msg domain.CustomerMessage) {
	id, err := e.publisher.Publish(ctx, e.topic, msg)
	if err != nil {
		log.Printf("[messaging.CustomerCreatedEvent] publish failed for %s: %v", logger.RedactEmail(msg.EmailID), err)
		return
	}
	log.Printf("[messaging.CustomerCreatedEvent] published customer created for %s message id %s", logger.RedactEmail(msg.EmailID), id)
}
