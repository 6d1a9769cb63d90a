package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Publisher is the publish-by-topic delivery model. Publish serializes the
// message to JSON, submits it to the named topic, and returns the
// broker-assigned message identifier.
type Publisher interface {
	Publish(ctx context.Context, topic string, message any) (string, error)
}

// Queue is the point-to-point delivery model. Send submits the message to
// the named queue; no identifier is returned.
type Queue interface {
	Send(ctx context.Context, queue string, message any) error
}

// encode renders a message to its canonical wire form: JSON with time.Time
// fields in RFC 3339. Every backend uses this so that a consumer sees the
// same body regardless of the broker in between.
func encode(message any) (string, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("encode message: %w", err)
	}
	return string(data), nil
}

// NopPublisher is the fallback for an unconfigured event backend. It logs
// the message and reports success without delivering anything.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, topic string, message any) (string, error) {
	log.Printf("[messaging.NopPublisher] dropping %T message for topic %s", message, topic)
	return "", nil
}

// NopQueue is the fallback for an unconfigured queue backend.
type NopQueue struct{}

func (NopQueue) Send(_ context.Context, queue string, message any) error {
	log.Printf("[messaging.NopQueue] dropping %T message for queue %s", message, queue)
	return nil
}
