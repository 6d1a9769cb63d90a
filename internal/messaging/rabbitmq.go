package messaging

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the subset of *amqp.Channel used by RabbitPublisher.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitPublisher publishes messages to a RabbitMQ topic exchange. The
// topic name becomes the routing key, so subscribers bind queues with the
// patterns they care about. AMQP assigns no broker-side identifier on
// publish, so one is generated per message and carried in the MessageId
// property.
type RabbitPublisher struct {
	ch       amqpChannel
	exchange string
	conn     *amqp.Connection
}

// DialRabbit connects to the broker, opens a channel, and declares the
// durable topic exchange the publisher will use.
func DialRabbit(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &RabbitPublisher{ch: ch, exchange: exchange, conn: conn}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, topic string, message any) (string, error) {
	body, err := encode(message)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	err = p.ch.PublishWithContext(ctx, p.exchange, topic, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   id,
		Body:        []byte(body),
	})
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", topic, err)
	}

	log.Printf("[messaging.RabbitPublisher] published to %s message id %s", topic, id)
	return id, nil
}

// Close releases the AMQP connection.
func (p *RabbitPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
