// Package worker implements the broker-driven side of the registry: SQS
// consumers for the customer-created and customer-deleted queues. Handlers
// run unordered, at most once per delivery, and never synchronize with the
// request path that produced the message. There is no retry, backoff, or
// dead-letter policy.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/ignite/customer-registry/internal/domain"
)

// SQSReceiveAPI is the subset of the SQS client used by Consumer.
type SQSReceiveAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Handler processes one decoded customer message.
type Handler func(ctx context.Context, msg domain.CustomerMessage)

// snsEnvelope is the wrapper SNS puts around messages fanned out to SQS.
type snsEnvelope struct {
	Message string `json:"Message"`
}

// Consumer long-polls one SQS queue and dispatches decoded customer
// messages to its handler. Messages are deleted only after the handler
// returns; a message that fails to decode is left for the queue's
// visibility timeout to recycle.
type Consumer struct {
	api       SQSReceiveAPI
	queue     string
	unwrapSNS bool
	handler   Handler
}

// NewConsumer creates a consumer for the named queue. unwrapSNS must be set
// for queues subscribed to an SNS topic, whose bodies carry the SNS
// envelope rather than the raw payload.
func NewConsumer(api SQSReceiveAPI, queue string, unwrapSNS bool, handler Handler) *Consumer {
	return &Consumer{api: api, queue: queue, unwrapSNS: unwrapSNS, handler: handler}
}

// Run polls until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	urlOut, err := c.api.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(c.queue)})
	if err != nil {
		return fmt.Errorf("resolve queue %s: %w", c.queue, err)
	}
	queueURL := aws.ToString(urlOut.QueueUrl)
	log.Printf("[worker.Consumer] polling %s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		out, err := c.api.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[worker.Consumer] receive from %s failed: %v", c.queue, err)
			continue
		}

		for _, m := range out.Messages {
			msg, err := c.decode(aws.ToString(m.Body))
			if err != nil {
				log.Printf("[worker.Consumer] undecodable message on %s: %v", c.queue, err)
				continue
			}

			c.handler(ctx, msg)

			if _, err := c.api.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(queueURL),
				ReceiptHandle: m.ReceiptHandle,
			}); err != nil {
				log.Printf("[worker.Consumer] delete on %s failed: %v", c.queue, err)
			}
		}
	}
}

func (c *Consumer) decode(body string) (domain.CustomerMessage, error) {
	var msg domain.CustomerMessage

	if c.unwrapSNS {
		var env snsEnvelope
		if err := json.Unmarshal([]byte(body), &env); err != nil {
			return msg, fmt.Errorf("unwrap sns envelope: %w", err)
		}
		if env.Message == "" {
			return msg, fmt.Errorf("sns envelope has no Message field")
		}
		body = env.Message
	}

	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return msg, fmt.Errorf("decode customer message: %w", err)
	}
	return msg, nil
}
