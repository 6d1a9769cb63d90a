package messaging

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSSendAPI is the subset of the SQS client used by SQSQueue.
type SQSSendAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSQueue sends messages to AWS SQS queues by name. Queue URLs are cached
// after the first resolution.
type SQSQueue struct {
	client SQSSendAPI

	mu   sync.Mutex
	urls map[string]string
}

// NewSQSQueue creates an SQS-backed queue sender.
func NewSQSQueue(client SQSSendAPI) *SQSQueue {
	return &SQSQueue{client: client, urls: make(map[string]string)}
}

func (q *SQSQueue) Send(ctx context.Context, queue string, message any) error {
	body, err := encode(message)
	if err != nil {
		return err
	}

	queueURL, err := q.resolveURL(ctx, queue)
	if err != nil {
		return err
	}

	_, err = q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("send to %s: %w", queue, err)
	}
	return nil
}

func (q *SQSQueue) resolveURL(ctx context.Context, queue string) (string, error) {
	q.mu.Lock()
	url, ok := q.urls[queue]
	q.mu.Unlock()
	if ok {
		return url, nil
	}

	out, err := q.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(queue)})
	if err != nil {
		return "", fmt.Errorf("resolve queue %s: %w", queue, err)
	}
	url = aws.ToString(out.QueueUrl)

	q.mu.Lock()
	q.urls[queue] = url
	q.mu.Unlock()
	return url, nil
}
