package messaging

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the subset of the SNS client used by SNSPublisher.
type SNSAPI interface {
	CreateTopic(ctx context.Context, params *sns.CreateTopicInput, optFns ...func(*sns.Options)) (*sns.CreateTopicOutput, error)
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes messages to AWS SNS topics. The topic is resolved
// by name on every publish; CreateTopic is idempotent on SNS, so an existing
// topic simply returns its ARN.
type SNSPublisher struct {
	client SNSAPI
}

// NewSNSPublisher creates an SNS-backed publisher.
func NewSNSPublisher(client SNSAPI) *SNSPublisher {
	return &SNSPublisher{client: client}
}

func (p *SNSPublisher) Publish(ctx context.Context, topic string, message any) (string, error) {
	body, err := encode(message)
	if err != nil {
		return "", err
	}

	created, err := p.client.CreateTopic(ctx, &sns.CreateTopicInput{Name: aws.String(topic)})
	if err != nil {
		return "", fmt.Errorf("resolve topic %s: %w", topic, err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: created.TopicArn,
		Message:  aws.String(body),
	})
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", topic, err)
	}

	id := aws.ToString(out.MessageId)
	log.Printf("[messaging.SNSPublisher] published to %s message id %s", topic, id)
	return id, nil
}
