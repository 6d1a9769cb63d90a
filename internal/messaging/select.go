package messaging

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/ignite/customer-registry/internal/config"
)

// NewPublisher resolves the notification publisher once from configuration.
// AWS_SNS selects SNS, RABBITMQ selects the AMQP publisher; any other value
// falls back to the logging no-op.
func NewPublisher(ctx context.Context, cfg config.MessagingConfig) (Publisher, error) {
	switch cfg.Event {
	case config.EventBackendSNS:
		awsCfg, err := loadAWSConfig(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		return NewSNSPublisher(sns.NewFromConfig(awsCfg, func(o *sns.Options) {
			if cfg.AWS.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			}
		})), nil
	case config.EventBackendRabbitMQ:
		pub, err := DialRabbit(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, err
		}
		return pub, nil
	default:
		log.Printf("[messaging] no event backend configured (message.event=%q), using no-op publisher", cfg.Event)
		return NopPublisher{}, nil
	}
}

// NewQueue resolves the point-to-point queue sender once from configuration.
func NewQueue(ctx context.Context, cfg config.MessagingConfig) (Queue, error) {
	switch cfg.Queue {
	case config.QueueBackendSQS:
		awsCfg, err := loadAWSConfig(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		return NewSQSQueue(sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
			if cfg.AWS.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			}
		})), nil
	default:
		log.Printf("[messaging] no queue backend configured (message.queue=%q), using no-op queue", cfg.Queue)
		return NopQueue{}, nil
	}
}

// NewSQSClient builds a raw SQS client for consumers that need the
// receive/delete primitives rather than the Queue abstraction.
func NewSQSClient(ctx context.Context, cfg config.AWSConfig) (*sqs.Client, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func loadAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	// Static credentials are for local/sandbox use; on AWS the default
	// credential chain (IAM role) applies.
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	return awsCfg, nil
}
