package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ignite/customer-registry/internal/config"
	"github.com/ignite/customer-registry/internal/domain"
	"github.com/ignite/customer-registry/internal/messaging"
	"github.com/ignite/customer-registry/internal/pkg/logger"
	"github.com/ignite/customer-registry/internal/worker"
)

func main() {
	log.Println("Starting Customer Registry Worker...")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := messaging.NewSQSClient(ctx, cfg.Messaging.AWS)
	if err != nil {
		log.Fatalf("Failed to initialize SQS client: %v", err)
	}

	// The created queue is fed by an SNS subscription, so bodies arrive
	// wrapped in the SNS envelope. The deleted queue is written directly.
	createdConsumer := worker.NewConsumer(client, cfg.Messaging.QueueCustomerCreated, true,
		func(_ context.Context, msg domain.CustomerMessage) {
			log.Printf("[worker] customer created: email=%s firstName=%s", logger.RedactEmail(msg.EmailID), msg.FirstName)
		})
	deletedConsumer := worker.NewConsumer(client, cfg.Messaging.QueueCustomerDeleted, false,
		func(_ context.Context, msg domain.CustomerMessage) {
			log.Printf("[worker] customer deleted: email=%s firstName=%s", logger.RedactEmail(msg.EmailID), msg.FirstName)
		})

	errCh := make(chan error, 2)
	go func() { errCh <- createdConsumer.Run(ctx) }()
	go func() { errCh <- deletedConsumer.Run(ctx) }()
	log.Printf("Consuming from %s and %s", cfg.Messaging.QueueCustomerCreated, cfg.Messaging.QueueCustomerDeleted)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Consumer error: %v", err)
		}
	}

	log.Println("Worker stopped")
}
