package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/customer-registry/internal/api"
	"github.com/ignite/customer-registry/internal/config"
	"github.com/ignite/customer-registry/internal/messaging"
	"github.com/ignite/customer-registry/internal/repository/postgres"
	"github.com/ignite/customer-registry/internal/service/customer"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	log.Println("Starting Customer Registry API...")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher, err := messaging.NewPublisher(ctx, cfg.Messaging)
	if err != nil {
		log.Fatalf("Failed to initialize publisher: %v", err)
	}
	if closer, ok := publisher.(*messaging.RabbitPublisher); ok {
		defer closer.Close()
	}

	queue, err := messaging.NewQueue(ctx, cfg.Messaging)
	if err != nil {
		log.Fatalf("Failed to initialize queue: %v", err)
	}

	created := messaging.NewCustomerCreatedEvent(publisher, cfg.Messaging.TopicCustomerCreated)
	repo := postgres.NewCustomerRepo(db)
	customers := customer.NewService(repo, created, queue, cfg.Messaging.QueueCustomerDeleted)

	server := api.NewServer(cfg.Server, customers)
	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(addr)
	}()
	log.Printf("API listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
