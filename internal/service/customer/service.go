package customer

import (
	"context"
	"log"

	"github.com/ignite/customer-registry/internal/domain"
	"github.com/ignite/customer-registry/internal/messaging"
	"github.com/ignite/customer-registry/internal/pkg/logger"
)

// Service implements customer business logic. It coordinates between the
// repository layer and the messaging concerns (created event, deleted queue).
// All public methods are safe for concurrent use if the underlying
// repository is concurrency-safe.
type Service struct {
	repo         Repository
	created      *messaging.CustomerCreatedEvent
	queue        messaging.Queue
	deletedQueue string
}

// NewService creates a customer service backed by the given repository.
// The created event and deleted queue carry the fire-and-forget
// notifications; neither ever fails a request.
func NewService(repo Repository, created *messaging.CustomerCreatedEvent, queue messaging.Queue, deletedQueue string) *Service {
	return &Service{repo: repo, created: created, queue: queue, deletedQueue: deletedQueue}
}

// RegisterInput holds the fields for registering a new customer.
type RegisterInput struct {
	Name    string `json:"name"`
	EmailID string `json:"emailId"`
	Address string `json:"address"`
}

// UpdateInput holds the mutable fields for a customer update. The update is
// a full replace of both fields; there is no partial-field semantics.
type UpdateInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Register persists a new customer and emits the created event. Status is
// always forced to REGISTERED regardless of input. A notification failure
// does not roll back or fail the registration.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.Customer, error) {
	c := &domain.Customer{
		Name:    input.Name,
		EmailID: input.EmailID,
		Address: input.Address,
		Status:  domain.CustomerRegistered,
	}

	persisted, err := s.repo.Save(ctx, c)
	if err != nil {
		return nil, err
	}

	s.created.On(ctx, domain.MessageFromCustomer(persisted))

	log.Printf("[customer.Service] registered customer %s", logger.RedactEmail(persisted.EmailID))
	return persisted, nil
}

// Update replaces the name and address of the customer with the given email.
// Returns ErrNotFound without touching the write path when no such customer
// exists. Concurrent updates to the same email are unordered; the last
// writer wins.
func (s *Service) Update(ctx context.Context, email string, input UpdateInput) error {
	c, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	c.Name = input.Name
	c.Address = input.Address
	if _, err := s.repo.Save(ctx, c); err != nil {
		return err
	}

	log.Printf("[customer.Service] updated customer %s", logger.RedactEmail(email))
	return nil
}

// Delete removes the customer with the given email and sends the deletion
// message to the configured queue. The send happens after the row is gone;
// a crash in between loses the notification (accepted at-most-once). A send
// failure is logged and swallowed.
func (s *Service) Delete(ctx context.Context, email string) error {
	c, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, c); err != nil {
		return err
	}

	if err := s.queue.Send(ctx, s.deletedQueue, domain.MessageFromCustomer(c)); err != nil {
		log.Printf("[customer.Service] deletion notification failed for %s: %v", logger.RedactEmail(email), err)
	}

	log.Printf("[customer.Service] deleted customer %s", logger.RedactEmail(email))
	return nil
}

// GetByEmail returns the customer with the given email, surrogate key
// included. Returns ErrNotFound when absent.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.repo.FindByEmail(ctx, email)
}
