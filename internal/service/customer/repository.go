package customer

import (
	"context"

	"github.com/ignite/customer-registry/internal/domain"
)

// Repository defines the data access contract for customers.
// Implementations must be safe for concurrent use.
type Repository interface {
	// FindByEmail returns the customer with the given email.
	// Returns ErrNotFound if no such customer exists.
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// Save persists the customer: insert when its ID is zero, update
	// otherwise. The returned customer carries the assigned surrogate key.
	Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error)

	// Delete removes the customer row. Returns ErrNotFound if it is gone.
	Delete(ctx context.Context, c *domain.Customer) error
}
