// Package postgres implements the service repository interfaces against
// PostgreSQL. Uniqueness and consistency are delegated to the store's
// primary-key and unique-column constraints.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/customer-registry/internal/domain"
	"github.com/ignite/customer-registry/internal/service/customer"
)

// CustomerRepo implements customer.Repository against PostgreSQL.
type CustomerRepo struct{ db *sql.DB }

// NewCustomerRepo creates a Postgres-backed customer repository.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email_id, COALESCE(address,''), COALESCE(status,'')
		FROM customers
		WHERE email_id = $1
	`, email).Scan(&c.ID, &c.Name, &c.EmailID, &c.Address, &c.Status)
	if err == sql.ErrNoRows {
		return nil, customer.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if c.ID == 0 {
		saved := *c
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO customers (name, email_id, address, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.Name, c.EmailID, c.Address, c.Status).Scan(&saved.ID)
		if err != nil {
			return nil, fmt.Errorf("insert customer: %w", err)
		}
		return &saved, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name = $1, address = $2, status = $3
		WHERE id = $4
	`, c.Name, c.Address, c.Status, c.ID)
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, customer.ErrNotFound
	}
	saved := *c
	return &saved, nil
}

func (r *CustomerRepo) Delete(ctx context.Context, c *domain.Customer) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, c.ID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return customer.ErrNotFound
	}
	return nil
}
