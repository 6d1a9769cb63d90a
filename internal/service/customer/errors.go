package customer

import "errors"

// Sentinel errors for the customer service layer.
var (
	// ErrNotFound is returned whenever a lookup by email yields no customer.
	// Every not-found condition across update, delete, and get maps to this
	// one error so the API layer can translate it uniformly.
	ErrNotFound = errors.New("customer not found")
)
