package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/customer-registry/internal/service/customer"
)

// Handlers contains the customer HTTP handlers.
type Handlers struct {
	customers *customer.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(customers *customer.Service) *Handlers {
	return &Handlers{customers: customers}
}

type registerRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	EmailID string `json:"emailId" validate:"required,email"`
	Address string `json:"address" validate:"required,address"`
}

type updateRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Address string `json:"address" validate:"required,address"`
}

// customerResponse is the output projection, surrogate key included.
type customerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	EmailID string `json:"emailId"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

// AddCustomer handles POST /v1/customers.
func (h *Handlers) AddCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, r, http.StatusBadRequest, codeBadParameter, "bad.request", []string{"invalid request body"})
		return
	}
	if errs := validateStruct(req); errs != nil {
		respondFailure(w, r, http.StatusBadRequest, codeBadParameter, "bad.request", errs)
		return
	}

	_, err := h.customers.Register(r.Context(), customer.RegisterInput{
		Name:    req.Name,
		EmailID: req.EmailID,
		Address: req.Address,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, "customer.added", nil)
}

// UpdateCustomer handles PUT /v1/customers/{emailId}.
func (h *Handlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "emailId")
	if !validEmailParam(email) {
		respondFailure(w, r, http.StatusBadRequest, codeBadParameter, "bad.request", []string{"please enter a valid email address"})
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, r, http.StatusBadRequest, codeBadParameter, "bad.request", []string{"invalid request body"})
		return
	}
	if errs := validateStruct(req); errs != nil {
		respondFailure(w, r, http.StatusBadRequest, codeBadParameter, "bad.request", errs)
		return
	}

	err := h.customers.Update(r.Context(), email, customer.UpdateInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, "customer.updated", nil)
}

// DeleteCustomer handles DELETE /v1/customers/{emailId}.
func (h *Handlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "emailId")
	if !validEmailParam(email) {
		respondFailure(w, r, http.StatusBadRequest, codeBadParameter, "bad.request", []string{"please enter a valid email address"})
		return
	}

	if err := h.customers.Delete(r.Context(), email); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, "customer.deleted", nil)
}

// GetCustomer handles GET /v1/customers/{emailId}.
func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "emailId")
	if !validEmailParam(email) {
		respondFailure(w, r, http.StatusBadRequest, codeBadParameter, "bad.request", []string{"please enter a valid email address"})
		return
	}

	c, err := h.customers.GetByEmail(r.Context(), email)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, "customer.fetched", customerResponse{
		ID:      c.ID,
		Name:    c.Name,
		EmailID: c.EmailID,
		Address: c.Address,
		Status:  string(c.Status),
	})
}

// respondServiceError maps typed service errors to the envelope. Anything
// that is not a known business failure becomes a generic internal error
// with no detail leaked to the caller.
func (h *Handlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, customer.ErrNotFound) {
		respondFailure(w, r, http.StatusBadRequest, codeUserNotFound, "customer.not.found", nil)
		return
	}
	log.Printf("[api] unexpected error: %v", err)
	respondFailure(w, r, http.StatusInternalServerError, codeInternalError, "internal.error", nil)
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
