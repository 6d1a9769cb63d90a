// Package customer implements customer lifecycle management.
//
// The service layer contains all business logic for registering, updating,
// deleting, and looking up customers, plus the fire-and-forget notification
// hooks on create and delete. It depends on the repository interface defined
// in this package and should never import from api/.
//
// The repository implementation lives in repository/postgres/.
package customer
