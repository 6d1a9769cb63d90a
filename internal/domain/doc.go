// Package domain defines the core business types for the customer registry.
//
// Types in this package are pure value objects with no behavior beyond
// projection and validation helpers. They are the shared language between
// handlers, services, repositories, and the messaging layer.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - JSON/DB tags are allowed (they're metadata, not behavior)
//   - Validation helpers are allowed (they're pure functions on the type)
//   - Constants and enums belong here
package domain
