// Package repository implements the database access layer for ProjectBoard.
// Repositories are stateless structs issuing parameterized SQL against the
// shared connection pool in the database package.
package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete references an id
// that does not exist. Handlers translate it into a 404 response; every
// other repository error is surfaced as a storage failure.
var ErrNotFound = errors.New("not found")
