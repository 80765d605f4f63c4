package storage

import (
	"errors"
	"fmt"
)

// Storage errors shared by every backend.
var (
	// ErrNotFound is returned when a requested record or snapshot does
	// not exist. Absence of a portfolio snapshot is an ordinary state,
	// not a failure.
	ErrNotFound = errors.New("not found")

	// ErrNotConnected is returned when an operation is attempted
	// against a store that has no live backend connection.
	ErrNotConnected = errors.New("store not connected")

	// ErrInvalidRecord is returned when a trade record is missing one
	// of its required fields.
	ErrInvalidRecord = errors.New("invalid trade record")
)

// BackendError wraps an error reported by the backing database so that
// its SDK error types never cross the storage boundary.
type BackendError struct {
	Op  string // operation that failed, e.g. "save trade"
	Err error  // underlying backend error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error during %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
