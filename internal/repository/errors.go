package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required field of a new document is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidStatus is returned when a status is not one of Active, Archived or Deleted.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrBackend wraps every failure of the underlying store.
	ErrBackend = errors.New("document store failure")
	// ErrUnsupportedStore is returned for a store with neither positional nor keyed writes.
	ErrUnsupportedStore = errors.New("store supports neither positional nor keyed writes")
)

func backendError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBackend, op, err)
}
