package stockbook

import "errors"

var (
	// ErrStoreWrite is returned when a snapshot cannot be persisted.
	ErrStoreWrite = errors.New("cannot write snapshot")
	// ErrInvalid is returned for data entry that fails validation.
	ErrInvalid = errors.New("invalid input")
	// ErrNotFound is returned when a lot or an item id is unknown.
	ErrNotFound = errors.New("not found")
)
