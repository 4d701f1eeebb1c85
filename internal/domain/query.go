package domain

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write loses a condition check, e.g. a
	// duplicate create or a booth that is no longer available.
	ErrConflict = errors.New("record conflict")
)

// Where is an equality filter keyed by attribute name.
type Where map[string]any

// Fields is a partial update keyed by attribute name.
type Fields map[string]any
