package domain

import "errors"

var (
	// ErrConflict signals a uniqueness violation: a second open run for an
	// endpoint, or a duplicate event registration within one run.
	ErrConflict = errors.New("conflict")

	// ErrNotFound signals a missing run, event or record.
	ErrNotFound = errors.New("not found")

	// ErrRunNotClosed is returned when a run is enqueued before being closed.
	ErrRunNotClosed = errors.New("harvest run is not closed")
)
