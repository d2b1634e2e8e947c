package domain

import "errors"

var (
	// ErrNotFound signals a request outside the archive bounds or an unknown
	// category filter.
	ErrNotFound = errors.New("archive: not found")

	// ErrInvalidRequest signals a missing year or an impossible calendar date.
	// Callers present it exactly like ErrNotFound.
	ErrInvalidRequest = errors.New("archive: invalid request")
)
