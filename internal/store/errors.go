package store

import "errors"

var (
	// ErrRecordNotFound is returned when no fixture row matches a lookup.
	ErrRecordNotFound = errors.New("record not found")

	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
