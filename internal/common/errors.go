package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Storage errors.
	ErrCorruptedValue = errors.New("corrupted stored value")
)
