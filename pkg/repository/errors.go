package repository

import "errors"

// error kinds surfaced to callers; wrap with fmt.Errorf("%w") for detail
var (
	// ErrNotFound marks a missing driver/season/race lookup.
	ErrNotFound = errors.New("entity not found")
	// ErrConfiguration marks invalid scoring configuration, e.g. a race
	// without any point system. Never silently defaulted.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks input that violates a data invariant.
	ErrValidation = errors.New("validation error")
	// ErrNoTarget is returned by merge operations without a chosen target.
	ErrNoTarget = errors.New("no target chosen")
)
