// Package models provides the core data types shared across the search
// engine: documents, status values, and the sentinel errors the rest of the
// module wraps at its API boundaries.
package models

import (
	"errors"
)

// Sentinel errors returned by the core. Call sites wrap these with
// fmt.Errorf("...: %w", ErrInvalidArgument) to attach context; callers
// match with errors.Is.
var (
	// ErrInvalidArgument covers a negative or duplicate document id, an
	// invalid token (containing a control byte), an invalid stop-word
	// list, or a malformed query token.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned when an operation addresses a document id
	// that is not currently live.
	ErrOutOfRange = errors.New("document id out of range")
)
