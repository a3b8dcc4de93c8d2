// Package errors provides common domain error types for the replay toolkit.
//
// It defines sentinel errors for conditions shared across packages so callers
// can use errors.Is() checks. Lookup misses (no active sentence, no chapter
// at a given time) are deliberately NOT errors anywhere in this codebase;
// they are ordinary (value, ok) returns.
package errors

import "errors"

var (
	// ErrNotFound indicates the requested document or entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrMalformedDocument indicates a session document failed to decode.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrValidation indicates invalid input or validation failure.
	ErrValidation = errors.New("validation error")

	// ErrInvalidState indicates the operation is not valid for the current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnavailable indicates a remote collaborator could not be reached.
	ErrUnavailable = errors.New("unavailable")
)

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformedDocument reports whether any error in err's chain is ErrMalformedDocument.
func IsMalformedDocument(err error) bool {
	return errors.Is(err, ErrMalformedDocument)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidState reports whether any error in err's chain is ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsUnavailable reports whether any error in err's chain is ErrUnavailable.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
