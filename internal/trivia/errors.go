package trivia

import "errors"

// Domain failure conditions the HTTP layer maps to status codes. Everything
// else is surfaced as-is.
var (
	// ErrNotFound signals a missing page, category, or question.
	ErrNotFound = errors.New("resource not found")

	// ErrUnprocessable signals a request that is well-formed HTTP but
	// semantically invalid: a bad delete target, an empty question or answer,
	// a malformed quiz payload.
	ErrUnprocessable = errors.New("unprocessable")
)
