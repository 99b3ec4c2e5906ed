package trivia

import "errors"

var (
	// ErrBadRequest marks missing or malformed input.
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound marks an absent resource, an empty page or a search without matches.
	ErrNotFound = errors.New("not found")
	// ErrUnprocessable marks well-formed but unusable input, or a failed write.
	ErrUnprocessable = errors.New("unprocessable")
	// ErrInvalidState marks a page too short to derive its current category from.
	ErrInvalidState = errors.New("invalid state")
)
