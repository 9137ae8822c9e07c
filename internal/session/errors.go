package session

import "errors"

var (
	// ErrInvalidSelection indicates a team choice that violates the active
	// set or duplicate constraints.
	ErrInvalidSelection = errors.New("invalid team selection")
	// ErrInvalidTransition indicates an operation invoked from a state that
	// forbids it. The session state is left unchanged.
	ErrInvalidTransition = errors.New("operation not allowed in current state")
)
