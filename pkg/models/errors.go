package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the target pin no longer exists in the store.
	ErrNotFound = errors.New("pin not found")
	// ErrUnauthorized means the actor does not own the pin it tried to mutate.
	ErrUnauthorized = errors.New("not the author of this pin")
)

// ValidationError reports a rejected field; it is surfaced inline and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
