package resolver

import (
	"errors"
	"fmt"
)

// ErrInvalidActor is wrapped by InputError when a source or target is missing or has no ID
var ErrInvalidActor = errors.New("invalid actor")

// InputError represents a contract violation by the caller, detected before the cascade runs
type InputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
