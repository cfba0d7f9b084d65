package graph

import (
	"errors"
	"fmt"
)

// ErrActorNotFound is returned when an edge references an actor that was never added
var ErrActorNotFound = errors.New("actor not found")

// UnavailableError represents a graph backend that timed out or failed
type UnavailableError struct {
	Op    string
	Cause error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("graph unavailable during %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("graph unavailable during %s", e.Op)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// LoadError represents an error reading or decoding a graph snapshot
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
