package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/resolver"
)

// ErrActorNotFound indicates a requested actor is not in the graph
type ErrActorNotFound struct {
	ActorID string
}

func (e *ErrActorNotFound) Error() string {
	return fmt.Sprintf("actor not found: %s", e.ActorID)
}

func (e *ErrActorNotFound) Unwrap() error {
	return graph.ErrActorNotFound
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		inputErr      *resolver.InputError
		notFoundErr   *ErrActorNotFound
		unavailErr    *graph.UnavailableError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &unavailErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
