package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/metrics"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// Graph operation names used in logs and metrics
const (
	opGetConnections       = "get_connections"
	opBidirectionalBFS     = "bidirectional_bfs"
	opGetMutualConnections = "get_mutual_connections"
	opGetNode              = "get_node"
)

var errNoGraph = errors.New("no graph configured")

// panicError carries a value recovered from a panicking graph adapter
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("graph adapter panicked: %v", e.value)
}

// guardedGraph bounds every call of the wrapped Graph with a timeout and converts
// failures and panics into logged, counted UnavailableErrors.
type guardedGraph struct {
	inner   graph.Graph
	timeout time.Duration
	logger  *zap.Logger
}

func newGuardedGraph(inner graph.Graph, timeout time.Duration, logger *zap.Logger) *guardedGraph {
	return &guardedGraph{inner: inner, timeout: timeout, logger: logger}
}

type outcome[T any] struct {
	value T
	err   error
}

// guard runs fn in its own goroutine so that an adapter ignoring ctx still cannot hold
// the caller past the deadline. A late result is discarded.
func guard[T any](ctx context.Context, g *guardedGraph, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if g.inner == nil {
		return zero, &graph.UnavailableError{Op: op, Cause: errNoGraph}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome[T]{err: &panicError{value: r}}
			}
		}()
		v, err := fn(ctx)
		done <- outcome[T]{value: v, err: err}
	}()

	var res outcome[T]
	select {
	case res = <-done:
	case <-ctx.Done():
		res = outcome[T]{err: ctx.Err()}
	}
	if res.err == nil {
		return res.value, nil
	}

	reason := "error"
	var pe *panicError
	switch {
	case errors.As(res.err, &pe):
		reason = "panic"
	case errors.Is(res.err, context.DeadlineExceeded):
		reason = "timeout"
	case errors.Is(res.err, context.Canceled):
		reason = "canceled"
	}
	metrics.RecordGraphError(op, reason)
	g.logger.Warn("graph call failed, falling through",
		zap.String("operation", op),
		zap.String("reason", reason),
		zap.Error(res.err))

	return zero, &graph.UnavailableError{Op: op, Cause: res.err}
}

func (g *guardedGraph) GetConnections(ctx context.Context, actorID string) ([]types.ActorProfile, error) {
	return guard(ctx, g, opGetConnections, func(ctx context.Context) ([]types.ActorProfile, error) {
		return g.inner.GetConnections(ctx, actorID)
	})
}

func (g *guardedGraph) BidirectionalBFS(ctx context.Context, sourceID, targetID string, hopLimit int) (*graph.PathResult, error) {
	return guard(ctx, g, opBidirectionalBFS, func(ctx context.Context) (*graph.PathResult, error) {
		return g.inner.BidirectionalBFS(ctx, sourceID, targetID, hopLimit)
	})
}

func (g *guardedGraph) GetMutualConnections(ctx context.Context, actorID1, actorID2 string) ([]types.ActorProfile, error) {
	return guard(ctx, g, opGetMutualConnections, func(ctx context.Context) ([]types.ActorProfile, error) {
		return g.inner.GetMutualConnections(ctx, actorID1, actorID2)
	})
}

func (g *guardedGraph) GetNode(ctx context.Context, nodeID string) (*types.ActorProfile, error) {
	return guard(ctx, g, opGetNode, func(ctx context.Context) (*types.ActorProfile, error) {
		return g.inner.GetNode(ctx, nodeID)
	})
}
