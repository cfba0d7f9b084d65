// Package graph defines the read-only view of a source actor's known network that the
// resolver consumes, plus an in-memory adapter and snapshot loading.
package graph

import (
	"context"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

// DefaultHopLimit is the maximum path length (in edges) searched when none is given
const DefaultHopLimit = 3

// Graph is the capability the resolver needs from a social graph backend.
// Implementations may block on I/O and should honor ctx cancellation.
type Graph interface {
	// GetConnections returns the direct connections of actorID; empty if the actor is unknown.
	GetConnections(ctx context.Context, actorID string) ([]types.ActorProfile, error)
	// BidirectionalBFS returns the shortest path between the two actors within hopLimit edges,
	// or nil if there is none.
	BidirectionalBFS(ctx context.Context, sourceID, targetID string, hopLimit int) (*PathResult, error)
	// GetMutualConnections returns actors directly connected to both actors.
	GetMutualConnections(ctx context.Context, actorID1, actorID2 string) ([]types.ActorProfile, error)
	// GetNode returns the profile for nodeID, or nil if it is unknown.
	GetNode(ctx context.Context, nodeID string) (*types.ActorProfile, error)
}

// PathResult is a path found between two actors
type PathResult struct {
	// Path holds actor IDs from source to target inclusive.
	Path []string `json:"path"`
	// Probability estimates how likely the path is to yield a warm introduction.
	Probability float64 `json:"probability"`
	// MutualConnections counts actors connected to both endpoints.
	MutualConnections int `json:"mutual_connections"`
}

// Hops returns the number of edges in the path.
func (r *PathResult) Hops() int {
	if r == nil || len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}
