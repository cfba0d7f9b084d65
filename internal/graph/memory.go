package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

// MemoryGraph is an in-memory, undirected Graph. Reads are safe for concurrent use.
type MemoryGraph struct {
	mu    sync.RWMutex
	nodes map[string]types.ActorProfile
	adj   map[string]map[string]bool
}

// NewMemoryGraph creates an empty graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		nodes: make(map[string]types.ActorProfile),
		adj:   make(map[string]map[string]bool),
	}
}

// AddActor adds or replaces an actor.
func (g *MemoryGraph) AddActor(p types.ActorProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid actor: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[p.ID] = p
	if g.adj[p.ID] == nil {
		g.adj[p.ID] = make(map[string]bool)
	}
	return nil
}

// Connect adds an undirected edge between two existing actors.
func (g *MemoryGraph) Connect(a, b string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[a]; !ok {
		return fmt.Errorf("cannot connect %s: %w", a, ErrActorNotFound)
	}
	if _, ok := g.nodes[b]; !ok {
		return fmt.Errorf("cannot connect %s: %w", b, ErrActorNotFound)
	}
	if a == b {
		return fmt.Errorf("cannot connect %s to itself", a)
	}

	g.adj[a][b] = true
	g.adj[b][a] = true
	return nil
}

// Len returns the number of actors.
func (g *MemoryGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// GetConnections returns the actor's connections sorted by ID.
func (g *MemoryGraph) GetConnections(ctx context.Context, actorID string) ([]types.ActorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.profilesLocked(g.neighborIDsLocked(actorID)), nil
}

// BidirectionalBFS searches for the shortest path within hopLimit edges.
func (g *MemoryGraph) BidirectionalBFS(ctx context.Context, sourceID, targetID string, hopLimit int) (*PathResult, error) {
	g.mu.RLock()
	_, hasSource := g.nodes[sourceID]
	_, hasTarget := g.nodes[targetID]
	g.mu.RUnlock()
	if !hasSource || !hasTarget {
		return nil, nil
	}

	return BidirectionalSearch(ctx, sourceID, targetID, hopLimit, g.neighbors)
}

// GetMutualConnections returns actors connected to both, sorted by ID.
func (g *MemoryGraph) GetMutualConnections(ctx context.Context, actorID1, actorID2 string) ([]types.ActorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	other := g.adj[actorID2]
	shared := make([]string, 0)
	for _, id := range g.neighborIDsLocked(actorID1) {
		if other[id] {
			shared = append(shared, id)
		}
	}
	return g.profilesLocked(shared), nil
}

// GetNode returns a copy of the actor's profile, or nil if unknown.
func (g *MemoryGraph) GetNode(ctx context.Context, nodeID string) (*types.ActorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.nodes[nodeID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (g *MemoryGraph) neighbors(ctx context.Context, ids []string) (map[string][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string][]string, len(ids))
	for _, id := range ids {
		out[id] = g.neighborIDsLocked(id)
	}
	return out, nil
}

func (g *MemoryGraph) neighborIDsLocked(id string) []string {
	ids := make([]string, 0, len(g.adj[id]))
	for n := range g.adj[id] {
		ids = append(ids, n)
	}
	sort.Strings(ids)
	return ids
}

func (g *MemoryGraph) profilesLocked(ids []string) []types.ActorProfile {
	out := make([]types.ActorProfile, 0, len(ids))
	for _, id := range ids {
		if p, ok := g.nodes[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
