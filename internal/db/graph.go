package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// Graph is a read-only graph.Graph over the actors and connections tables
type Graph struct {
	db *DB
}

// NewGraph returns a Graph reading from db.
func NewGraph(db *DB) *Graph {
	return &Graph{db: db}
}

var _ graph.Graph = (*Graph)(nil)

// neighborSQL selects the actors adjacent to $1 in either edge column
const neighborSQL = `SELECT actor_b AS id FROM connections WHERE actor_a = $1
	UNION
	SELECT actor_a AS id FROM connections WHERE actor_b = $1`

// GetConnections returns the actor's direct connections ordered by ID
func (g *Graph) GetConnections(ctx context.Context, actorID string) ([]types.ActorProfile, error) {
	rows, err := g.db.pool.Query(ctx,
		`SELECT a.profile FROM actors a
		 JOIN (`+neighborSQL+`) n ON n.id = a.id
		 ORDER BY a.id`,
		actorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections of %s: %w", actorID, err)
	}
	return collectProfiles(rows)
}

// GetMutualConnections returns actors connected to both actors, ordered by ID
func (g *Graph) GetMutualConnections(ctx context.Context, actorID1, actorID2 string) ([]types.ActorProfile, error) {
	rows, err := g.db.pool.Query(ctx,
		`WITH n1 AS (
		     SELECT actor_b AS id FROM connections WHERE actor_a = $1
		     UNION SELECT actor_a FROM connections WHERE actor_b = $1
		 ), n2 AS (
		     SELECT actor_b AS id FROM connections WHERE actor_a = $2
		     UNION SELECT actor_a FROM connections WHERE actor_b = $2
		 )
		 SELECT a.profile FROM actors a
		 WHERE a.id IN (SELECT id FROM n1 INTERSECT SELECT id FROM n2)
		 ORDER BY a.id`,
		actorID1, actorID2,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query mutual connections: %w", err)
	}
	return collectProfiles(rows)
}

// GetNode returns the actor's profile, or nil if it does not exist
func (g *Graph) GetNode(ctx context.Context, nodeID string) (*types.ActorProfile, error) {
	var data []byte
	err := g.db.pool.QueryRow(ctx, `SELECT profile FROM actors WHERE id = $1`, nodeID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get actor %s: %w", nodeID, err)
	}

	p, err := decodeProfile(data)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// BidirectionalBFS searches for the shortest path within hopLimit edges, fetching one
// frontier's adjacency per query.
func (g *Graph) BidirectionalBFS(ctx context.Context, sourceID, targetID string, hopLimit int) (*graph.PathResult, error) {
	var count int
	err := g.db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM actors WHERE id = ANY($1)`,
		[]string{sourceID, targetID},
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to look up path endpoints: %w", err)
	}
	if count < 2 {
		return nil, nil
	}

	return graph.BidirectionalSearch(ctx, sourceID, targetID, hopLimit, g.neighbors)
}

func (g *Graph) neighbors(ctx context.Context, ids []string) (map[string][]string, error) {
	rows, err := g.db.pool.Query(ctx,
		`SELECT actor_a, actor_b FROM connections
		 WHERE actor_a = ANY($1) OR actor_b = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighbors: %w", err)
	}
	defer rows.Close()

	var edges [][2]string
	for rows.Next() {
		var e [2]string
		if err := rows.Scan(&e[0], &e[1]); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}
	return neighborMap(ids, edges), nil
}

func collectProfiles(rows pgx.Rows) ([]types.ActorProfile, error) {
	defer rows.Close()

	profiles := make([]types.ActorProfile, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p, err := decodeProfile(data)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}
