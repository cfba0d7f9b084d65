package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// timeNow is the clock used to derive experience metadata
var timeNow = time.Now

// UpsertActor creates or replaces an actor profile
func (db *DB) UpsertActor(ctx context.Context, p types.ActorProfile) error {
	return upsertActor(ctx, db.pool, p, uuid.Nil)
}

// AddConnection stores an undirected edge between two existing actors.
// Adding an edge that already exists is a no-op.
func (db *DB) AddConnection(ctx context.Context, a, b string) error {
	lo, hi, ok := edgeKey(a, b)
	if !ok {
		return fmt.Errorf("cannot connect %s to itself", a)
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO connections (actor_a, actor_b) VALUES ($1, $2)
		 ON CONFLICT (actor_a, actor_b) DO NOTHING`,
		lo, hi,
	)
	if err != nil {
		return fmt.Errorf("failed to add connection %s-%s: %w", lo, hi, err)
	}
	return nil
}

// ImportSnapshot stores every actor and connection of snap in one transaction, tagged
// with a fresh batch ID. Edges must reference actors in the snapshot.
func (db *DB) ImportSnapshot(ctx context.Context, snap *graph.Snapshot) (*ImportResult, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}

	known := make(map[string]bool, len(snap.Actors))
	for _, p := range snap.Actors {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid actor in snapshot: %w", err)
		}
		known[p.ID] = true
	}
	for i, e := range snap.Connections {
		if !known[e.A] || !known[e.B] {
			return nil, fmt.Errorf("connection %d (%s-%s): %w", i, e.A, e.B, graph.ErrActorNotFound)
		}
	}

	result := &ImportResult{BatchID: uuid.New()}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range snap.Actors {
		if err := upsertActor(ctx, tx, p, result.BatchID); err != nil {
			return nil, err
		}
		result.Actors++
	}

	seen := make(map[[2]string]bool, len(snap.Connections))
	for _, e := range snap.Connections {
		lo, hi, ok := edgeKey(e.A, e.B)
		if !ok || seen[[2]string{lo, hi}] {
			result.Skipped++
			continue
		}
		seen[[2]string{lo, hi}] = true

		_, err := tx.Exec(ctx,
			`INSERT INTO connections (actor_a, actor_b, import_batch) VALUES ($1, $2, $3)
			 ON CONFLICT (actor_a, actor_b) DO NOTHING`,
			lo, hi, result.BatchID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert connection %s-%s: %w", lo, hi, err)
		}
		result.Connections++
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}
	return result, nil
}

// execer is satisfied by both the pool and a transaction
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func upsertActor(ctx context.Context, q execer, p types.ActorProfile, batch uuid.UUID) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid actor: %w", err)
	}
	data, err := encodeProfile(withDerivedMetadata(p))
	if err != nil {
		return err
	}

	var batchID any
	if batch != uuid.Nil {
		batchID = batch
	}
	_, err = q.Exec(ctx,
		`INSERT INTO actors (id, profile, import_batch) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET profile = $2, import_batch = $3, updated_at = NOW()`,
		p.ID, data, batchID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert actor %s: %w", p.ID, err)
	}
	return nil
}

// withDerivedMetadata fills metadata the same way snapshot loading does
func withDerivedMetadata(p types.ActorProfile) types.ActorProfile {
	p.Metadata = types.DeriveMetadata(p, timeNow())
	return p
}
