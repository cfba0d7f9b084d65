package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jonathan/connection-pathfinder/internal/config"
	"github.com/jonathan/connection-pathfinder/internal/db"
	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/observability"
	"github.com/jonathan/connection-pathfinder/internal/resolver"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// loadConfig loads the config file and environment, applying the --log-level override
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// newResolver builds the logger and resolver described by cfg
func newResolver(cfg *config.Config) (*resolver.Resolver, *zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	r, err := resolver.New(cfg.Resolver, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	return r, logger, nil
}

// openGraph opens a snapshot file when given, otherwise the PostgreSQL database.
// The returned cleanup must be called when done.
func openGraph(ctx context.Context, cfg *config.Config, snapshotPath, databaseURL string) (graph.Graph, func(), error) {
	if snapshotPath != "" {
		snap, err := graph.LoadSnapshot(snapshotPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		g, err := snap.Build()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build graph: %w", err)
		}
		return g, func() {}, nil
	}

	if databaseURL == "" {
		databaseURL = cfg.Database.URL
	}
	if databaseURL == "" {
		return nil, nil, fmt.Errorf("either --snapshot or --database-url (or DATABASE_URL) is required")
	}

	database, err := db.ConnectWithMaxConns(ctx, databaseURL, cfg.Database.MaxConns)
	if err != nil {
		return nil, nil, err
	}
	return db.NewGraph(database), database.Close, nil
}

// lookupActor fetches a profile the command needs, failing if it is unknown
func lookupActor(ctx context.Context, g graph.Graph, id string) (*types.ActorProfile, error) {
	p, err := g.GetNode(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up actor %s: %w", id, err)
	}
	if p == nil {
		return nil, fmt.Errorf("actor %s: %w", id, graph.ErrActorNotFound)
	}
	return p, nil
}

// writeJSON writes v as indented JSON followed by a newline
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
