package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/connection-pathfinder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recommendations over HTTP",
	Long: `Starts the HTTP API (POST /v1/recommendations, POST /v1/similarity,
GET /v1/actors/{id}, GET /health, GET /metrics) over a snapshot or the database.`,
	RunE: runServe,
}

var (
	servePort        int
	serveSnapshot    string
	serveDatabaseURL string
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to server.port from config)")
	serveCmd.Flags().StringVar(&serveSnapshot, "snapshot", "", "Path to a graph snapshot (YAML or JSON)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	serveCmd.MarkFlagsMutuallyExclusive("snapshot", "database-url")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	r, logger, err := newResolver(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, cleanup, err := openGraph(ctx, cfg, serveSnapshot, serveDatabaseURL)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(cfg.Server, r, g, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
