package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/connection-pathfinder/internal/db"
	"github.com/jonathan/connection-pathfinder/internal/graph"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a graph snapshot into PostgreSQL",
	Long:  "Creates the schema if needed and stores every actor and connection of a snapshot in one transaction.",
	RunE:  runImport,
}

var (
	importSnapshot    string
	importDatabaseURL string
)

func init() {
	importCmd.Flags().StringVar(&importSnapshot, "snapshot", "", "Path to a graph snapshot (YAML or JSON) (required)")
	importCmd.Flags().StringVar(&importDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")

	if err := importCmd.MarkFlagRequired("snapshot"); err != nil {
		panic(fmt.Sprintf("failed to mark snapshot flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := graph.LoadSnapshot(importSnapshot)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	url := importDatabaseURL
	if url == "" {
		url = cfg.Database.URL
	}
	if url == "" {
		return fmt.Errorf("--database-url (or DATABASE_URL) is required")
	}

	database, err := db.ConnectWithMaxConns(ctx, url, cfg.Database.MaxConns)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	result, err := database.ImportSnapshot(ctx, snap)
	if err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
