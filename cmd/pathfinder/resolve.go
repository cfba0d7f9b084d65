package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/connection-pathfinder/internal/observability"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Recommend how a source actor should reach a target actor",
	Long: `Runs the resolution cascade (mutual path, direct similarity, intermediary,
cold similarity) for one source and target and prints the recommendation as JSON.`,
	RunE: runResolve,
}

var (
	resolveSource      string
	resolveTarget      string
	resolveSnapshot    string
	resolveDatabaseURL string
	resolveVerbose     bool
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveSource, "source", "s", "", "Source actor ID (required)")
	resolveCmd.Flags().StringVarP(&resolveTarget, "target", "t", "", "Target actor ID (required)")
	resolveCmd.Flags().StringVar(&resolveSnapshot, "snapshot", "", "Path to a graph snapshot (YAML or JSON)")
	resolveCmd.Flags().StringVar(&resolveDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	resolveCmd.Flags().BoolVarP(&resolveVerbose, "verbose", "v", false, "Print a readable summary before the JSON")

	if err := resolveCmd.MarkFlagRequired("source"); err != nil {
		panic(fmt.Sprintf("failed to mark source flag as required: %v", err))
	}
	if err := resolveCmd.MarkFlagRequired("target"); err != nil {
		panic(fmt.Sprintf("failed to mark target flag as required: %v", err))
	}
	resolveCmd.MarkFlagsMutuallyExclusive("snapshot", "database-url")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, logger, err := newResolver(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, cleanup, err := openGraph(ctx, cfg, resolveSnapshot, resolveDatabaseURL)
	if err != nil {
		return err
	}
	defer cleanup()

	source, err := lookupActor(ctx, g, resolveSource)
	if err != nil {
		return err
	}
	target, err := lookupActor(ctx, g, resolveTarget)
	if err != nil {
		return err
	}

	rec, err := r.FindConnectionRecommendation(ctx, source, target, g)
	if err != nil {
		return fmt.Errorf("failed to resolve recommendation: %w", err)
	}

	if resolveVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRecommendation(rec)
	}
	return writeJSON(cmd.OutOrStdout(), rec)
}
