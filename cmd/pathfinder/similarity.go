package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/connection-pathfinder/internal/observability"
)

var similarityCmd = &cobra.Command{
	Use:   "similarity",
	Short: "Score the professional similarity of two actors",
	Long:  "Computes the five-dimension similarity breakdown between two actors and prints it as JSON.",
	RunE:  runSimilarity,
}

var (
	similarityA           string
	similarityB           string
	similaritySnapshot    string
	similarityDatabaseURL string
	similarityVerbose     bool
)

func init() {
	similarityCmd.Flags().StringVarP(&similarityA, "a", "a", "", "First actor ID (required)")
	similarityCmd.Flags().StringVarP(&similarityB, "b", "b", "", "Second actor ID (required)")
	similarityCmd.Flags().StringVar(&similaritySnapshot, "snapshot", "", "Path to a graph snapshot (YAML or JSON)")
	similarityCmd.Flags().StringVar(&similarityDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	similarityCmd.Flags().BoolVarP(&similarityVerbose, "verbose", "v", false, "Print the weights and a readable breakdown before the JSON")

	if err := similarityCmd.MarkFlagRequired("a"); err != nil {
		panic(fmt.Sprintf("failed to mark a flag as required: %v", err))
	}
	if err := similarityCmd.MarkFlagRequired("b"); err != nil {
		panic(fmt.Sprintf("failed to mark b flag as required: %v", err))
	}
	similarityCmd.MarkFlagsMutuallyExclusive("snapshot", "database-url")

	rootCmd.AddCommand(similarityCmd)
}

func runSimilarity(cmd *cobra.Command, _ []string) error {
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

	g, cleanup, err := openGraph(ctx, cfg, similaritySnapshot, similarityDatabaseURL)
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := lookupActor(ctx, g, similarityA)
	if err != nil {
		return err
	}
	b, err := lookupActor(ctx, g, similarityB)
	if err != nil {
		return err
	}

	result := r.ComputeSimilarity(a, b)
	if similarityVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintWeights(r.Weights())
		printer.PrintSimilarity(a, b, result)
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
