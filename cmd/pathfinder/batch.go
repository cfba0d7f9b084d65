package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve recommendations from one source to many targets",
	Long: `Resolves a recommendation for every target in parallel and prints a JSON array
in the order the targets were given. A target that cannot be resolved gets an
error entry instead of failing the whole batch.`,
	RunE: runBatch,
}

var (
	batchSource      string
	batchTargets     []string
	batchSnapshot    string
	batchDatabaseURL string
	batchConcurrency int
)

// batchResult is one entry of the batch output
type batchResult struct {
	TargetID       string                         `json:"target_id"`
	Recommendation types.ConnectionRecommendation `json:"recommendation,omitempty"`
	Error          string                         `json:"error,omitempty"`
}

func init() {
	batchCmd.Flags().StringVarP(&batchSource, "source", "s", "", "Source actor ID (required)")
	batchCmd.Flags().StringSliceVarP(&batchTargets, "targets", "t", nil, "Comma-separated target actor IDs (required)")
	batchCmd.Flags().StringVar(&batchSnapshot, "snapshot", "", "Path to a graph snapshot (YAML or JSON)")
	batchCmd.Flags().StringVar(&batchDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Parallel resolutions (defaults to batch.concurrency from config)")

	if err := batchCmd.MarkFlagRequired("source"); err != nil {
		panic(fmt.Sprintf("failed to mark source flag as required: %v", err))
	}
	if err := batchCmd.MarkFlagRequired("targets"); err != nil {
		panic(fmt.Sprintf("failed to mark targets flag as required: %v", err))
	}
	batchCmd.MarkFlagsMutuallyExclusive("snapshot", "database-url")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchConcurrency > 0 {
		cfg.Batch.Concurrency = batchConcurrency
	}
	r, logger, err := newResolver(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, cleanup, err := openGraph(ctx, cfg, batchSnapshot, batchDatabaseURL)
	if err != nil {
		return err
	}
	defer cleanup()

	source, err := lookupActor(ctx, g, batchSource)
	if err != nil {
		return err
	}

	results := make([]batchResult, len(batchTargets))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Batch.Concurrency)

	for i, id := range batchTargets {
		i, id := i, strings.TrimSpace(id)
		results[i].TargetID = id
		eg.Go(func() error {
			target, err := lookupActor(egCtx, g, id)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			rec, err := r.FindConnectionRecommendation(egCtx, source, target, g)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Recommendation = rec
			return nil
		})
	}
	// Workers record per-target failures, so Wait only surfaces context cancellation.
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("batch resolution failed: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	logger.Info("batch resolution complete",
		zap.String("source_id", source.ID),
		zap.Int("targets", len(results)),
		zap.Int("failed", failed))

	return writeJSON(cmd.OutOrStdout(), results)
}
