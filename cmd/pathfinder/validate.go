package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/connection-pathfinder/internal/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a graph snapshot file",
	Long:  "Checks a snapshot against the GraphSnapshot schema and confirms every connection references a known actor.",
	RunE:  runValidate,
}

var validateSnapshot string

func init() {
	validateCmd.Flags().StringVar(&validateSnapshot, "snapshot", "", "Path to a graph snapshot (YAML or JSON) (required)")

	if err := validateCmd.MarkFlagRequired("snapshot"); err != nil {
		panic(fmt.Sprintf("failed to mark snapshot flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	snap, err := graph.LoadSnapshot(validateSnapshot)
	if err != nil {
		return err
	}
	g, err := snap.Build()
	if err != nil {
		return fmt.Errorf("snapshot is inconsistent: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Valid: %d actors, %d connections\n", g.Len(), len(snap.Connections))
	return err
}
