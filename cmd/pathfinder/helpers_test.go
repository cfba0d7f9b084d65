package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// sampleSnapshot is a small graph: alice - bob - carol, with dave unconnected
const sampleSnapshot = `actors:
  - id: alice
    name: Alice Nguyen
    location: Seattle, WA
    experience:
      - company: Amazon
        title: Software Engineer
        industry: Internet
        start_date: "2018-06"
    skills:
      - {name: Go}
      - {name: Kubernetes}
  - id: bob
    name: Bob Ortiz
    location: Seattle, WA
    experience:
      - company: Amazon
        title: Engineering Manager
        industry: Internet
    skills:
      - {name: Go}
  - id: carol
    name: Carol Diaz
    location: Portland, OR
  - id: dave
connections:
  - {a: alice, b: bob}
  - {a: bob, b: carol}
`

// writeSnapshot writes content to a snapshot file in a temp dir and returns its path
func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// resetFlags restores every command's flags to their defaults. Cobra commands and
// their flag variables are package globals, so state leaks between executions otherwise.
func resetFlags() {
	configPath, logLevel = "", ""
	resolveSource, resolveTarget, resolveSnapshot, resolveDatabaseURL, resolveVerbose = "", "", "", "", false
	similarityA, similarityB, similaritySnapshot, similarityDatabaseURL, similarityVerbose = "", "", "", "", false
	batchSource, batchTargets, batchSnapshot, batchDatabaseURL, batchConcurrency = "", nil, "", "", 0
	importSnapshot, importDatabaseURL = "", ""
	validateSnapshot = ""
	servePort, serveSnapshot, serveDatabaseURL = 0, "", ""

	for _, cmd := range rootCmd.Commands() {
		unmark(cmd)
	}
	unmark(rootCmd)
}

func unmark(cmd *cobra.Command) {
	for _, name := range []string{"source", "target", "targets", "snapshot", "database-url", "verbose", "concurrency", "a", "b", "port", "config", "log-level"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			f.Changed = false
		}
	}
}

// executeCommand runs the CLI in-process and returns what it wrote to stdout and stderr
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PATHFINDER_DATABASE_URL", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// getBinaryPath returns the path to a built pathfinder binary, skipping when it is absent
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "pathfinder")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/pathfinder ./cmd/pathfinder'", binaryPath)
	}
	return binaryPath
}
