package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

const yamlSnapshot = `actors:
  - id: alice
    name: Alice
    location: San Francisco, CA
    experience:
      - company: Stripe
        title: Senior Engineer
        industry: Financial Services
        start_date: "2019-01"
        end_date: "2021-01"
  - id: bob
    name: Bob
  - id: carol
connections:
  - {a: alice, b: bob}
  - {a: bob, b: carol}
`

const jsonSnapshot = `{
  "actors": [
    {"id": "alice", "metadata": {"seniority": "lead", "total_years_experience": 9}},
    {"id": "bob"}
  ],
  "connections": [{"a": "alice", "b": "bob"}]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSnapshot_YAML(t *testing.T) {
	for _, name := range []string{"graph.yaml", "graph.yml"} {
		t.Run(name, func(t *testing.T) {
			snap, err := LoadSnapshot(writeFile(t, name, yamlSnapshot))
			require.NoError(t, err)
			require.Len(t, snap.Actors, 3)
			assert.Equal(t, "Alice", snap.Actors[0].Name)
			assert.Equal(t, "Stripe", snap.Actors[0].Experience[0].Company)
			assert.Equal(t, []Edge{{A: "alice", B: "bob"}, {A: "bob", B: "carol"}}, snap.Connections)
		})
	}
}

func TestLoadSnapshot_JSON(t *testing.T) {
	snap, err := LoadSnapshot(writeFile(t, "graph.json", jsonSnapshot))
	require.NoError(t, err)
	require.Len(t, snap.Actors, 2)
	assert.Equal(t, "lead", snap.Actors[0].Metadata.Seniority)
}

func TestLoadSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unsupported extension", "graph.txt", jsonSnapshot},
		{"malformed yaml", "graph.yaml", "actors: [unclosed"},
		{"schema violation", "graph.json", `{"actors": [{"name": "no id"}]}`},
		{"missing actors", "graph.yaml", "connections: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			var loadErr *LoadError
			assert.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSnapshotBuild(t *testing.T) {
	timeNow = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = time.Now })

	snap, err := ParseSnapshot([]byte(yamlSnapshot), FormatYAML)
	require.NoError(t, err)

	g, err := snap.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())

	alice, err := g.GetNode(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.Equal(t, types.SenioritySenior, alice.Metadata.Seniority)
	assert.InDelta(t, 2.0, alice.Metadata.TotalYearsExperience, 0.01)

	result, err := g.BidirectionalBFS(context.Background(), "alice", "carol", DefaultHopLimit)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, []string{"alice", "bob", "carol"}, result.Path)
}

func TestSnapshotBuild_PreservesMetadata(t *testing.T) {
	snap, err := ParseSnapshot([]byte(jsonSnapshot), FormatJSON)
	require.NoError(t, err)

	g, err := snap.Build()
	require.NoError(t, err)

	alice, err := g.GetNode(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "lead", alice.Metadata.Seniority)
	assert.Equal(t, 9.0, alice.Metadata.TotalYearsExperience)
}

func TestSnapshotBuild_UnknownEdge(t *testing.T) {
	snap := &Snapshot{
		Actors:      []types.ActorProfile{{ID: "a"}},
		Connections: []Edge{{A: "a", B: "ghost"}},
	}

	_, err := snap.Build()
	assert.ErrorIs(t, err, ErrActorNotFound)
}
