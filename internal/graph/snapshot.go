package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/connection-pathfinder/internal/schemas"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// Snapshot formats accepted by ParseSnapshot
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Snapshot is a serialized social graph: the actors and the undirected edges between them.
type Snapshot struct {
	Actors      []types.ActorProfile `json:"actors" yaml:"actors"`
	Connections []Edge               `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// Edge is an undirected connection between two actor IDs
type Edge struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// LoadSnapshot reads a .json, .yaml or .yml snapshot file and validates it.
func LoadSnapshot(path string) (*Snapshot, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return nil, &LoadError{Message: fmt.Sprintf("unsupported snapshot extension %q", filepath.Ext(path))}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return ParseSnapshot(data, format)
}

// ParseSnapshot decodes snapshot content in the given format. YAML is converted to
// JSON first so both formats go through the same schema validation.
func ParseSnapshot(data []byte, format string) (*Snapshot, error) {
	jsonData := data
	switch format {
	case FormatJSON:
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, &LoadError{Message: "failed to convert YAML to JSON", Cause: err}
		}
		jsonData = converted
	default:
		return nil, &LoadError{Message: fmt.Sprintf("unsupported snapshot format %q", format)}
	}

	if err := schemas.ValidateSnapshot(jsonData); err != nil {
		return nil, &LoadError{Message: "snapshot failed schema validation", Cause: err}
	}

	var snap Snapshot
	if err := json.Unmarshal(jsonData, &snap); err != nil {
		return nil, &LoadError{Message: "failed to decode snapshot", Cause: err}
	}
	return &snap, nil
}

var timeNow = time.Now

// Build creates a MemoryGraph from the snapshot. Metadata fields left empty are
// derived from each actor's work history.
func (s *Snapshot) Build() (*MemoryGraph, error) {
	g := NewMemoryGraph()
	now := timeNow()
	for _, actor := range s.Actors {
		actor.Metadata = types.DeriveMetadata(actor, now)
		if err := g.AddActor(actor); err != nil {
			return nil, fmt.Errorf("failed to add actor %q: %w", actor.ID, err)
		}
	}
	for i, edge := range s.Connections {
		if err := g.Connect(edge.A, edge.B); err != nil {
			return nil, fmt.Errorf("failed to add connection %d: %w", i, err)
		}
	}
	return g, nil
}
