package db

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

// ImportResult summarizes a snapshot import
type ImportResult struct {
	BatchID     uuid.UUID `json:"batch_id"`
	Actors      int       `json:"actors"`
	Connections int       `json:"connections"`
	// Skipped counts self-loops and duplicate edges that were not stored.
	Skipped int `json:"skipped"`
}

// edgeKey orders an undirected edge so that a < b, matching the connections table constraint.
// ok is false for self-loops.
func edgeKey(a, b string) (lo, hi string, ok bool) {
	switch {
	case a == b:
		return "", "", false
	case a < b:
		return a, b, true
	default:
		return b, a, true
	}
}

// neighborMap groups stored edges into sorted adjacency lists for the requested IDs.
func neighborMap(ids []string, edges [][2]string) map[string][]string {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	out := make(map[string][]string, len(ids))
	for _, e := range edges {
		if wanted[e[0]] {
			out[e[0]] = append(out[e[0]], e[1])
		}
		if wanted[e[1]] {
			out[e[1]] = append(out[e[1]], e[0])
		}
	}
	for id := range out {
		sort.Strings(out[id])
	}
	return out
}

func encodeProfile(p types.ActorProfile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile %s: %w", p.ID, err)
	}
	return data, nil
}

func decodeProfile(data []byte) (types.ActorProfile, error) {
	var p types.ActorProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return types.ActorProfile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return p, nil
}
