package graph

import (
	"context"
	"math"
	"sort"
)

// NeighborFunc returns the neighbor IDs of each of the given actors.
// Actors without neighbors may be absent from the map.
type NeighborFunc func(ctx context.Context, ids []string) (map[string][]string, error)

// Path probability by hop count
var hopProbability = map[int]float64{
	1: 0.95,
	2: 0.75,
	3: 0.45,
}

const (
	maxPathProbability = 0.95
	// each extra mutual beyond the first raises a 2-hop path's probability
	extraMutualBonus    = 0.05
	maxExtraMutualBonus = 0.15
	// decay per hop beyond the last entry in hopProbability
	longPathDecay = 0.6
)

// PathProbability estimates the chance a path of the given length leads to a warm
// introduction. Two-hop paths get a bonus when several mutual contacts exist.
func PathProbability(hops, mutualConnections int) float64 {
	if hops <= 0 {
		return 0
	}

	p, ok := hopProbability[hops]
	if !ok {
		p = hopProbability[3] * math.Pow(longPathDecay, float64(hops-3))
	}

	if hops == 2 && mutualConnections > 1 {
		p += math.Min(extraMutualBonus*float64(mutualConnections-1), maxExtraMutualBonus)
	}
	return math.Min(p, maxPathProbability)
}

// BidirectionalSearch finds a shortest path between sourceID and targetID of at most
// hopLimit edges by expanding the smaller frontier one level at a time from both ends.
// Neighbors are visited in ID order so the returned path is deterministic.
// It returns nil when the endpoints are equal or no path exists within the limit.
func BidirectionalSearch(ctx context.Context, sourceID, targetID string, hopLimit int, neighbors NeighborFunc) (*PathResult, error) {
	if sourceID == "" || targetID == "" || sourceID == targetID {
		return nil, nil
	}
	if hopLimit <= 0 {
		hopLimit = DefaultHopLimit
	}

	fetched := make(map[string][]string)
	expand := func(ids []string) error {
		missing := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := fetched[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) == 0 {
			return nil
		}
		found, err := neighbors(ctx, missing)
		if err != nil {
			return err
		}
		for _, id := range missing {
			list := append([]string(nil), found[id]...)
			sort.Strings(list)
			fetched[id] = list
		}
		return nil
	}

	forward := map[string]string{sourceID: ""}
	backward := map[string]string{targetID: ""}
	frontierF := []string{sourceID}
	frontierB := []string{targetID}
	depth := 0
	meeting := ""

	for depth < hopLimit && len(frontierF) > 0 && len(frontierB) > 0 && meeting == "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		expandForward := len(frontierF) <= len(frontierB)
		frontier, own, other := frontierF, forward, backward
		if !expandForward {
			frontier, own, other = frontierB, backward, forward
		}

		if err := expand(frontier); err != nil {
			return nil, err
		}

		next := make([]string, 0)
	level:
		for _, u := range frontier {
			for _, v := range fetched[u] {
				if v == "" {
					continue
				}
				if _, seen := own[v]; seen {
					continue
				}
				own[v] = u
				next = append(next, v)
				if _, hit := other[v]; hit {
					meeting = v
					break level
				}
			}
		}
		sort.Strings(next)

		if expandForward {
			frontierF = next
		} else {
			frontierB = next
		}
		depth++
	}

	if meeting == "" {
		return nil, nil
	}

	path := buildPath(meeting, forward, backward)
	hops := len(path) - 1

	mutuals := 0
	if hops <= 2 {
		if err := expand([]string{sourceID, targetID}); err != nil {
			return nil, err
		}
		mutuals = countShared(fetched[sourceID], fetched[targetID])
	}

	return &PathResult{
		Path:              path,
		Probability:       PathProbability(hops, mutuals),
		MutualConnections: mutuals,
	}, nil
}

// buildPath joins the forward chain ending at meeting with the backward chain starting there
func buildPath(meeting string, forward, backward map[string]string) []string {
	var head []string
	for node := meeting; node != ""; node = forward[node] {
		head = append(head, node)
	}
	for i, j := 0, len(head)-1; i < j; i, j = i+1, j-1 {
		head[i], head[j] = head[j], head[i]
	}

	for node := backward[meeting]; node != ""; node = backward[node] {
		head = append(head, node)
	}
	return head
}

func countShared(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	n := 0
	for _, id := range b {
		if set[id] {
			n++
			delete(set, id)
		}
	}
	return n
}
