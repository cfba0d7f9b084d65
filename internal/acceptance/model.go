// Package acceptance translates heuristic similarity scores into calibrated outreach acceptance rates.
//
// The anchors come from published outreach-acceptance research, which only gives ranges
// per similarity level. The curve interpolates linearly between the midpoints of those ranges.
package acceptance

import (
	"sort"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

// Anchor pairs a similarity score with the acceptance rate observed around it
type Anchor struct {
	Similarity float64
	Rate       float64
}

// anchors must be sorted by Similarity with non-decreasing Rate
var anchors = []Anchor{
	{0.00, 0.12},
	{0.10, 0.135},
	{0.30, 0.175},
	{0.50, 0.25},
	{0.55, 0.30},
	{0.70, 0.385},
	{0.85, 0.425},
	{1.00, 0.45},
}

// Bands for strategies whose acceptance is driven by more than raw similarity
const (
	MutualRateFloor   = 0.30
	MutualRateCeiling = 0.60
	// mutualProbabilityBoost scales the BFS path probability into extra acceptance
	mutualProbabilityBoost = 0.20

	IntermediaryRateFloor   = 0.15
	IntermediaryRateCeiling = 0.35
)

// MapSimilarityToAcceptanceRate returns the expected acceptance rate for a cold outreach
// at the given similarity. The mapping is monotonically non-decreasing; inputs are clamped to [0, 1].
func MapSimilarityToAcceptanceRate(similarity float64) float64 {
	s := types.Clamp01(similarity)

	// first anchor with Similarity >= s
	i := sort.Search(len(anchors), func(i int) bool {
		return anchors[i].Similarity >= s
	})
	if i == 0 {
		return anchors[0].Rate
	}
	if i >= len(anchors) {
		return anchors[len(anchors)-1].Rate
	}
	if anchors[i].Similarity == s {
		return anchors[i].Rate
	}

	lo, hi := anchors[i-1], anchors[i]
	t := (s - lo.Similarity) / (hi.Similarity - lo.Similarity)
	return lo.Rate + t*(hi.Rate-lo.Rate)
}

// MutualAcceptanceRate returns the acceptance rate when a verified mutual path exists.
// A mutual contact is a strong signal on its own, so the result stays within
// [MutualRateFloor, MutualRateCeiling] regardless of similarity.
func MutualAcceptanceRate(similarity, pathProbability float64) float64 {
	rate := MapSimilarityToAcceptanceRate(similarity) + mutualProbabilityBoost*types.Clamp01(pathProbability)
	return clamp(rate, MutualRateFloor, MutualRateCeiling)
}

// IntermediaryAcceptanceRate returns the acceptance rate for an introduction through a bridge:
// the mean of the direct rate and the rate implied by the bridge's path strength,
// kept within [IntermediaryRateFloor, IntermediaryRateCeiling].
func IntermediaryAcceptanceRate(similarity, pathStrength float64) float64 {
	rate := (MapSimilarityToAcceptanceRate(similarity) + MapSimilarityToAcceptanceRate(pathStrength)) / 2
	return clamp(rate, IntermediaryRateFloor, IntermediaryRateCeiling)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
