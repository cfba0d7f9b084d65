package similarity

import (
	"math"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

// Dimension scores that are not graded
const (
	exactIndustryScore    = 1.0
	partialIndustryFactor = 0.5
	sameCityScore         = 1.0
	sameRegionScore       = 0.5
)

// Scorer computes the similarity between two profiles.
// Implementations must be pure, deterministic and symmetric.
type Scorer interface {
	Compute(a, b *types.ActorProfile) types.SimilarityResult
}

// WeightedScorer combines five dimension scores with configurable weights.
type WeightedScorer struct {
	weights Weights
}

// NewWeightedScorer returns a scorer using the given weights.
func NewWeightedScorer(weights Weights) (*WeightedScorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &WeightedScorer{weights: weights}, nil
}

// NewDefaultScorer returns a scorer using DefaultWeights.
func NewDefaultScorer() *WeightedScorer {
	return &WeightedScorer{weights: DefaultWeights()}
}

// Weights returns the weights in use.
func (s *WeightedScorer) Weights() Weights {
	return s.weights
}

// Compute scores a against b. A nil profile scores zero on every dimension.
func (s *WeightedScorer) Compute(a, b *types.ActorProfile) types.SimilarityResult {
	if a == nil || b == nil {
		return types.SimilarityResult{}
	}

	skills, sharedSkills := jaccard(skillSet(a), skillSet(b))
	companies, sharedCompanies := jaccard(companySet(a), companySet(b))
	education, sharedSchools := computeEducationScore(a, b)

	breakdown := types.SimilarityBreakdown{
		Industry:  computeIndustryScore(a, b),
		Skills:    skills,
		Education: education,
		Location:  computeLocationScore(a.Location, b.Location),
		Companies: companies,
	}

	overall := s.weights.Industry*breakdown.Industry +
		s.weights.Skills*breakdown.Skills +
		s.weights.Education*breakdown.Education +
		s.weights.Location*breakdown.Location +
		s.weights.Companies*breakdown.Companies

	return types.SimilarityResult{
		Overall:         types.Clamp01(overall),
		Breakdown:       breakdown,
		SharedSkills:    sharedSkills,
		SharedSchools:   sharedSchools,
		SharedCompanies: sharedCompanies,
	}
}

// computeIndustryScore returns 1.0 on any exact industry match across the work histories,
// otherwise partial credit for keyword overlap.
func computeIndustryScore(a, b *types.ActorProfile) float64 {
	industriesA := industrySet(a)
	industriesB := industrySet(b)
	if len(industriesA) == 0 || len(industriesB) == 0 {
		return 0.0
	}

	for industry := range industriesA {
		if industriesB[industry] {
			return exactIndustryScore
		}
	}

	tokensA := make(map[string]bool)
	for industry := range industriesA {
		for _, tok := range industryTokens(industry) {
			tokensA[tok] = true
		}
	}
	tokensB := make(map[string]bool)
	for industry := range industriesB {
		for _, tok := range industryTokens(industry) {
			tokensB[tok] = true
		}
	}

	overlap, _ := jaccard(tokensA, tokensB)
	return partialIndustryFactor * overlap
}

// computeEducationScore is binary: any shared school scores 1.0.
func computeEducationScore(a, b *types.ActorProfile) (float64, []string) {
	_, shared := jaccard(schoolSet(a), schoolSet(b))
	if len(shared) > 0 {
		return 1.0, shared
	}
	return 0.0, nil
}

// computeLocationScore returns 1.0 for the same city and region, 0.5 for the same region only.
// A city match where only one side gives a region is treated as the same place.
// Country-level locations score nothing.
func computeLocationScore(rawA, rawB string) float64 {
	a := parseLocation(rawA)
	b := parseLocation(rawB)

	if a.city != "" && a.city == b.city {
		if a.region == b.region || a.region == "" || b.region == "" {
			return sameCityScore
		}
	}
	if a.region != "" && a.region == b.region {
		return sameRegionScore
	}
	return 0.0
}

// harmonicMean favors the smaller of the two values; zero if either is zero.
func harmonicMean(x, y float64) float64 {
	if x <= 0 || y <= 0 || math.IsNaN(x) || math.IsNaN(y) {
		return 0
	}
	return 2 * x * y / (x + y)
}

// PathStrength blends the two hop scores of a bridge, favoring the weaker hop.
func PathStrength(sourceToIntermediary, intermediaryToTarget float64) float64 {
	return types.Clamp01(harmonicMean(sourceToIntermediary, intermediaryToTarget))
}
