package types

import (
	"encoding/json"
	"math"
)

// RecommendationType is the discriminant of a ConnectionRecommendation
type RecommendationType string

// Recommendation variants, in cascade order
const (
	RecommendationMutual           RecommendationType = "mutual"
	RecommendationDirectSimilarity RecommendationType = "direct_similarity"
	RecommendationIntermediary     RecommendationType = "intermediary"
	RecommendationColdSimilarity   RecommendationType = "cold_similarity"
	RecommendationNone             RecommendationType = "none"
)

// ConnectionRecommendation is a sum type over the recommendation variants.
// Exactly one of the concrete types below implements it for any given value.
type ConnectionRecommendation interface {
	Type() RecommendationType
	Base() Assessment
	isConnectionRecommendation()
}

// Assessment holds the fields shared by every recommendation variant
type Assessment struct {
	Confidence              float64  `json:"confidence"`
	EstimatedAcceptanceRate float64  `json:"estimated_acceptance_rate"`
	Reasoning               string   `json:"reasoning"`
	NextSteps               []string `json:"next_steps"`
}

// NewAssessment builds an Assessment with confidence and acceptance rate clamped to [0, 1].
func NewAssessment(confidence, acceptanceRate float64, reasoning string, nextSteps []string) Assessment {
	return Assessment{
		Confidence:              Clamp01(confidence),
		EstimatedAcceptanceRate: Clamp01(acceptanceRate),
		Reasoning:               reasoning,
		NextSteps:               nextSteps,
	}
}

// Clamp01 clamps v to [0, 1]. NaN becomes 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MutualRecommendation: a path through verified mutual contacts exists
type MutualRecommendation struct {
	Assessment
	Path              []string `json:"path"`
	MutualConnections int      `json:"mutual_connections"`
	PathProbability   float64  `json:"path_probability"`
}

// DirectSimilarityRecommendation: profiles are similar enough to reach out directly
type DirectSimilarityRecommendation struct {
	Assessment
	Similarity SimilarityResult `json:"similarity"`
}

// IntermediaryRecommendation: a direct connection of the source can bridge to the target
type IntermediaryRecommendation struct {
	Assessment
	Match    IntermediaryMatch `json:"match"`
	Sampling SampleReport      `json:"sampling"`
}

// ColdSimilarityRecommendation: some common ground exists, but no warm path
type ColdSimilarityRecommendation struct {
	Assessment
	Similarity SimilarityResult `json:"similarity"`
}

// NoRecommendation: nothing connects source and target yet
type NoRecommendation struct {
	Assessment
	Similarity SimilarityResult `json:"similarity"`
}

func (MutualRecommendation) Type() RecommendationType { return RecommendationMutual }
func (DirectSimilarityRecommendation) Type() RecommendationType {
	return RecommendationDirectSimilarity
}
func (IntermediaryRecommendation) Type() RecommendationType   { return RecommendationIntermediary }
func (ColdSimilarityRecommendation) Type() RecommendationType { return RecommendationColdSimilarity }
func (NoRecommendation) Type() RecommendationType             { return RecommendationNone }

func (r MutualRecommendation) Base() Assessment           { return r.Assessment }
func (r DirectSimilarityRecommendation) Base() Assessment { return r.Assessment }
func (r IntermediaryRecommendation) Base() Assessment     { return r.Assessment }
func (r ColdSimilarityRecommendation) Base() Assessment   { return r.Assessment }
func (r NoRecommendation) Base() Assessment               { return r.Assessment }

func (MutualRecommendation) isConnectionRecommendation()           {}
func (DirectSimilarityRecommendation) isConnectionRecommendation() {}
func (IntermediaryRecommendation) isConnectionRecommendation()     {}
func (ColdSimilarityRecommendation) isConnectionRecommendation()   {}
func (NoRecommendation) isConnectionRecommendation()               {}

// The MarshalJSON methods add the "type" discriminant next to the flattened variant fields.

func (r MutualRecommendation) MarshalJSON() ([]byte, error) {
	type alias MutualRecommendation
	return json.Marshal(struct {
		Type RecommendationType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}

func (r DirectSimilarityRecommendation) MarshalJSON() ([]byte, error) {
	type alias DirectSimilarityRecommendation
	return json.Marshal(struct {
		Type RecommendationType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}

func (r IntermediaryRecommendation) MarshalJSON() ([]byte, error) {
	type alias IntermediaryRecommendation
	return json.Marshal(struct {
		Type RecommendationType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}

func (r ColdSimilarityRecommendation) MarshalJSON() ([]byte, error) {
	type alias ColdSimilarityRecommendation
	return json.Marshal(struct {
		Type RecommendationType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}

func (r NoRecommendation) MarshalJSON() ([]byte, error) {
	type alias NoRecommendation
	return json.Marshal(struct {
		Type RecommendationType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}
