package types

// SimilarityResult is the overall similarity between two profiles with a per-dimension breakdown.
// All scores are in [0, 1].
type SimilarityResult struct {
	Overall   float64             `json:"overall"`
	Breakdown SimilarityBreakdown `json:"breakdown"`

	// Explanations of what matched, for presenting the score to a user
	SharedSkills    []string `json:"shared_skills,omitempty"`
	SharedSchools   []string `json:"shared_schools,omitempty"`
	SharedCompanies []string `json:"shared_companies,omitempty"`
}

// SimilarityBreakdown holds the individual dimension scores
type SimilarityBreakdown struct {
	Industry  float64 `json:"industry"`
	Skills    float64 `json:"skills"`
	Education float64 `json:"education"`
	Location  float64 `json:"location"`
	Companies float64 `json:"companies"`
}

// Direction describes who makes the introduction through a bridge contact
type Direction string

const (
	// DirectionBridgeKnowsTarget means the bridge is already connected to the target
	// and can introduce the source directly.
	DirectionBridgeKnowsTarget Direction = "bridge_knows_target"
	// DirectionAskForIntroduction means the source must ask the bridge to reach the target.
	DirectionAskForIntroduction Direction = "ask_for_introduction"
)

// IntermediaryMatch is a candidate bridge contact between source and target
type IntermediaryMatch struct {
	Intermediary         ActorProfile `json:"intermediary"`
	PathStrength         float64      `json:"path_strength"`
	Direction            Direction    `json:"direction"`
	SourceToIntermediary float64      `json:"source_to_intermediary"`
	IntermediaryToTarget float64      `json:"intermediary_to_target"`
}

// Sampling strategies reported by the connection sampler
const (
	SamplingStrategyNone      = "none"
	SamplingStrategyRelevance = "relevance"
	SamplingStrategyHash      = "hash"
)

// SampleReport describes how a connection list was reduced before bridge search
type SampleReport struct {
	OriginalCount int    `json:"original_count"`
	SampledCount  int    `json:"sampled_count"`
	Strategy      string `json:"strategy"`
}
