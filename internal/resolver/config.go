package resolver

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/intermediary"
	"github.com/jonathan/connection-pathfinder/internal/sampling"
	"github.com/jonathan/connection-pathfinder/internal/similarity"
)

// Config holds the cascade thresholds and the tuning of its collaborators
type Config struct {
	// DirectThreshold is the similarity at which reaching out directly is recommended.
	DirectThreshold float64 `json:"direct_threshold" mapstructure:"direct_threshold" validate:"gt=0,lte=1"`
	// IntermediaryMinSimilarity is the lowest similarity worth a bridge search.
	IntermediaryMinSimilarity float64 `json:"intermediary_min_similarity" mapstructure:"intermediary_min_similarity" validate:"gte=0,lte=1"`
	// MinPathStrength is the bar a bridge must clear.
	MinPathStrength float64 `json:"min_path_strength" mapstructure:"min_path_strength" validate:"gte=0,lte=1"`
	// IntermediaryConfidenceFactor scales a bridge's path strength into confidence.
	IntermediaryConfidenceFactor float64 `json:"intermediary_confidence_factor" mapstructure:"intermediary_confidence_factor" validate:"gt=0,lte=1"`
	// ColdFloor is the similarity above which a cold outreach is still suggested.
	ColdFloor float64 `json:"cold_floor" mapstructure:"cold_floor" validate:"gte=0,lte=1"`
	// ColdConfidenceFactor discounts similarity into confidence for cold outreach.
	ColdConfidenceFactor float64 `json:"cold_confidence_factor" mapstructure:"cold_confidence_factor" validate:"gt=0,lte=1"`
	NoneConfidence       float64 `json:"none_confidence" mapstructure:"none_confidence" validate:"gte=0,lte=1"`

	HopLimit     int           `json:"hop_limit" mapstructure:"hop_limit" validate:"gte=1,lte=6"`
	GraphTimeout time.Duration `json:"graph_timeout" mapstructure:"graph_timeout" validate:"gt=0"`
	MemoSize     int           `json:"memo_size" mapstructure:"memo_size" validate:"gte=1"`

	Weights  similarity.Weights `json:"weights" mapstructure:"weights"`
	Sampling sampling.Config    `json:"sampling" mapstructure:"sampling"`
}

// DefaultConfig returns the default cascade configuration.
func DefaultConfig() Config {
	return Config{
		DirectThreshold:              0.65,
		IntermediaryMinSimilarity:    0.10,
		MinPathStrength:              intermediary.DefaultMinPathStrength,
		IntermediaryConfidenceFactor: 0.85,
		ColdFloor:                    0.20,
		ColdConfidenceFactor:         0.6,
		NoneConfidence:               0.05,
		HopLimit:                     graph.DefaultHopLimit,
		GraphTimeout:                 2 * time.Second,
		MemoSize:                     similarity.DefaultMemoSize,
		Weights:                      similarity.DefaultWeights(),
		Sampling:                     sampling.DefaultConfig(),
	}
}

var configValidator = validator.New()

// Validate checks field ranges, the ordering of the thresholds, and the nested weight
// and sampling settings.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid resolver config: %w", err)
	}
	if c.IntermediaryMinSimilarity >= c.DirectThreshold {
		return fmt.Errorf("invalid resolver config: intermediary_min_similarity (%.2f) must be below direct_threshold (%.2f)",
			c.IntermediaryMinSimilarity, c.DirectThreshold)
	}
	if c.ColdFloor >= c.DirectThreshold {
		return fmt.Errorf("invalid resolver config: cold_floor (%.2f) must be below direct_threshold (%.2f)",
			c.ColdFloor, c.DirectThreshold)
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Sampling.Validate(); err != nil {
		return fmt.Errorf("invalid resolver config: %w", err)
	}
	return nil
}
