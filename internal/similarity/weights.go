// Package similarity scores how alike two actor profiles are across weighted dimensions.
package similarity

import (
	"fmt"
	"math"
)

// weightSumTolerance is the allowed drift from 1.0 when weights are loaded from config
const weightSumTolerance = 1e-6

// Weights are the per-dimension weights used to combine the breakdown into an overall score.
// They must be non-negative and sum to 1.
type Weights struct {
	Industry  float64 `json:"industry" mapstructure:"industry" validate:"gte=0,lte=1"`
	Skills    float64 `json:"skills" mapstructure:"skills" validate:"gte=0,lte=1"`
	Education float64 `json:"education" mapstructure:"education" validate:"gte=0,lte=1"`
	Location  float64 `json:"location" mapstructure:"location" validate:"gte=0,lte=1"`
	Companies float64 `json:"companies" mapstructure:"companies" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the default dimension weights.
func DefaultWeights() Weights {
	return Weights{
		Industry:  0.25,
		Skills:    0.25,
		Education: 0.20,
		Location:  0.15,
		Companies: 0.15,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Industry + w.Skills + w.Education + w.Location + w.Companies
}

// Validate checks that all weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	values := map[string]float64{
		"industry":  w.Industry,
		"skills":    w.Skills,
		"education": w.Education,
		"location":  w.Location,
		"companies": w.Companies,
	}
	for name, v := range values {
		if v < 0 || math.IsNaN(v) {
			return &WeightsError{Message: fmt.Sprintf("weight %q must be non-negative, got %v", name, v)}
		}
	}

	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return &WeightsError{Message: fmt.Sprintf("weights must sum to 1, got %.6f", sum)}
	}
	return nil
}
