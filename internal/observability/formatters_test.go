package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/connection-pathfinder/internal/similarity"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

func TestPrintRecommendation_Mutual(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := types.MutualRecommendation{
		Assessment:        types.NewAssessment(0.75, 0.42, "Erin is 2 hops away through Mo.", []string{"Ask Mo for a warm introduction to Erin."}),
		Path:              []string{"dana", "mo", "erin"},
		MutualConnections: 1,
		PathProbability:   0.75,
	}

	p.PrintRecommendation(rec)
	output := buf.String()

	assert.Contains(t, output, "CONNECTION RECOMMENDATION")
	assert.Contains(t, output, "mutual")
	assert.Contains(t, output, "dana → mo → erin")
	assert.Contains(t, output, "42%")
	assert.Contains(t, output, "Ask Mo")
}

func TestPrintRecommendation_Intermediary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := types.IntermediaryRecommendation{
		Assessment: types.NewAssessment(0.57, 0.33, "Bea is your best bridge.", []string{"Catch up with Bea."}),
		Match: types.IntermediaryMatch{
			Intermediary: types.ActorProfile{ID: "bea", Name: "Bea"},
			PathStrength: 0.67,
			Direction:    types.DirectionAskForIntroduction,
		},
		Sampling: types.SampleReport{OriginalCount: 900, SampledCount: 500, Strategy: types.SamplingStrategyRelevance},
	}

	p.PrintRecommendation(rec)
	output := buf.String()

	assert.Contains(t, output, "Bridge:      Bea")
	assert.Contains(t, output, "ask_for_introduction")
	assert.Contains(t, output, "500 of 900 (relevance)")
}

func TestPrintRecommendation_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecommendation(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRecommendation_LongReasoningStaysInBox(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	reasoning := strings.Repeat("common ground everywhere ", 10)
	p.PrintRecommendation(types.NoRecommendation{
		Assessment: types.NewAssessment(0.05, 0.12, reasoning, []string{"Follow them."}),
	})

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
}

func TestPrintSimilarity(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	a := &types.ActorProfile{ID: "a", Name: "Ada"}
	b := &types.ActorProfile{ID: "b"}
	result := types.SimilarityResult{
		Overall:       0.79,
		Breakdown:     types.SimilarityBreakdown{Industry: 1, Skills: 0.75, Education: 1, Location: 1},
		SharedSkills:  []string{"go", "kubernetes"},
		SharedSchools: []string{"stanford university"},
	}

	p.PrintSimilarity(a, b, result)
	output := buf.String()

	assert.Contains(t, output, "PROFILE SIMILARITY")
	assert.Contains(t, output, "Ada ↔ b")
	assert.Contains(t, output, "0.79")
	assert.Contains(t, output, "go, kubernetes")
	assert.Contains(t, output, "stanford university")
}

func TestPrintWeights(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintWeights(similarity.DefaultWeights())
	output := buf.String()

	assert.Contains(t, output, "SIMILARITY WEIGHTS")
	assert.Contains(t, output, "Industry   0.25")
	assert.Contains(t, output, "Companies  0.15")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", bar(0))
	assert.Equal(t, "█████░░░░░", bar(0.5))
	assert.Equal(t, "██████████", bar(1.5))
}

func TestWrap(t *testing.T) {
	wrapped := wrap("one two three four five", 9)
	assert.Equal(t, "one two\nthree\nfour five", wrapped)
	assert.Empty(t, wrap("   ", 10))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
