package intermediary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/similarity"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// tableScorer returns fixed scores per unordered ID pair
type tableScorer map[[2]string]float64

func (s tableScorer) Compute(a, b *types.ActorProfile) types.SimilarityResult {
	if v, ok := s[[2]string{a.ID, b.ID}]; ok {
		return types.SimilarityResult{Overall: v}
	}
	return types.SimilarityResult{Overall: s[[2]string{b.ID, a.ID}]}
}

// mutualGraph answers GetMutualConnections from a fixed list
type mutualGraph struct {
	graph.Graph
	mutuals []types.ActorProfile
	err     error
	calls   int
}

func (g *mutualGraph) GetMutualConnections(context.Context, string, string) ([]types.ActorProfile, error) {
	g.calls++
	return g.mutuals, g.err
}

var (
	src = &types.ActorProfile{ID: "src"}
	tgt = &types.ActorProfile{ID: "tgt"}
)

func candidates(ids ...string) []types.ActorProfile {
	out := make([]types.ActorProfile, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.ActorProfile{ID: id})
	}
	return out
}

func TestRank_PicksStrongestBridge(t *testing.T) {
	scorer := tableScorer{
		{"src", "weak"}: 0.9, {"weak", "tgt"}: 0.2,
		{"src", "good"}: 0.6, {"good", "tgt"}: 0.6,
	}
	f := NewFinder(scorer, DefaultMinPathStrength, nil)

	best := f.Rank(src, tgt, candidates("weak", "good"))
	require.NotNil(t, best)
	assert.Equal(t, "good", best.Profile.ID)
	assert.InDelta(t, 0.6, best.PathStrength, 1e-9)
	assert.InDelta(t, 0.6, best.SourceToIntermediary, 1e-9)
	assert.InDelta(t, 0.6, best.IntermediaryToTarget, 1e-9)
}

func TestRank_WeakestHopDominates(t *testing.T) {
	// harmonic mean of 0.9 and 0.2 is below the bar even though the arithmetic mean is not
	scorer := tableScorer{{"src", "c"}: 0.9, {"c", "tgt"}: 0.2}
	f := NewFinder(scorer, DefaultMinPathStrength, nil)

	assert.Nil(t, f.Rank(src, tgt, candidates("c")))
}

func TestRank_TiesBrokenByID(t *testing.T) {
	scorer := tableScorer{
		{"src", "zed"}: 0.5, {"zed", "tgt"}: 0.5,
		{"src", "amy"}: 0.5, {"amy", "tgt"}: 0.5,
	}
	f := NewFinder(scorer, DefaultMinPathStrength, nil)

	best := f.Rank(src, tgt, candidates("zed", "amy"))
	require.NotNil(t, best)
	assert.Equal(t, "amy", best.Profile.ID)
}

func TestRank_ExcludesEndpoints(t *testing.T) {
	scorer := tableScorer{{"src", "tgt"}: 1.0, {"src", "src"}: 1.0, {"tgt", "tgt"}: 1.0}
	f := NewFinder(scorer, 0, nil)

	assert.Nil(t, f.Rank(src, tgt, candidates("src", "tgt", "")))
}

func TestRank_EmptyAndNil(t *testing.T) {
	f := NewFinder(tableScorer{}, DefaultMinPathStrength, nil)

	assert.Nil(t, f.Rank(src, tgt, nil))
	assert.Nil(t, f.Rank(nil, tgt, candidates("a")))
	assert.Nil(t, f.Rank(src, nil, candidates("a")))
}

func TestFind_Direction(t *testing.T) {
	scorer := tableScorer{{"src", "bridge"}: 0.7, {"bridge", "tgt"}: 0.5}
	f := NewFinder(scorer, DefaultMinPathStrength, nil)

	t.Run("bridge is a mutual connection", func(t *testing.T) {
		g := &mutualGraph{mutuals: candidates("other", "bridge")}
		match := f.Find(context.Background(), src, tgt, candidates("bridge"), g)
		require.NotNil(t, match)
		assert.Equal(t, types.DirectionBridgeKnowsTarget, match.Direction)
		assert.Equal(t, 1, g.calls)
	})

	t.Run("bridge must be asked", func(t *testing.T) {
		g := &mutualGraph{mutuals: candidates("other")}
		match := f.Find(context.Background(), src, tgt, candidates("bridge"), g)
		require.NotNil(t, match)
		assert.Equal(t, types.DirectionAskForIntroduction, match.Direction)
	})

	t.Run("lookup failure", func(t *testing.T) {
		g := &mutualGraph{err: errors.New("timeout")}
		match := f.Find(context.Background(), src, tgt, candidates("bridge"), g)
		require.NotNil(t, match)
		assert.Equal(t, types.DirectionAskForIntroduction, match.Direction)
	})
}

func TestFind_NoCandidateSkipsLookup(t *testing.T) {
	f := NewFinder(tableScorer{}, DefaultMinPathStrength, nil)
	g := &mutualGraph{}

	assert.Nil(t, f.Find(context.Background(), src, tgt, candidates("a", "b"), g))
	assert.Equal(t, 0, g.calls)
}

func TestFind_WithWeightedScorer(t *testing.T) {
	source := &types.ActorProfile{
		ID:         "src",
		Location:   "Austin, TX",
		Experience: []types.WorkExperience{{Company: "Dell", Industry: "Computer Hardware"}},
		Skills:     []types.SkillRecord{{Name: "Go"}, {Name: "Kubernetes"}},
	}
	target := &types.ActorProfile{
		ID:         "tgt",
		Location:   "Austin, TX",
		Experience: []types.WorkExperience{{Company: "Oracle", Industry: "Software"}},
		Education:  []types.EducationRecord{{School: "UT Austin"}},
		Skills:     []types.SkillRecord{{Name: "Go"}, {Name: "Postgres"}},
	}
	bridge := types.ActorProfile{
		ID:         "bridge",
		Location:   "Austin, TX",
		Experience: []types.WorkExperience{{Company: "Dell", Industry: "Computer Hardware"}, {Company: "Oracle", Industry: "Software"}},
		Education:  []types.EducationRecord{{School: "UT Austin"}},
		Skills:     []types.SkillRecord{{Name: "Go"}, {Name: "Kubernetes"}, {Name: "Postgres"}},
	}
	stranger := types.ActorProfile{ID: "stranger", Location: "Oslo, Norway"}

	f := NewFinder(similarity.NewDefaultScorer(), DefaultMinPathStrength, nil)
	match := f.Find(context.Background(), source, target, []types.ActorProfile{stranger, bridge}, nil)
	require.NotNil(t, match)
	assert.Equal(t, "bridge", match.Intermediary.ID)
	assert.GreaterOrEqual(t, match.PathStrength, DefaultMinPathStrength)
	assert.LessOrEqual(t, match.PathStrength, 1.0)
}
