package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/connection-pathfinder/internal/acceptance"
	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// stubGraph returns canned answers and can fail, panic or block on demand
type stubGraph struct {
	path        *graph.PathResult
	connections []types.ActorProfile
	mutuals     []types.ActorProfile
	nodes       map[string]types.ActorProfile
	err         error
	panicOn     string
	block       chan struct{}
}

func (s *stubGraph) wait(op string) error {
	if s.panicOn == op {
		panic("adapter bug in " + op)
	}
	if s.block != nil {
		<-s.block
	}
	return s.err
}

func (s *stubGraph) GetConnections(_ context.Context, _ string) ([]types.ActorProfile, error) {
	if err := s.wait(opGetConnections); err != nil {
		return nil, err
	}
	return s.connections, nil
}

func (s *stubGraph) BidirectionalBFS(_ context.Context, _, _ string, _ int) (*graph.PathResult, error) {
	if err := s.wait(opBidirectionalBFS); err != nil {
		return nil, err
	}
	return s.path, nil
}

func (s *stubGraph) GetMutualConnections(_ context.Context, _, _ string) ([]types.ActorProfile, error) {
	if err := s.wait(opGetMutualConnections); err != nil {
		return nil, err
	}
	return s.mutuals, nil
}

func (s *stubGraph) GetNode(_ context.Context, id string) (*types.ActorProfile, error) {
	if err := s.wait(opGetNode); err != nil {
		return nil, err
	}
	if p, ok := s.nodes[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := New(DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return r
}

// similarPair shares a school, three of four skills, an industry and a city: overall ≈ 0.79
func similarPair() (*types.ActorProfile, *types.ActorProfile) {
	source := &types.ActorProfile{
		ID:         "dana",
		Name:       "Dana",
		Location:   "Seattle, WA",
		Experience: []types.WorkExperience{{Company: "Acme", Industry: "Software"}},
		Education:  []types.EducationRecord{{School: "Stanford University"}},
		Skills:     []types.SkillRecord{{Name: "Go"}, {Name: "Kubernetes"}, {Name: "Terraform"}},
	}
	target := &types.ActorProfile{
		ID:         "erin",
		Name:       "Erin",
		Location:   "Greater Seattle Area, WA",
		Experience: []types.WorkExperience{{Company: "Globex", Industry: "Software"}},
		Education:  []types.EducationRecord{{School: "stanford university"}},
		Skills:     []types.SkillRecord{{Name: "golang"}, {Name: "k8s"}, {Name: "Terraform"}, {Name: "Rust"}},
	}
	return source, target
}

// moderatePair shares an industry, a city and three of five skills: overall = 0.55
func moderatePair() (*types.ActorProfile, *types.ActorProfile, types.ActorProfile) {
	source := &types.ActorProfile{
		ID:         "sam",
		Name:       "Sam",
		Location:   "Denver, CO",
		Experience: []types.WorkExperience{{Company: "Initech", Industry: "Data Analytics"}},
		Skills:     []types.SkillRecord{{Name: "Go"}, {Name: "Python"}, {Name: "SQL"}},
	}
	target := &types.ActorProfile{
		ID:         "tess",
		Name:       "Tess",
		Location:   "Denver, CO",
		Experience: []types.WorkExperience{{Company: "Hooli", Industry: "Data Analytics"}},
		Skills:     []types.SkillRecord{{Name: "Go"}, {Name: "Python"}, {Name: "SQL"}, {Name: "Java"}, {Name: "Scala"}},
	}
	bridge := types.ActorProfile{
		ID:       "bea",
		Name:     "Bea",
		Location: "Denver, CO",
		Experience: []types.WorkExperience{
			{Company: "Initech", Industry: "Data Analytics", EndDate: "2021-06"},
			{Company: "Hooli", Industry: "Data Analytics"},
		},
		Skills: []types.SkillRecord{{Name: "Go"}, {Name: "Python"}, {Name: "SQL"}, {Name: "Java"}, {Name: "Scala"}},
	}
	return source, target, bridge
}

func unrelatedPair() (*types.ActorProfile, *types.ActorProfile) {
	source := &types.ActorProfile{
		ID:         "uma",
		Location:   "Lisbon, Portugal",
		Experience: []types.WorkExperience{{Company: "Fado Foods", Industry: "Restaurants"}},
		Education:  []types.EducationRecord{{School: "Universidade de Lisboa"}},
		Skills:     []types.SkillRecord{{Name: "Cooking"}},
	}
	target := &types.ActorProfile{
		ID:         "vic",
		Location:   "Osaka, Japan",
		Experience: []types.WorkExperience{{Company: "Kansai Steel", Industry: "Mining"}},
		Education:  []types.EducationRecord{{School: "Osaka University"}},
		Skills:     []types.SkillRecord{{Name: "Metallurgy"}},
	}
	return source, target
}

func assertWellFormed(t *testing.T, rec types.ConnectionRecommendation) {
	t.Helper()
	require.NotNil(t, rec)
	base := rec.Base()
	assert.GreaterOrEqual(t, base.Confidence, 0.0)
	assert.LessOrEqual(t, base.Confidence, 1.0)
	assert.GreaterOrEqual(t, base.EstimatedAcceptanceRate, 0.0)
	assert.LessOrEqual(t, base.EstimatedAcceptanceRate, 1.0)
	assert.NotEmpty(t, base.Reasoning)
	assert.NotEmpty(t, base.NextSteps)
}

func TestFindConnectionRecommendation_Mutual(t *testing.T) {
	r := newTestResolver(t)
	source, target := unrelatedPair()
	g := &stubGraph{
		path: &graph.PathResult{Path: []string{"uma", "mo", "vic"}, Probability: 0.75, MutualConnections: 1},
		nodes: map[string]types.ActorProfile{
			"mo": {ID: "mo", Name: "Mo"},
		},
	}

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, g)
	require.NoError(t, err)
	assertWellFormed(t, rec)

	mutual, ok := rec.(types.MutualRecommendation)
	require.True(t, ok, "expected mutual, got %s", rec.Type())
	assert.Equal(t, []string{"uma", "mo", "vic"}, mutual.Path)
	assert.Equal(t, 1, mutual.MutualConnections)
	assert.InDelta(t, 0.75, mutual.Confidence, 1e-9)
	assert.GreaterOrEqual(t, mutual.EstimatedAcceptanceRate, 0.30)
	assert.LessOrEqual(t, mutual.EstimatedAcceptanceRate, 0.60)
	assert.Contains(t, mutual.NextSteps[0], "Mo")
}

func TestFindConnectionRecommendation_MutualBeatsSimilarity(t *testing.T) {
	r := newTestResolver(t)
	source, target := similarPair()
	g := &stubGraph{path: &graph.PathResult{Path: []string{"dana", "erin"}, Probability: 0.95}}

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, g)
	require.NoError(t, err)
	assert.Equal(t, types.RecommendationMutual, rec.Type())
	assert.LessOrEqual(t, rec.Base().EstimatedAcceptanceRate, acceptance.MutualRateCeiling)
}

func TestFindConnectionRecommendation_DirectSimilarity(t *testing.T) {
	r := newTestResolver(t)
	source, target := similarPair()
	g := graph.NewMemoryGraph()
	require.NoError(t, g.AddActor(*source))
	require.NoError(t, g.AddActor(*target))

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, g)
	require.NoError(t, err)
	assertWellFormed(t, rec)

	direct, ok := rec.(types.DirectSimilarityRecommendation)
	require.True(t, ok, "expected direct_similarity, got %s", rec.Type())
	assert.InDelta(t, 0.7875, direct.Similarity.Overall, 1e-9)
	assert.GreaterOrEqual(t, direct.Confidence, 0.65)
	assert.GreaterOrEqual(t, direct.EstimatedAcceptanceRate, 0.35)
	assert.LessOrEqual(t, direct.EstimatedAcceptanceRate, 0.45)
	assert.Contains(t, direct.Reasoning, "stanford university")
}

func TestFindConnectionRecommendation_Intermediary(t *testing.T) {
	r := newTestResolver(t)
	source, target, bridge := moderatePair()

	g := graph.NewMemoryGraph()
	for _, p := range []types.ActorProfile{*source, *target, bridge} {
		require.NoError(t, g.AddActor(p))
	}
	require.NoError(t, g.Connect(source.ID, bridge.ID))

	assert.InDelta(t, 0.55, r.ComputeSimilarity(source, target).Overall, 1e-9)

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, g)
	require.NoError(t, err)
	assertWellFormed(t, rec)

	inter, ok := rec.(types.IntermediaryRecommendation)
	require.True(t, ok, "expected intermediary, got %s", rec.Type())
	assert.Equal(t, "bea", inter.Match.Intermediary.ID)
	assert.Equal(t, types.DirectionAskForIntroduction, inter.Match.Direction)
	assert.GreaterOrEqual(t, inter.Match.PathStrength, r.Config().MinPathStrength)
	assert.GreaterOrEqual(t, inter.EstimatedAcceptanceRate, 0.20)
	assert.LessOrEqual(t, inter.EstimatedAcceptanceRate, 0.35)
	assert.Equal(t, types.SamplingStrategyNone, inter.Sampling.Strategy)
	assert.Equal(t, 1, inter.Sampling.OriginalCount)
}

func TestFindConnectionRecommendation_IntermediaryKnowsTarget(t *testing.T) {
	r := newTestResolver(t)
	source, target, bridge := moderatePair()
	g := &stubGraph{
		connections: []types.ActorProfile{bridge},
		mutuals:     []types.ActorProfile{bridge},
	}

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, g)
	require.NoError(t, err)

	inter, ok := rec.(types.IntermediaryRecommendation)
	require.True(t, ok, "expected intermediary, got %s", rec.Type())
	assert.Equal(t, types.DirectionBridgeKnowsTarget, inter.Match.Direction)
	assert.Contains(t, inter.NextSteps[0], "introduce you")
}

func TestFindConnectionRecommendation_SamplesLargeNetworks(t *testing.T) {
	r := newTestResolver(t)
	source, target, bridge := moderatePair()

	connections := make([]types.ActorProfile, 0, 601)
	for i := 0; i < 600; i++ {
		connections = append(connections, types.ActorProfile{ID: fmt.Sprintf("filler-%03d", i)})
	}
	connections = append(connections, bridge)

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, &stubGraph{connections: connections})
	require.NoError(t, err)

	inter, ok := rec.(types.IntermediaryRecommendation)
	require.True(t, ok, "expected intermediary, got %s", rec.Type())
	assert.Equal(t, "bea", inter.Match.Intermediary.ID)
	assert.Equal(t, 601, inter.Sampling.OriginalCount)
	assert.LessOrEqual(t, inter.Sampling.SampledCount, 500)
	assert.Equal(t, types.SamplingStrategyRelevance, inter.Sampling.Strategy)
}

func TestFindConnectionRecommendation_UnrelatedProfiles(t *testing.T) {
	r := newTestResolver(t)
	source, target := unrelatedPair()
	g := graph.NewMemoryGraph()
	require.NoError(t, g.AddActor(*source))
	require.NoError(t, g.AddActor(*target))

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, g)
	require.NoError(t, err)
	assertWellFormed(t, rec)
	assert.Contains(t, []types.RecommendationType{types.RecommendationColdSimilarity, types.RecommendationNone}, rec.Type())

	none, ok := rec.(types.NoRecommendation)
	require.True(t, ok)
	assert.InDelta(t, 0.05, none.Confidence, 1e-9)
}

func TestFindConnectionRecommendation_ColdSimilarity(t *testing.T) {
	r := newTestResolver(t)
	// same industry and city only: 0.25 + 0.15 = 0.40, and no connections
	source := &types.ActorProfile{ID: "a", Location: "Austin, TX", Experience: []types.WorkExperience{{Company: "X", Industry: "Retail"}}}
	target := &types.ActorProfile{ID: "b", Location: "Austin, TX", Experience: []types.WorkExperience{{Company: "Y", Industry: "Retail"}}}

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, &stubGraph{})
	require.NoError(t, err)
	assertWellFormed(t, rec)

	cold, ok := rec.(types.ColdSimilarityRecommendation)
	require.True(t, ok, "expected cold_similarity, got %s", rec.Type())
	assert.InDelta(t, 0.40*0.6, cold.Confidence, 1e-9)
	assert.InDelta(t, acceptance.MapSimilarityToAcceptanceRate(0.40), cold.EstimatedAcceptanceRate, 1e-9)
}

func TestFindConnectionRecommendation_GraphFailuresFallThrough(t *testing.T) {
	source, target := similarPair()

	tests := []struct {
		name  string
		graph graph.Graph
	}{
		{"nil graph", nil},
		{"erroring graph", &stubGraph{err: errors.New("connection refused")}},
		{"panicking bfs", &stubGraph{panicOn: opBidirectionalBFS}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t)
			rec, err := r.FindConnectionRecommendation(context.Background(), source, target, tt.graph)
			require.NoError(t, err)
			assertWellFormed(t, rec)
			assert.Equal(t, types.RecommendationDirectSimilarity, rec.Type())
		})
	}
}

func TestFindConnectionRecommendation_PanickingConnectionsSkipsIntermediary(t *testing.T) {
	r := newTestResolver(t)
	source, target, _ := moderatePair()

	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, &stubGraph{panicOn: opGetConnections})
	require.NoError(t, err)
	assert.Equal(t, types.RecommendationColdSimilarity, rec.Type())
}

func TestFindConnectionRecommendation_GraphTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GraphTimeout = 20 * time.Millisecond
	r, err := New(cfg, nil)
	require.NoError(t, err)

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	source, target := similarPair()
	start := time.Now()
	rec, err := r.FindConnectionRecommendation(context.Background(), source, target, &stubGraph{block: block})
	require.NoError(t, err)
	assert.Equal(t, types.RecommendationDirectSimilarity, rec.Type())
	assert.Less(t, time.Since(start), time.Second)
}

func TestFindConnectionRecommendation_LogsDegradedGraph(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r, err := New(DefaultConfig(), zap.New(core))
	require.NoError(t, err)

	source, target := similarPair()
	_, err = r.FindConnectionRecommendation(context.Background(), source, target, &stubGraph{err: errors.New("down")})
	require.NoError(t, err)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.NotEmpty(t, warnings)
	fields := warnings[0].ContextMap()
	assert.Equal(t, opBidirectionalBFS, fields["operation"])
	assert.NotEmpty(t, fields["request_id"])
	assert.Equal(t, "dana", fields["source_id"])
}

func TestFindConnectionRecommendation_InvalidInput(t *testing.T) {
	r := newTestResolver(t)
	valid := &types.ActorProfile{ID: "a"}

	tests := []struct {
		name   string
		source *types.ActorProfile
		target *types.ActorProfile
		field  string
	}{
		{"nil source", nil, valid, "source"},
		{"nil target", valid, nil, "target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := r.FindConnectionRecommendation(context.Background(), tt.source, tt.target, graph.NewMemoryGraph())
			assert.Nil(t, rec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidActor)

			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestFindConnectionRecommendation_SameActor(t *testing.T) {
	r := newTestResolver(t)
	g := &stubGraph{path: &graph.PathResult{Path: []string{"a", "a"}, Probability: 1}}

	rec, err := r.FindConnectionRecommendation(context.Background(),
		&types.ActorProfile{ID: "a", Name: "Ada"}, &types.ActorProfile{ID: "a", Name: "Ada"}, g)
	require.NoError(t, err)
	assertWellFormed(t, rec)
	assert.Equal(t, types.RecommendationNone, rec.Type())
	assert.Contains(t, rec.Base().Reasoning, "same person")
	assert.Equal(t, DefaultConfig().NoneConfidence, rec.Base().Confidence)
}

func TestFindConnectionRecommendation_MissingIDUsesSimilarityOnly(t *testing.T) {
	r := newTestResolver(t)
	g := &stubGraph{
		path:  &graph.PathResult{Path: []string{"", "mo", "dana"}, Probability: 0.9, MutualConnections: 1},
		nodes: map[string]types.ActorProfile{"mo": {ID: "mo", Name: "Mo"}},
	}

	t.Run("similar pair still resolves directly", func(t *testing.T) {
		source, target := similarPair()
		source.ID = ""
		rec, err := r.FindConnectionRecommendation(context.Background(), source, target, g)
		require.NoError(t, err)
		assertWellFormed(t, rec)
		assert.Equal(t, types.RecommendationDirectSimilarity, rec.Type())
	})

	t.Run("unrelated pair skips the mutual path", func(t *testing.T) {
		source, target := unrelatedPair()
		target.ID = ""
		rec, err := r.FindConnectionRecommendation(context.Background(), source, target, g)
		require.NoError(t, err)
		assertWellFormed(t, rec)
		assert.Equal(t, types.RecommendationNone, rec.Type())
	})

	t.Run("both anonymous are not the same actor", func(t *testing.T) {
		rec, err := r.FindConnectionRecommendation(context.Background(),
			&types.ActorProfile{Name: "One"}, &types.ActorProfile{Name: "Two"}, g)
		require.NoError(t, err)
		assert.NotContains(t, rec.Base().Reasoning, "same person")
	})
}

func TestFindConnectionRecommendation_EmptyProfiles(t *testing.T) {
	r := newTestResolver(t)

	rec, err := r.FindConnectionRecommendation(context.Background(),
		&types.ActorProfile{ID: "x"}, &types.ActorProfile{ID: "y"}, &stubGraph{})
	require.NoError(t, err)
	assertWellFormed(t, rec)
	assert.Equal(t, types.RecommendationNone, rec.Type())
}

func TestComputeSimilarity_SymmetricAndMemoized(t *testing.T) {
	r := newTestResolver(t)
	source, target := similarPair()

	ab := r.ComputeSimilarity(source, target)
	ba := r.ComputeSimilarity(target, source)
	assert.InDelta(t, ab.Overall, ba.Overall, 1e-9)
	assert.Equal(t, 1, r.memo.Len())
}

func TestResolver_Weights(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, DefaultConfig().Weights, r.Weights())

	cfg := DefaultConfig()
	cfg.Weights.Industry, cfg.Weights.Skills = 0.30, 0.20
	custom, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.Weights, custom.Weights())
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Industry = 0.9

	_, err := New(cfg, nil)
	assert.Error(t, err)
}
