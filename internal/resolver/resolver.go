// Package resolver picks the best available strategy for reaching a target actor from a
// source actor and attaches a confidence, an acceptance estimate, and next steps.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/connection-pathfinder/internal/acceptance"
	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/intermediary"
	"github.com/jonathan/connection-pathfinder/internal/metrics"
	"github.com/jonathan/connection-pathfinder/internal/sampling"
	"github.com/jonathan/connection-pathfinder/internal/similarity"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// Resolver runs the strategy cascade. A Resolver owns a similarity memo and is safe for
// concurrent use; independent resolutions share nothing else.
type Resolver struct {
	cfg    Config
	scorer *similarity.WeightedScorer
	memo   *similarity.Memo
	finder *intermediary.Finder
	logger *zap.Logger
}

// New creates a Resolver from cfg. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	scorer := similarity.NewDefaultScorer()
	if cfg.Weights != similarity.DefaultWeights() {
		var err error
		if scorer, err = similarity.NewWeightedScorer(cfg.Weights); err != nil {
			return nil, fmt.Errorf("failed to create similarity scorer: %w", err)
		}
	}
	memo, err := similarity.NewMemo(scorer, cfg.MemoSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create similarity memo: %w", err)
	}

	return &Resolver{
		cfg:    cfg,
		scorer: scorer,
		memo:   memo,
		finder: intermediary.NewFinder(memo, cfg.MinPathStrength, logger),
		logger: logger,
	}, nil
}

// Config returns the resolver's configuration.
func (r *Resolver) Config() Config {
	return r.cfg
}

// ComputeSimilarity returns the similarity breakdown for two profiles so a caller can
// explain a recommendation. Nil profiles score zero.
func (r *Resolver) ComputeSimilarity(a, b *types.ActorProfile) types.SimilarityResult {
	return r.memo.Compute(a, b)
}

// Weights returns the similarity weights the resolver scores with.
func (r *Resolver) Weights() similarity.Weights {
	return r.scorer.Weights()
}

// FindConnectionRecommendation resolves the best way for source to reach target through g.
// The only error it returns is an *InputError for a nil source or target; graph
// failures degrade the result instead. g may be nil, and actors without an ID are
// scored on similarity alone. A source equal to the target resolves to a "none"
// recommendation explaining why.
func (r *Resolver) FindConnectionRecommendation(ctx context.Context, source, target *types.ActorProfile, g graph.Graph) (types.ConnectionRecommendation, error) {
	if err := validateActor("source", source); err != nil {
		return nil, err
	}
	if err := validateActor("target", target); err != nil {
		return nil, err
	}

	start := time.Now()
	log := r.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("source_id", source.ID),
		zap.String("target_id", target.ID),
	)

	rec := r.resolve(ctx, source, target, newGuardedGraph(g, r.cfg.GraphTimeout, log), log)

	metrics.RecordRecommendation(string(rec.Type()))
	metrics.RecordResolveDuration(time.Since(start).Seconds())
	log.Debug("resolved connection recommendation",
		zap.String("type", string(rec.Type())),
		zap.Float64("confidence", rec.Base().Confidence),
		zap.Float64("acceptance_rate", rec.Base().EstimatedAcceptanceRate),
		zap.Duration("elapsed", time.Since(start)))
	return rec, nil
}

func validateActor(field string, p *types.ActorProfile) error {
	if p == nil {
		return &InputError{Field: field, Message: "profile is nil", Cause: ErrInvalidActor}
	}
	return nil
}

// resolve evaluates the strategies in order; the first that applies wins.
// Graph strategies need both IDs, so anonymous actors fall through to similarity.
func (r *Resolver) resolve(ctx context.Context, source, target *types.ActorProfile, g *guardedGraph, log *zap.Logger) types.ConnectionRecommendation {
	if source.ID != "" && source.ID == target.ID {
		log.Debug("source and target are the same actor")
		return r.sameActor(target)
	}

	sim := r.ComputeSimilarity(source, target)
	graphable := source.ID != "" && target.ID != ""
	if graphable {
		if rec := r.tryMutual(ctx, source, target, sim, g, log); rec != nil {
			return rec
		}
	} else {
		log.Debug("actor without id, skipping graph strategies")
	}

	if sim.Overall >= r.cfg.DirectThreshold {
		log.Debug("similarity clears direct threshold", zap.Float64("similarity", sim.Overall))
		return r.directSimilarity(target, sim)
	}

	if graphable && sim.Overall >= r.cfg.IntermediaryMinSimilarity {
		if rec := r.tryIntermediary(ctx, source, target, sim, g, log); rec != nil {
			return rec
		}
	}

	if sim.Overall > r.cfg.ColdFloor {
		return r.coldSimilarity(target, sim)
	}
	return r.noRecommendation(target, sim)
}

func (r *Resolver) tryMutual(ctx context.Context, source, target *types.ActorProfile, sim types.SimilarityResult, g *guardedGraph, log *zap.Logger) types.ConnectionRecommendation {
	path, err := g.BidirectionalBFS(ctx, source.ID, target.ID, r.cfg.HopLimit)
	if err != nil || path == nil || len(path.Path) < 2 {
		return nil
	}
	log.Debug("mutual path found", zap.Strings("path", path.Path), zap.Int("mutual_connections", path.MutualConnections))

	// name the first introducer when the graph knows it
	var introducer *types.ActorProfile
	if path.Hops() >= 2 {
		introducer, _ = g.GetNode(ctx, path.Path[1])
	}

	return types.MutualRecommendation{
		Assessment: types.NewAssessment(
			path.Probability,
			acceptance.MutualAcceptanceRate(sim.Overall, path.Probability),
			mutualReasoning(target, path, introducer),
			mutualNextSteps(target, path, introducer),
		),
		Path:              path.Path,
		MutualConnections: path.MutualConnections,
		PathProbability:   path.Probability,
	}
}

func (r *Resolver) directSimilarity(target *types.ActorProfile, sim types.SimilarityResult) types.ConnectionRecommendation {
	return types.DirectSimilarityRecommendation{
		Assessment: types.NewAssessment(
			sim.Overall,
			acceptance.MapSimilarityToAcceptanceRate(sim.Overall),
			directReasoning(target, sim),
			directNextSteps(target, sim),
		),
		Similarity: sim,
	}
}

func (r *Resolver) tryIntermediary(ctx context.Context, source, target *types.ActorProfile, sim types.SimilarityResult, g *guardedGraph, log *zap.Logger) types.ConnectionRecommendation {
	connections, err := g.GetConnections(ctx, source.ID)
	if err != nil || len(connections) == 0 {
		log.Debug("no direct connections available, skipping bridge search")
		return nil
	}

	sample := sampling.Sample(connections, target, r.cfg.Sampling)
	metrics.RecordSample(sample.Report.Strategy, sample.Report.SampledCount)
	if sample.Report.Strategy != types.SamplingStrategyNone {
		log.Debug("sampled connections for bridge search",
			zap.Int("original_count", sample.Report.OriginalCount),
			zap.Int("sampled_count", sample.Report.SampledCount),
			zap.String("strategy", sample.Report.Strategy))
	}

	match := r.finder.Find(ctx, source, target, sample.Connections, g)
	if match == nil {
		log.Debug("no bridge cleared the path strength bar", zap.Float64("min_path_strength", r.finder.MinPathStrength()))
		return nil
	}

	return types.IntermediaryRecommendation{
		Assessment: types.NewAssessment(
			match.PathStrength*r.cfg.IntermediaryConfidenceFactor,
			acceptance.IntermediaryAcceptanceRate(sim.Overall, match.PathStrength),
			intermediaryReasoning(target, match),
			intermediaryNextSteps(target, match),
		),
		Match:    *match,
		Sampling: sample.Report,
	}
}

func (r *Resolver) coldSimilarity(target *types.ActorProfile, sim types.SimilarityResult) types.ConnectionRecommendation {
	return types.ColdSimilarityRecommendation{
		Assessment: types.NewAssessment(
			sim.Overall*r.cfg.ColdConfidenceFactor,
			acceptance.MapSimilarityToAcceptanceRate(sim.Overall),
			coldReasoning(target, sim),
			coldNextSteps(target, sim),
		),
		Similarity: sim,
	}
}

func (r *Resolver) noRecommendation(target *types.ActorProfile, sim types.SimilarityResult) types.ConnectionRecommendation {
	return types.NoRecommendation{
		Assessment: types.NewAssessment(
			r.cfg.NoneConfidence,
			acceptance.MapSimilarityToAcceptanceRate(sim.Overall),
			noneReasoning(target),
			noneNextSteps(target),
		),
		Similarity: sim,
	}
}

func (r *Resolver) sameActor(target *types.ActorProfile) types.ConnectionRecommendation {
	return types.NoRecommendation{
		Assessment: types.NewAssessment(
			r.cfg.NoneConfidence,
			0,
			sameActorReasoning(target),
			sameActorNextSteps(),
		),
	}
}
