// Package intermediary finds the best bridge contact between a source actor and a target
// among the source's direct connections.
package intermediary

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/similarity"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// DefaultMinPathStrength is the weakest bridge worth recommending
const DefaultMinPathStrength = 0.35

// Finder ranks candidate bridges by path strength
type Finder struct {
	scorer          similarity.Scorer
	minPathStrength float64
	logger          *zap.Logger
}

// NewFinder creates a Finder. A nil logger disables logging.
func NewFinder(scorer similarity.Scorer, minPathStrength float64, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{
		scorer:          scorer,
		minPathStrength: minPathStrength,
		logger:          logger,
	}
}

// MinPathStrength returns the bar a candidate must clear.
func (f *Finder) MinPathStrength() float64 {
	return f.minPathStrength
}

// Candidate is a scored bridge before direction is known
type Candidate struct {
	Profile              types.ActorProfile
	SourceToIntermediary float64
	IntermediaryToTarget float64
	PathStrength         float64
}

// Rank scores every candidate except source and target themselves and returns the
// strongest one clearing the minimum path strength, or nil. Ties go to the smaller ID.
func (f *Finder) Rank(source, target *types.ActorProfile, candidates []types.ActorProfile) *Candidate {
	if source == nil || target == nil {
		return nil
	}

	var best *Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.ID == "" || c.ID == source.ID || c.ID == target.ID {
			continue
		}

		s2i := f.scorer.Compute(source, c).Overall
		i2t := f.scorer.Compute(c, target).Overall
		strength := similarity.PathStrength(s2i, i2t)
		if strength < f.minPathStrength {
			continue
		}

		if best == nil || strength > best.PathStrength || (strength == best.PathStrength && c.ID < best.Profile.ID) {
			best = &Candidate{
				Profile:              *c,
				SourceToIntermediary: s2i,
				IntermediaryToTarget: i2t,
				PathStrength:         strength,
			}
		}
	}
	return best
}

// Find ranks candidates and resolves the direction of the winning bridge with a single
// mutual-connection lookup. A failed lookup leaves the direction as ask_for_introduction.
func (f *Finder) Find(ctx context.Context, source, target *types.ActorProfile, candidates []types.ActorProfile, g graph.Graph) *types.IntermediaryMatch {
	best := f.Rank(source, target, candidates)
	if best == nil {
		return nil
	}

	direction := types.DirectionAskForIntroduction
	if g != nil {
		mutuals, err := g.GetMutualConnections(ctx, source.ID, target.ID)
		if err != nil {
			f.logger.Warn("mutual connection lookup failed, assuming introduction is needed",
				zap.String("source_id", source.ID),
				zap.String("target_id", target.ID),
				zap.Error(err))
		}
		for _, m := range mutuals {
			if m.ID == best.Profile.ID {
				direction = types.DirectionBridgeKnowsTarget
				break
			}
		}
	}

	return &types.IntermediaryMatch{
		Intermediary:         best.Profile,
		PathStrength:         best.PathStrength,
		Direction:            direction,
		SourceToIntermediary: best.SourceToIntermediary,
		IntermediaryToTarget: best.IntermediaryToTarget,
	}
}
