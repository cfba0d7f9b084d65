package resolver

import (
	"fmt"
	"strings"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// maxListed caps how many shared items a message names
const maxListed = 3

func mutualReasoning(target *types.ActorProfile, path *graph.PathResult, introducer *types.ActorProfile) string {
	hops := path.Hops()
	if hops == 1 {
		return fmt.Sprintf("You are already connected to %s.", target.DisplayName())
	}

	via := "a chain of contacts"
	if introducer != nil {
		via = introducer.DisplayName()
	} else if hops == 2 {
		via = path.Path[1]
	}

	msg := fmt.Sprintf("%s is %d hops away through %s.", target.DisplayName(), hops, via)
	if path.MutualConnections > 1 {
		msg += fmt.Sprintf(" You share %d mutual connections.", path.MutualConnections)
	}
	return msg
}

func mutualNextSteps(target *types.ActorProfile, path *graph.PathResult, introducer *types.ActorProfile) []string {
	if path.Hops() == 1 {
		return []string{
			fmt.Sprintf("Message %s directly.", target.DisplayName()),
		}
	}

	name := path.Path[1]
	if introducer != nil {
		name = introducer.DisplayName()
	}
	steps := []string{
		fmt.Sprintf("Ask %s for a warm introduction to %s.", name, target.DisplayName()),
		"Explain briefly why you want to connect so the introduction is easy to forward.",
	}
	if path.Hops() > 2 {
		steps = append(steps, "Confirm each contact along the path is willing to pass the introduction on.")
	}
	return steps
}

func directReasoning(target *types.ActorProfile, sim types.SimilarityResult) string {
	return fmt.Sprintf("No mutual path to %s was found, but your profiles are highly similar (%.0f%%)%s.",
		target.DisplayName(), sim.Overall*100, commonGround(sim))
}

func directNextSteps(target *types.ActorProfile, sim types.SimilarityResult) []string {
	return []string{
		fmt.Sprintf("Send %s a personalized connection request.", target.DisplayName()),
		fmt.Sprintf("Open with your strongest shared ground: %s.", strongestDimension(sim)),
	}
}

func intermediaryReasoning(target *types.ActorProfile, match *types.IntermediaryMatch) string {
	bridge := match.Intermediary.DisplayName()
	if match.Direction == types.DirectionBridgeKnowsTarget {
		return fmt.Sprintf("%s is connected to both you and %s and is well placed to introduce you (path strength %.2f).",
			bridge, target.DisplayName(), match.PathStrength)
	}
	return fmt.Sprintf("%s is your best bridge toward %s (path strength %.2f), though they are not yet connected.",
		bridge, target.DisplayName(), match.PathStrength)
}

func intermediaryNextSteps(target *types.ActorProfile, match *types.IntermediaryMatch) []string {
	bridge := match.Intermediary.DisplayName()
	if match.Direction == types.DirectionBridgeKnowsTarget {
		return []string{
			fmt.Sprintf("Ask %s to introduce you to %s.", bridge, target.DisplayName()),
			"Share a short blurb they can forward.",
		}
	}
	return []string{
		fmt.Sprintf("Catch up with %s and mention your interest in meeting %s.", bridge, target.DisplayName()),
		fmt.Sprintf("Ask whether %s knows anyone close to %s.", bridge, target.DisplayName()),
	}
}

func coldReasoning(target *types.ActorProfile, sim types.SimilarityResult) string {
	return fmt.Sprintf("There is no warm path to %s, but you have some common ground (%.0f%% similar)%s.",
		target.DisplayName(), sim.Overall*100, commonGround(sim))
}

func coldNextSteps(target *types.ActorProfile, sim types.SimilarityResult) []string {
	return []string{
		fmt.Sprintf("Engage with %s's posts before reaching out.", target.DisplayName()),
		fmt.Sprintf("Send a short note that leads with %s.", strongestDimension(sim)),
	}
}

func noneReasoning(target *types.ActorProfile) string {
	return fmt.Sprintf("Nothing currently connects you to %s: no mutual path, no strong bridge, and little profile overlap.",
		target.DisplayName())
}

func noneNextSteps(target *types.ActorProfile) []string {
	return []string{
		fmt.Sprintf("Follow %s and engage with their content first.", target.DisplayName()),
		"Grow your network in their industry to create a future path.",
	}
}

func sameActorReasoning(target *types.ActorProfile) string {
	return fmt.Sprintf("Source and target are the same person (%s), so there is no one to reach.", target.DisplayName())
}

func sameActorNextSteps() []string {
	return []string{"Pick a different target to get a recommendation."}
}

// commonGround names up to maxListed shared items as a trailing clause, or returns "".
func commonGround(sim types.SimilarityResult) string {
	var parts []string
	if len(sim.SharedSchools) > 0 {
		parts = append(parts, "you both attended "+listed(sim.SharedSchools))
	}
	if len(sim.SharedCompanies) > 0 {
		parts = append(parts, "you both worked at "+listed(sim.SharedCompanies))
	}
	if len(sim.SharedSkills) > 0 {
		parts = append(parts, "you share skills in "+listed(sim.SharedSkills))
	}
	if len(parts) == 0 {
		return ""
	}
	return ": " + strings.Join(parts, "; ")
}

func listed(items []string) string {
	if len(items) > maxListed {
		return strings.Join(items[:maxListed], ", ") + fmt.Sprintf(" and %d more", len(items)-maxListed)
	}
	return strings.Join(items, ", ")
}

// strongestDimension names the highest-scoring breakdown dimension.
func strongestDimension(sim types.SimilarityResult) string {
	b := sim.Breakdown
	dims := []struct {
		label string
		score float64
	}{
		{"your shared industry", b.Industry},
		{"your overlapping skills", b.Skills},
		{"your shared school", b.Education},
		{"being in the same area", b.Location},
		{"your shared employers", b.Companies},
	}

	best := dims[0]
	for _, d := range dims[1:] {
		if d.score > best.score {
			best = d
		}
	}
	if best.score == 0 {
		return "a specific reason for reaching out"
	}
	return best.label
}
