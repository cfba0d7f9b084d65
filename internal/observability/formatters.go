// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/connection-pathfinder/internal/similarity"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintWeights outputs the dimension weights a similarity score was built from.
func (p *Printer) PrintWeights(w similarity.Weights) {
	var sb strings.Builder
	for _, row := range []struct {
		label  string
		weight float64
	}{
		{"Industry", w.Industry},
		{"Skills", w.Skills},
		{"Education", w.Education},
		{"Location", w.Location},
		{"Companies", w.Companies},
	} {
		sb.WriteString(fmt.Sprintf("  %-10s %.2f\n", row.label, row.weight))
	}
	p.printBox("SIMILARITY WEIGHTS", strings.TrimRight(sb.String(), "\n"))
}

// PrintRecommendation outputs a human-readable summary of a recommendation.
func (p *Printer) PrintRecommendation(rec types.ConnectionRecommendation) {
	if rec == nil {
		return
	}

	base := rec.Base()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Strategy:    %s\n", rec.Type()))
	sb.WriteString(fmt.Sprintf("Confidence:  %.2f\n", base.Confidence))
	sb.WriteString(fmt.Sprintf("Acceptance:  %.0f%%\n", base.EstimatedAcceptanceRate*100))
	sb.WriteString("\n")

	switch r := rec.(type) {
	case types.MutualRecommendation:
		sb.WriteString(fmt.Sprintf("Path:        %s\n", strings.Join(r.Path, " → ")))
		sb.WriteString(fmt.Sprintf("Mutuals:     %d\n\n", r.MutualConnections))
	case types.IntermediaryRecommendation:
		sb.WriteString(fmt.Sprintf("Bridge:      %s\n", r.Match.Intermediary.DisplayName()))
		sb.WriteString(fmt.Sprintf("Strength:    %.2f (%.2f / %.2f)\n",
			r.Match.PathStrength, r.Match.SourceToIntermediary, r.Match.IntermediaryToTarget))
		sb.WriteString(fmt.Sprintf("Direction:   %s\n", r.Match.Direction))
		if r.Sampling.Strategy != types.SamplingStrategyNone {
			sb.WriteString(fmt.Sprintf("Sampled:     %d of %d (%s)\n",
				r.Sampling.SampledCount, r.Sampling.OriginalCount, r.Sampling.Strategy))
		}
		sb.WriteString("\n")
	case types.DirectSimilarityRecommendation:
		sb.WriteString(fmt.Sprintf("Similarity:  %.2f\n\n", r.Similarity.Overall))
	case types.ColdSimilarityRecommendation:
		sb.WriteString(fmt.Sprintf("Similarity:  %.2f\n\n", r.Similarity.Overall))
	}

	sb.WriteString(wrap(base.Reasoning, boxWidth-4))
	sb.WriteString("\n\nNext steps:\n")
	count := min(len(base.NextSteps), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", base.NextSteps[i]))
	}

	p.printBox("CONNECTION RECOMMENDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSimilarity outputs the per-dimension breakdown of a similarity result.
func (p *Printer) PrintSimilarity(a, b *types.ActorProfile, result types.SimilarityResult) {
	if a == nil || b == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s ↔ %s\n", a.DisplayName(), b.DisplayName()))
	sb.WriteString(fmt.Sprintf("Overall:     %.2f\n\n", result.Overall))

	bd := result.Breakdown
	for _, row := range []struct {
		label string
		score float64
	}{
		{"Industry", bd.Industry},
		{"Skills", bd.Skills},
		{"Education", bd.Education},
		{"Location", bd.Location},
		{"Companies", bd.Companies},
	} {
		sb.WriteString(fmt.Sprintf("  %-10s %.2f %s\n", row.label, row.score, bar(row.score)))
	}

	if len(result.SharedSkills) > 0 {
		skills := strings.Join(result.SharedSkills, ", ")
		if len(skills) > 40 {
			skills = skills[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nShared skills: %s\n", skills))
	}
	if len(result.SharedSchools) > 0 {
		sb.WriteString(fmt.Sprintf("Shared schools: %s\n", strings.Join(result.SharedSchools, ", ")))
	}
	if len(result.SharedCompanies) > 0 {
		sb.WriteString(fmt.Sprintf("Shared companies: %s\n", strings.Join(result.SharedCompanies, ", ")))
	}

	p.printBox("PROFILE SIMILARITY", strings.TrimSuffix(sb.String(), "\n"))
}

// bar renders a score in [0, 1] as a ten-cell bar
func bar(score float64) string {
	filled := int(types.Clamp01(score)*10 + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// wrap breaks text into lines no longer than width at word boundaries
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 && lineLen+1+len(w) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(w)
		lineLen += len(w)
	}
	return sb.String()
}
