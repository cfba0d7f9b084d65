// Package sampling bounds the number of direct connections considered for bridge search.
package sampling

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

// Config controls when and how far a connection list is down-sampled
type Config struct {
	// MaxConnections is both the size above which sampling kicks in and the sampled size.
	MaxConnections int `json:"max_connections" mapstructure:"max_connections" validate:"gte=1"`
	// MinConnections is the smallest working set sampling may produce.
	MinConnections int `json:"min_connections" mapstructure:"min_connections" validate:"gte=1"`
}

// DefaultConfig returns the default sampling limits.
func DefaultConfig() Config {
	return Config{
		MaxConnections: 500,
		MinConnections: 50,
	}
}

// Validate checks that the limits are usable.
func (c Config) Validate() error {
	if c.MaxConnections < 1 {
		return fmt.Errorf("sampling: max_connections must be at least 1, got %d", c.MaxConnections)
	}
	if c.MinConnections < 1 {
		return fmt.Errorf("sampling: min_connections must be at least 1, got %d", c.MinConnections)
	}
	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("sampling: min_connections (%d) exceeds max_connections (%d)", c.MinConnections, c.MaxConnections)
	}
	return nil
}

// Result is the sampled working set with a report of what was done
type Result struct {
	Connections []types.ActorProfile
	Report      types.SampleReport
}

// Relevance points for cheap overlap signals between a connection and the target
const (
	sharedIndustryPoints = 2.0
	sharedCompanyPoints  = 2.0
	sharedSchoolPoints   = 1.0
	sameLocationPoints   = 1.0
	sharedSkillPoints    = 0.5
	maxSharedSkills      = 4
)

// Sample returns at most cfg.MaxConnections connections. When the list is larger, it keeps
// the connections with the most overlap with target (strategy "relevance"), or a hash-ordered
// slice when no target is given (strategy "hash"). Ties are broken by a hash of the actor ID,
// so the result only depends on the input. The input slice is not modified and the output
// preserves input order.
func Sample(connections []types.ActorProfile, target *types.ActorProfile, cfg Config) Result {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}

	original := len(connections)
	if original <= cfg.MaxConnections {
		return Result{
			Connections: connections,
			Report: types.SampleReport{
				OriginalCount: original,
				SampledCount:  original,
				Strategy:      types.SamplingStrategyNone,
			},
		}
	}

	size := SampleSize(original, cfg)

	strategy := types.SamplingStrategyHash
	var profile *targetProfile
	if target != nil {
		strategy = types.SamplingStrategyRelevance
		profile = newTargetProfile(target)
	}

	type ranked struct {
		index int
		score float64
		hash  uint64
	}
	order := make([]ranked, original)
	for i := range connections {
		r := ranked{index: i, hash: xxhash.Sum64String(connections[i].ID)}
		if profile != nil {
			r.score = profile.relevance(&connections[i])
		}
		order[i] = r
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].score != order[j].score {
			return order[i].score > order[j].score
		}
		if order[i].hash != order[j].hash {
			return order[i].hash < order[j].hash
		}
		return connections[order[i].index].ID < connections[order[j].index].ID
	})

	keep := make([]int, size)
	for i := 0; i < size; i++ {
		keep[i] = order[i].index
	}
	sort.Ints(keep)

	sampled := make([]types.ActorProfile, 0, size)
	for _, idx := range keep {
		sampled = append(sampled, connections[idx])
	}

	return Result{
		Connections: sampled,
		Report: types.SampleReport{
			OriginalCount: original,
			SampledCount:  len(sampled),
			Strategy:      strategy,
		},
	}
}

// SampleSize returns the working-set size for a list of n connections:
// never above MaxConnections or n, never below MinConnections unless n itself is smaller.
func SampleSize(n int, cfg Config) int {
	if n <= 0 {
		return 0
	}
	size := cfg.MaxConnections
	if size < cfg.MinConnections {
		size = cfg.MinConnections
	}
	if size > n {
		size = n
	}
	return size
}

// targetProfile holds the target's normalized attributes for repeated overlap checks
type targetProfile struct {
	industries map[string]bool
	companies  map[string]bool
	schools    map[string]bool
	skills     map[string]bool
	location   string
}

func newTargetProfile(p *types.ActorProfile) *targetProfile {
	t := &targetProfile{
		industries: make(map[string]bool),
		companies:  make(map[string]bool),
		schools:    make(map[string]bool),
		skills:     make(map[string]bool),
		location:   key(p.Location),
	}
	for _, exp := range p.Experience {
		addKey(t.industries, exp.Industry)
		addKey(t.companies, exp.Company)
		for _, s := range exp.Skills {
			addKey(t.skills, s)
		}
	}
	for _, edu := range p.Education {
		addKey(t.schools, edu.School)
	}
	for _, s := range p.Skills {
		addKey(t.skills, s.Name)
	}
	return t
}

// relevance scores a connection by cheap exact-match overlap with the target
func (t *targetProfile) relevance(c *types.ActorProfile) float64 {
	score := 0.0
	industryHit, companyHit := false, false
	sharedSkills := make(map[string]bool)

	for _, exp := range c.Experience {
		if !industryHit && t.industries[key(exp.Industry)] {
			industryHit = true
		}
		if !companyHit && t.companies[key(exp.Company)] {
			companyHit = true
		}
		for _, s := range exp.Skills {
			if k := key(s); t.skills[k] {
				sharedSkills[k] = true
			}
		}
	}
	for _, s := range c.Skills {
		if k := key(s.Name); t.skills[k] {
			sharedSkills[k] = true
		}
	}

	if industryHit {
		score += sharedIndustryPoints
	}
	if companyHit {
		score += sharedCompanyPoints
	}
	for _, edu := range c.Education {
		if t.schools[key(edu.School)] {
			score += sharedSchoolPoints
			break
		}
	}
	if t.location != "" && key(c.Location) == t.location {
		score += sameLocationPoints
	}

	n := len(sharedSkills)
	if n > maxSharedSkills {
		n = maxSharedSkills
	}
	score += sharedSkillPoints * float64(n)

	return score
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func addKey(set map[string]bool, s string) {
	if k := key(s); k != "" {
		set[k] = true
	}
}
