package similarity

import (
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

// DefaultMemoSize bounds the number of cached profile pairs per memo
const DefaultMemoSize = 4096

// pairKey identifies an unordered pair of profile fingerprints
type pairKey struct {
	lo, hi uint64
}

// Memo caches results of an underlying Scorer keyed by the content of both profiles.
// It is scoped to one owner (a resolver instance) and bounded by an LRU policy.
// It is safe for concurrent use.
type Memo struct {
	scorer Scorer
	cache  *lru.Cache
}

// NewMemo wraps scorer with a bounded memo holding up to size pairs.
func NewMemo(scorer Scorer, size int) (*Memo, error) {
	if size <= 0 {
		size = DefaultMemoSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Memo{scorer: scorer, cache: cache}, nil
}

// Compute returns the cached result for the pair, computing it on a miss.
func (m *Memo) Compute(a, b *types.ActorProfile) types.SimilarityResult {
	if a == nil || b == nil {
		return m.scorer.Compute(a, b)
	}

	key := newPairKey(Fingerprint(a), Fingerprint(b))
	if cached, ok := m.cache.Get(key); ok {
		if result, ok := cached.(types.SimilarityResult); ok {
			return cloneResult(result)
		}
	}

	result := m.scorer.Compute(a, b)
	m.cache.Add(key, cloneResult(result))
	return result
}

// cloneResult copies the shared-attribute slices so callers never alias cached entries
func cloneResult(r types.SimilarityResult) types.SimilarityResult {
	r.SharedSkills = slices.Clone(r.SharedSkills)
	r.SharedSchools = slices.Clone(r.SharedSchools)
	r.SharedCompanies = slices.Clone(r.SharedCompanies)
	return r
}

// Len returns the number of cached pairs.
func (m *Memo) Len() int {
	return m.cache.Len()
}

func newPairKey(x, y uint64) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{lo: x, hi: y}
}

// Fingerprint hashes every profile field that affects similarity.
// Each list is prefixed with its length so values cannot shift record boundaries.
func Fingerprint(p *types.ActorProfile) uint64 {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	writeLen := func(n int) {
		write(strconv.Itoa(n))
	}

	write(p.ID)
	write(p.Location)
	writeLen(len(p.Experience))
	for _, exp := range p.Experience {
		write(exp.Company)
		write(exp.Industry)
		writeLen(len(exp.Skills))
		for _, s := range exp.Skills {
			write(s)
		}
	}
	writeLen(len(p.Education))
	for _, edu := range p.Education {
		write(edu.School)
	}
	writeLen(len(p.Skills))
	for _, s := range p.Skills {
		write(s.Name)
	}
	return d.Sum64()
}
