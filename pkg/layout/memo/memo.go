// Package memo caches routed paths between anchor pairs.
//
// The backtracking router asks for the same (start, end) path many times
// while it explores different anchor assignments. A [Memoizer] keeps every
// path it has computed for a pair and hands back the shortest one that is
// still usable under the current set of taken cells; only when none is
// usable does it run a new search.
//
// A Memoizer is not safe for concurrent use.
package memo

import (
	"fmt"

	"github.com/matzehuels/boxroute/pkg/layout"
)

// PathCreator computes and validates paths for the current routing state.
type PathCreator interface {
	// CalculatePath searches for a new path from start to end.
	CalculatePath(start, end layout.Position) ([]layout.Position, bool)
	// ValidPath reports whether a previously computed path can still be used.
	ValidPath(path []layout.Position) bool
}

// Pair is a start and end anchor.
type Pair struct {
	Start layout.Position
	End   layout.Position
}

func (p Pair) String() string { return fmt.Sprintf("%v->%v", p.Start, p.End) }

// Stats counts memoizer activity.
type Stats struct {
	Hits     int // lookups answered from the cache
	Misses   int // lookups that ran a search
	Failures int // searches that found no path
	Pairs    int // distinct pairs cached
	Paths    int // paths cached over all pairs
}

// HitRate returns Hits as a percentage of all lookups.
func (s Stats) HitRate() float64 {
	if total := s.Hits + s.Misses; total > 0 {
		return float64(s.Hits) / float64(total) * 100
	}
	return 0
}

func (s Stats) String() string {
	return fmt.Sprintf("memo[pairs=%d, paths=%d, hits=%d, misses=%d, failures=%d, hitRate=%.1f%%]",
		s.Pairs, s.Paths, s.Hits, s.Misses, s.Failures, s.HitRate())
}

// Memoizer stores every path computed per anchor pair.
// The zero value is ready to use.
type Memoizer struct {
	paths map[Pair][][]layout.Position
	stats Stats
}

// New returns an empty Memoizer.
func New() *Memoizer {
	return &Memoizer{paths: make(map[Pair][][]layout.Position)}
}

// Path returns the shortest cached path for (start, end) that creator still
// accepts. Without one it asks creator for a new path and caches it. ok is
// false when no path exists.
//
// The returned slice is shared with the cache and must not be modified.
func (m *Memoizer) Path(start, end layout.Position, creator PathCreator) (path []layout.Position, ok bool) {
	if m.paths == nil {
		m.paths = make(map[Pair][][]layout.Position)
	}
	key := Pair{Start: start, End: end}

	var best []layout.Position
	for _, p := range m.paths[key] {
		if best != nil && len(p) >= len(best) {
			continue
		}
		if creator.ValidPath(p) {
			best = p
		}
	}
	if best != nil {
		m.stats.Hits++
		return best, true
	}

	m.stats.Misses++
	fresh, ok := creator.CalculatePath(start, end)
	if !ok || len(fresh) == 0 {
		m.stats.Failures++
		return nil, false
	}
	if len(m.paths[key]) == 0 {
		m.stats.Pairs++
	}
	m.paths[key] = append(m.paths[key], fresh)
	m.stats.Paths++
	return fresh, true
}

// ShortestOption looks up every pair and returns the pair and path with the
// fewest cells. The first pair wins ties. ok is false when no pair has a
// path.
func (m *Memoizer) ShortestOption(pairs []Pair, creator PathCreator) (Pair, []layout.Position, bool) {
	var (
		best    Pair
		bestLen int
		found   bool
	)
	for _, p := range pairs {
		path, ok := m.Path(p.Start, p.End, creator)
		if !ok {
			continue
		}
		if !found || len(path) < bestLen {
			best, bestLen, found = p, len(path), true
		}
	}
	if !found {
		return Pair{}, nil, false
	}
	path, ok := m.Path(best.Start, best.End, creator)
	return best, path, ok
}

// Stats returns a snapshot of the counters.
func (m *Memoizer) Stats() Stats { return m.stats }

// Reset drops every cached path and zeroes the counters.
func (m *Memoizer) Reset() {
	m.paths = make(map[Pair][][]layout.Position)
	m.stats = Stats{}
}
