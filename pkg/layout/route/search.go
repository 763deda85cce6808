package route

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/layout/memo"
	"github.com/matzehuels/boxroute/pkg/layout/pathfind"
	"github.com/matzehuels/boxroute/pkg/observability"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// search holds the state shared by one routing call.
type search struct {
	ctx        context.Context
	constraint layout.LayoutConstraint
	blocks     []layout.BlockDisplay
	byName     map[string]int
	finder     *pathfind.Finder
	memo       *memo.Memoizer
	logger     *log.Logger

	maxAttempts int
	attempts    int
	exhausted   bool
	err         error
}

func (s *search) has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s *search) block(name string) layout.BlockDisplay {
	return s.blocks[s.byName[name]]
}

// stopped reports whether the search must unwind, counting one attempt.
func (s *search) stopped() bool {
	if s.err != nil || s.exhausted {
		return true
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return true
	}
	s.attempts++
	if s.attempts > s.maxAttempts {
		s.attempts = s.maxAttempts
		s.exhausted = true
		return true
	}
	return false
}

// =============================================================================
// Strict
// =============================================================================

// solve routes conns[0] and recurses on the rest, trying every anchor
// subset for conns[0] until the remainder succeeds. blocked is never
// modified; each candidate path is committed to a fresh extension.
func (s *search) solve(conns []spec.ConnectionSpec, blocked *layout.PositionSet, depth int) ([]routed, bool) {
	if len(conns) == 0 {
		return nil, true
	}
	c := conns[0]

	starts := ConnectionPoints(s.block(c.Start), blocked)
	ends := ConnectionPoints(s.block(c.End), blocked)
	creator := s.creator(c, blocked)

	for k := 0; ; k++ {
		if s.stopped() {
			return nil, false
		}
		curStarts, curEnds, ok := dropCandidates(starts, ends, k)
		if !ok {
			return nil, false
		}
		_, path, found := s.shortest(pairs(curStarts, curEnds), creator)
		if !found || s.err != nil {
			return nil, false
		}

		rest, ok := s.solve(conns[1:], blocked.Extend(path), depth+1)
		if ok {
			return append([]routed{{conn: c, path: path}}, rest...), true
		}
		if s.err != nil || s.exhausted {
			return nil, false
		}
		s.logger.Debug("backtracking", "connection", c.String(), "depth", depth, "attempt", k,
			"starts", len(curStarts), "ends", len(curEnds))
		observability.Route().OnBacktrack(s.ctx, depth, k)
	}
}

// dropCandidates reads k as a mixed-radix counter and removes one element
// per digit, alternating between starts and ends. ok is false once either
// set runs empty.
func dropCandidates(starts, ends []layout.Position, k int) (s, e []layout.Position, ok bool) {
	s, e = slices.Clone(starts), slices.Clone(ends)
	fromStart := true
	for k > 0 {
		target := &s
		if !fromStart {
			target = &e
		}
		n := len(*target)
		if n == 0 {
			return nil, nil, false
		}
		i := k % n
		*target = slices.Delete(*target, i, i+1)
		k /= n
		fromStart = !fromStart
	}
	if len(s) == 0 || len(e) == 0 {
		return nil, nil, false
	}
	return s, e, true
}

// =============================================================================
// Permissive
// =============================================================================

// greedy routes connections in order without backtracking. Each block keeps an
// open anchor list that grows with alternates around every used anchor. It
// stops at the first connection without a path and returns it with the rest.
func (s *search) greedy(conns []spec.ConnectionSpec) ([]routed, []spec.ConnectionSpec) {
	open := make(map[string][]layout.Position, len(s.blocks))
	for _, b := range s.blocks {
		open[b.Name] = CoreConnectors(b)
	}

	var blocked *layout.PositionSet
	var out []routed
	for i, c := range conns {
		if s.stopped() {
			return out, conns[i:]
		}
		starts := free(open[c.Start], blocked)
		ends := free(open[c.End], blocked)

		_, path, found := s.shortest(pairs(starts, ends), s.creator(c, blocked))
		if s.err != nil {
			return out, conns[i:]
		}
		if !found {
			s.logger.Debug("no path", "connection", c.String(), "starts", len(starts), "ends", len(ends))
			return out, conns[i:]
		}
		blocked = blocked.Extend(path)
		out = append(out, routed{conn: c, path: path})

		// The start list is updated before the end list is read so that a
		// self-connection keeps the alternates of both ends.
		first, last := path[0], path[len(path)-1]
		open[c.Start] = append(free(open[c.Start], blocked), Alternates(first, s.block(c.Start))...)
		open[c.End] = append(free(open[c.End], blocked), Alternates(last, s.block(c.End))...)
	}
	return out, nil
}

func free(ps []layout.Position, blocked *layout.PositionSet) []layout.Position {
	var out []layout.Position
	for _, p := range ps {
		if !blocked.Contains(p) && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// Path lookup
// =============================================================================

// pairs returns every start-end combination, start major, without pairs
// whose points coincide.
func pairs(starts, ends []layout.Position) []memo.Pair {
	out := make([]memo.Pair, 0, len(starts)*len(ends))
	for _, a := range starts {
		for _, b := range ends {
			if a != b {
				out = append(out, memo.Pair{Start: a, End: b})
			}
		}
	}
	return out
}

func (s *search) shortest(ps []memo.Pair, c *creator) (memo.Pair, []layout.Position, bool) {
	before := s.memo.Stats()
	pair, path, ok := s.memo.ShortestOption(ps, c)
	after := s.memo.Stats()
	hooks := observability.Route()
	for range after.Hits - before.Hits {
		hooks.OnPathCache(s.ctx, true)
	}
	for range after.Misses - before.Misses {
		hooks.OnPathCache(s.ctx, false)
	}
	return pair, path, ok
}

func (s *search) creator(c spec.ConnectionSpec, blocked *layout.PositionSet) *creator {
	return &creator{
		search: s,
		grid:   pathfind.NewGrid(s.constraint, s.blocks, c.Start, c.End, blocked),
	}
}

// creator adapts a grid search to [memo.PathCreator].
type creator struct {
	search *search
	grid   *pathfind.Grid
}

// CalculatePath runs one search. A context error is recorded on the search
// so the caller unwinds instead of treating the pair as unreachable.
func (c *creator) CalculatePath(start, end layout.Position) ([]layout.Position, bool) {
	s := c.search
	if s.err != nil {
		return nil, false
	}
	path, err := s.finder.Find(s.ctx, c.grid, start, end)
	if err != nil {
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			s.err = ctxErr
		}
		return nil, false
	}
	return path, true
}

// ValidPath accepts a cached path when it lies on the grid, touches no taken
// cell and every cell between its ends passes [pathfind.Grid.Clear]. Paths
// cached for another layout fail the last check.
func (c *creator) ValidPath(path []layout.Position) bool {
	if c.grid.Blocked.ContainsAny(path) {
		return false
	}
	for i, p := range path {
		if !c.grid.InBounds(p) {
			return false
		}
		if i > 0 && i < len(path)-1 && !c.grid.Clear(p) {
			return false
		}
	}
	return true
}
