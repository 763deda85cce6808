package memo

import (
	"testing"

	"github.com/matzehuels/boxroute/pkg/layout"
)

// countingCreator draws straight L-shaped paths and records every call.
type countingCreator struct {
	calls   int
	blocked map[layout.Position]bool
	fail    map[Pair]bool
}

func (c *countingCreator) CalculatePath(start, end layout.Position) ([]layout.Position, bool) {
	c.calls++
	if c.fail[Pair{start, end}] {
		return nil, false
	}
	var path []layout.Position
	p := start
	path = append(path, p)
	for p.X != end.X {
		p.X += sign(end.X - p.X)
		path = append(path, p)
	}
	for p.Y != end.Y {
		p.Y += sign(end.Y - p.Y)
		path = append(path, p)
	}
	return path, true
}

func (c *countingCreator) ValidPath(path []layout.Position) bool {
	for _, p := range path {
		if c.blocked[p] {
			return false
		}
	}
	return true
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func TestPathCachesPerPair(t *testing.T) {
	m := New()
	c := &countingCreator{}
	a, b := layout.Pos(0, 0), layout.Pos(3, 2)

	first, ok := m.Path(a, b, c)
	if !ok || len(first) != 6 {
		t.Fatalf("Path = %v, %v", first, ok)
	}
	second, _ := m.Path(a, b, c)
	if c.calls != 1 {
		t.Errorf("creator called %d times, want 1", c.calls)
	}
	if &second[0] != &first[0] {
		t.Error("cached lookup returned a different path")
	}

	// The reverse pair is a different key.
	m.Path(b, a, c)
	if c.calls != 2 {
		t.Errorf("creator called %d times, want 2", c.calls)
	}

	s := m.Stats()
	if s.Hits != 1 || s.Misses != 2 || s.Pairs != 2 || s.Paths != 2 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestPathRevalidates(t *testing.T) {
	m := New()
	c := &countingCreator{blocked: map[layout.Position]bool{}}
	a, b := layout.Pos(0, 0), layout.Pos(4, 0)

	m.Path(a, b, c)
	c.blocked[layout.Pos(2, 0)] = true

	// The cached path is now invalid, so a new search runs.
	if _, ok := m.Path(a, b, c); !ok {
		t.Fatal("Path failed")
	}
	if c.calls != 2 {
		t.Errorf("creator called %d times, want 2", c.calls)
	}

	// Lifting the block makes both cached entries valid again.
	delete(c.blocked, layout.Pos(2, 0))
	m.Path(a, b, c)
	if c.calls != 2 {
		t.Errorf("creator called %d times after unblocking, want 2", c.calls)
	}
	if got := m.Stats().Paths; got != 2 {
		t.Errorf("Paths = %d, want 2", got)
	}
}

func TestPathPrefersShortestValid(t *testing.T) {
	m := New()
	a, b := layout.Pos(0, 0), layout.Pos(2, 0)
	long := []layout.Position{layout.Pos(0, 0), layout.Pos(0, 1), layout.Pos(1, 1), layout.Pos(2, 1), layout.Pos(2, 0)}
	short := []layout.Position{layout.Pos(0, 0), layout.Pos(1, 0), layout.Pos(2, 0)}
	m.paths = map[Pair][][]layout.Position{{a, b}: {long, short}}

	c := &countingCreator{blocked: map[layout.Position]bool{}}
	got, _ := m.Path(a, b, c)
	if len(got) != 3 {
		t.Errorf("got %v, want the short path", got)
	}

	c.blocked[layout.Pos(1, 0)] = true
	got, _ = m.Path(a, b, c)
	if len(got) != 5 {
		t.Errorf("got %v, want the long path", got)
	}
	if c.calls != 0 {
		t.Errorf("creator called %d times, want 0", c.calls)
	}
}

func TestPathFailure(t *testing.T) {
	m := New()
	a, b := layout.Pos(0, 0), layout.Pos(1, 1)
	c := &countingCreator{fail: map[Pair]bool{{a, b}: true}}

	if _, ok := m.Path(a, b, c); ok {
		t.Fatal("Path should fail")
	}
	// Failures are not cached.
	m.Path(a, b, c)
	if c.calls != 2 {
		t.Errorf("creator called %d times, want 2", c.calls)
	}
	if s := m.Stats(); s.Failures != 2 || s.Pairs != 0 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestShortestOption(t *testing.T) {
	m := New()
	origin := layout.Pos(5, 5)
	pairs := []Pair{
		{origin, layout.Pos(9, 9)},
		{origin, layout.Pos(5, 8)},
		{origin, layout.Pos(2, 5)},
		{origin, layout.Pos(5, 0)},
	}
	c := &countingCreator{fail: map[Pair]bool{pairs[1]: true}}

	pair, path, ok := m.ShortestOption(pairs, c)
	if !ok {
		t.Fatal("ShortestOption found nothing")
	}
	// (2,5) is 4 cells away, (5,0) 6 and (9,9) 9.
	if pair != pairs[2] || len(path) != 4 {
		t.Errorf("ShortestOption = %v (%d cells), want %v", pair, len(path), pairs[2])
	}
	if c.calls != 4 {
		t.Errorf("creator called %d times, want 4", c.calls)
	}
}

func TestShortestOptionTieKeepsFirst(t *testing.T) {
	m := &Memoizer{}
	origin := layout.Pos(5, 5)
	pairs := []Pair{{origin, layout.Pos(5, 7)}, {origin, layout.Pos(7, 5)}}

	pair, _, ok := m.ShortestOption(pairs, &countingCreator{})
	if !ok || pair != pairs[0] {
		t.Errorf("ShortestOption = %v, %v; want first pair", pair, ok)
	}
}

func TestShortestOptionNone(t *testing.T) {
	m := New()
	p := Pair{layout.Pos(0, 0), layout.Pos(1, 0)}
	if _, _, ok := m.ShortestOption([]Pair{p}, &countingCreator{fail: map[Pair]bool{p: true}}); ok {
		t.Error("ShortestOption should fail")
	}
	if _, _, ok := m.ShortestOption(nil, &countingCreator{}); ok {
		t.Error("ShortestOption with no pairs should fail")
	}
}

func TestReset(t *testing.T) {
	m := New()
	c := &countingCreator{}
	m.Path(layout.Pos(0, 0), layout.Pos(1, 0), c)
	m.Reset()
	if s := m.Stats(); s != (Stats{}) {
		t.Errorf("Stats after Reset = %+v", s)
	}
	m.Path(layout.Pos(0, 0), layout.Pos(1, 0), c)
	if c.calls != 2 {
		t.Errorf("creator called %d times, want 2", c.calls)
	}
}
