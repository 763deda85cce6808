package route

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/layout/memo"
	"github.com/matzehuels/boxroute/pkg/spec"
)

func box(name string, x, y, w, h int) layout.BlockDisplay {
	return layout.BlockDisplay{Name: name, Pos: layout.Pos(x, y), Size: layout.Size{Width: w, Height: h}}
}

func conn(start, end string) spec.ConnectionSpec {
	return spec.ConnectionSpec{Start: start, End: end}
}

// tinyGrid stacks a over b on a 9x9 grid. Each block has three reachable
// anchors: its top or bottom midpoint touches the grid edge.
func tinyGrid() ([]layout.BlockDisplay, layout.LayoutConstraint) {
	c := layout.DefaultConstraint()
	c.MaxWidth, c.MaxHeight = 8, 8
	return []layout.BlockDisplay{box("a", 2, 0, 5, 3), box("b", 2, 6, 5, 3)}, c
}

func assertDisjoint(t *testing.T, conns []layout.ConnectionDisplay) {
	t.Helper()
	owner := make(map[layout.Position]int)
	for i, c := range conns {
		for _, p := range c.Path {
			if j, taken := owner[p]; taken {
				t.Errorf("connections %d and %d share %v", j, i, p)
			}
			owner[p] = i
		}
	}
}

func TestRouteStraightDown(t *testing.T) {
	blocks := layout.SizeBlocks([]spec.BlockSpec{{Name: "A", Text: "A"}, {Name: "B", Text: "B"}}, layout.DefaultBlockConstraint())
	layout.VerticalStack{ScreenWidth: 50, Spacing: 5}.Place(blocks, nil)

	res, err := New(Strict, layout.DefaultConstraint()).Route(context.Background(), blocks, []spec.ConnectionSpec{conn("A", "B")})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(res.Connections) != 1 {
		t.Fatalf("got %d connections, want 1", len(res.Connections))
	}
	d := res.Connections[0]

	want := []layout.ConnectionPart{{Start: layout.Pos(25, 2), End: layout.Pos(25, 8), Glyph: '|'}}
	if diff := cmp.Diff(want, d.Parts); diff != "" {
		t.Errorf("Parts mismatch (-want +got):\n%s", diff)
	}
	if d.StartGlyph != '#' || d.EndGlyph != '#' {
		t.Errorf("glyphs = %c/%c, want #/#", d.StartGlyph, d.EndGlyph)
	}
	if res.Attempts != 1 || res.Exhausted {
		t.Errorf("Attempts = %d, Exhausted = %v", res.Attempts, res.Exhausted)
	}
	if !res.Complete(1) {
		t.Error("Complete(1) = false")
	}
}

func TestRouteSelfConnection(t *testing.T) {
	blocks := []layout.BlockDisplay{box("a", 22, 0, 6, 3)}
	res, err := New(Strict, layout.DefaultConstraint()).Route(context.Background(), blocks, []spec.ConnectionSpec{conn("a", "a")})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(res.Connections) != 1 {
		t.Fatalf("got %d connections, want 1", len(res.Connections))
	}
	path := res.Connections[0].Path
	first, last := path[0], path[len(path)-1]
	if first == last {
		t.Fatal("self-connection starts and ends on the same anchor")
	}
	// Right anchor around the bottom-right corner to the bottom anchor.
	if first != layout.Pos(27, 1) || last != layout.Pos(25, 2) || len(path) != 8 {
		t.Errorf("path = %v", path)
	}
	for _, p := range path[1 : len(path)-1] {
		if blocks[0].Contains(p) {
			t.Errorf("path enters the block at %v", p)
		}
	}
}

func TestRouteDisjoint(t *testing.T) {
	blocks, c := tinyGrid()
	conns := []spec.ConnectionSpec{conn("a", "b"), conn("a", "b"), conn("a", "b")}

	res, err := New(Strict, c).Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(res.Connections) != 3 {
		t.Fatalf("got %d connections, want 3", len(res.Connections))
	}
	assertDisjoint(t, res.Connections)

	// Straight down the middle first, then the left and right columns.
	if got := res.Connections[0].Len(); got != 5 {
		t.Errorf("first path has %d cells, want 5", got)
	}
	if res.Connections[1].Path[0] != layout.Pos(2, 1) || res.Connections[2].Path[0] != layout.Pos(6, 1) {
		t.Errorf("anchors = %v, %v", res.Connections[1].Path[0], res.Connections[2].Path[0])
	}
}

// assertOutsideBlocks fails when a path cell between the ends lies in a block.
func assertOutsideBlocks(t *testing.T, blocks []layout.BlockDisplay, conns []layout.ConnectionDisplay) {
	t.Helper()
	for i, c := range conns {
		for _, p := range c.Path[1 : len(c.Path)-1] {
			for _, b := range blocks {
				if b.Contains(p) {
					t.Errorf("connection %d crosses block %s at %v", i, b.Name, p)
				}
			}
		}
	}
}

// corridor places a over b with c and d between them, leaving a two-column
// corridor from a's bottom to b's top. The straight a-b path fills the
// corridor and cuts c off from d; going around c on the left keeps it free.
func corridor() ([]layout.BlockDisplay, layout.LayoutConstraint) {
	c := layout.DefaultConstraint()
	c.MaxWidth, c.MaxHeight = 12, 12
	return []layout.BlockDisplay{
		box("a", 4, 0, 5, 3),
		box("b", 4, 10, 5, 3),
		box("c", 2, 5, 4, 3),
		box("d", 8, 5, 3, 3),
	}, c
}

func TestRouteBacktracks(t *testing.T) {
	blocks, c := corridor()
	conns := []spec.ConnectionSpec{conn("a", "b"), conn("c", "d")}

	res, err := New(Strict, c).Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !res.Complete(len(conns)) || len(res.Unrouted) != 0 {
		t.Fatalf("routed %d of %d, unrouted %v", len(res.Connections), len(conns), res.Unrouted)
	}
	if res.Attempts <= len(conns) {
		t.Errorf("Attempts = %d, want more than %d", res.Attempts, len(conns))
	}
	assertDisjoint(t, res.Connections)
	assertOutsideBlocks(t, blocks, res.Connections)

	for _, p := range res.Connections[0].Path {
		if p.X == 6 && p.Y > 2 && p.Y < 10 {
			t.Errorf("a-b path runs through the corridor at %v", p)
		}
	}
}

func TestRouteStrictAllOrNothing(t *testing.T) {
	blocks, c := tinyGrid()
	conns := []spec.ConnectionSpec{conn("a", "b"), conn("a", "b"), conn("a", "b"), conn("a", "b")}

	r := New(Strict, c)
	r.MaxAttempts = 2000
	res, err := r.Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(res.Connections) != 0 {
		t.Errorf("got %d connections, want none", len(res.Connections))
	}
	if len(res.Unrouted) != 4 {
		t.Errorf("Unrouted = %d, want 4", len(res.Unrouted))
	}
	if res.Attempts <= len(conns) {
		t.Errorf("Attempts = %d, want backtracking", res.Attempts)
	}
	if res.Memo.Hits == 0 {
		t.Error("backtracking should reuse cached paths")
	}
}

func TestRouteExhausted(t *testing.T) {
	blocks, c := tinyGrid()
	conns := []spec.ConnectionSpec{conn("a", "b"), conn("a", "b"), conn("a", "b"), conn("a", "b")}

	r := New(Strict, c)
	r.MaxAttempts = 5
	res, err := r.Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !res.Exhausted || res.Attempts != 5 {
		t.Errorf("Exhausted = %v, Attempts = %d", res.Exhausted, res.Attempts)
	}
	if len(res.Connections) != 0 {
		t.Errorf("exhausted search returned %d connections", len(res.Connections))
	}
}

// crossing places a over b spanning the full grid height, with d and c on
// either side, so any a-b path separates d from c.
func crossing() ([]layout.BlockDisplay, layout.LayoutConstraint, []spec.ConnectionSpec) {
	c := layout.DefaultConstraint()
	c.MaxHeight = 22
	blocks := []layout.BlockDisplay{
		box("a", 20, 0, 5, 3),
		box("b", 20, 20, 5, 3),
		box("d", 0, 10, 5, 3),
		box("c", 40, 10, 5, 3),
	}
	return blocks, c, []spec.ConnectionSpec{conn("a", "b"), conn("d", "c")}
}

func TestRoutePermissiveCrosses(t *testing.T) {
	blocks, c, conns := crossing()

	res, err := New(Permissive, c).Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(res.Connections) != 2 {
		t.Fatalf("got %d connections, want 2", len(res.Connections))
	}
	shared := 0
	first := (*layout.PositionSet)(nil).Extend(res.Connections[0].Path)
	for _, p := range res.Connections[1].Path {
		if first.Contains(p) {
			shared++
		}
	}
	if shared != 1 {
		t.Errorf("paths share %d cells, want 1", shared)
	}
}

func TestRouteStrictRefusesCrossing(t *testing.T) {
	blocks, c, conns := crossing()

	r := New(Strict, c)
	r.MaxAttempts = 200
	res, err := r.Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(res.Connections) != 0 {
		t.Errorf("strict routing produced %d crossing connections", len(res.Connections))
	}
}

func TestRoutePermissiveStopsAtFailure(t *testing.T) {
	blocks, c := tinyGrid()
	conns := []spec.ConnectionSpec{conn("a", "b"), conn("a", "b"), conn("a", "b"), conn("a", "b"), conn("b", "a")}

	res, err := New(Permissive, c).Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(res.Connections) != 3 || len(res.Unrouted) != 2 {
		t.Errorf("routed %d, unrouted %d; want 3 and 2", len(res.Connections), len(res.Unrouted))
	}
	assertDisjoint(t, res.Connections)
}

func TestRouteSkipsUnknownBlocks(t *testing.T) {
	blocks, c := tinyGrid()
	conns := []spec.ConnectionSpec{conn("a", "zz"), conn("a", "b")}

	res, err := New(Strict, c).Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].End != "zz" {
		t.Errorf("Skipped = %v", res.Skipped)
	}
	if len(res.Connections) != 1 || !res.Complete(len(conns)) {
		t.Errorf("got %d connections", len(res.Connections))
	}
}

func TestRouteCanceled(t *testing.T) {
	blocks, c := tinyGrid()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Strict, c).Route(ctx, blocks, []spec.ConnectionSpec{conn("a", "b")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRouteDeadlineDuringSearch(t *testing.T) {
	// b is closed in by a ring of obstacles, so every search explores the
	// whole grid before giving up.
	c := layout.DefaultConstraint()
	c.MaxWidth, c.MaxHeight = 1000, 1000
	blocks := []layout.BlockDisplay{
		box("a", 10, 10, 5, 3),
		box("b", 500, 500, 5, 3),
		box("top", 498, 498, 9, 1),
		box("bottom", 498, 504, 9, 1),
		box("left", 498, 498, 1, 7),
		box("right", 506, 498, 1, 7),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	begin := time.Now()
	res, err := New(Strict, c).Route(ctx, blocks, []spec.ConnectionSpec{conn("a", "b")})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(begin); elapsed > 5*time.Second {
		t.Errorf("Route ran %v past a 20ms deadline", elapsed)
	}
	if len(res.Connections) != 0 || len(res.Unrouted) != 0 {
		t.Errorf("canceled route reported %d routed, %d unrouted", len(res.Connections), len(res.Unrouted))
	}
}

func TestRouteSharedMemoNewLayout(t *testing.T) {
	c := layout.DefaultConstraint()
	c.MaxWidth, c.MaxHeight = 12, 12
	a, b := box("a", 2, 0, 5, 3), box("b", 2, 10, 5, 3)
	conns := []spec.ConnectionSpec{conn("a", "b")}

	r := New(Strict, c)
	r.Memo = memo.New()
	if _, err := r.Route(context.Background(), []layout.BlockDisplay{a, b}, conns); err != nil {
		t.Fatal(err)
	}

	// m now sits on the straight path cached by the first run.
	blocks := []layout.BlockDisplay{a, b, box("m", 3, 5, 3, 3)}
	res, err := r.Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Connections) != 1 {
		t.Fatalf("got %d connections, want 1", len(res.Connections))
	}
	assertOutsideBlocks(t, blocks, res.Connections)
	if res.Memo.Misses == 0 {
		t.Error("the new layout should search again")
	}
}

func TestRouteSharedMemo(t *testing.T) {
	blocks, c := tinyGrid()
	r := New(Strict, c)
	r.Memo = memo.New()
	conns := []spec.ConnectionSpec{conn("a", "b")}

	first, err := r.Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Route(context.Background(), blocks, conns)
	if err != nil {
		t.Fatal(err)
	}
	// Only pairs without a path are searched again.
	if second.Searches >= first.Searches || second.Memo.Hits == 0 {
		t.Errorf("second run: %d searches (first %d), %d hits", second.Searches, first.Searches, second.Memo.Hits)
	}
	if diff := cmp.Diff(first.Connections, second.Connections); diff != "" {
		t.Errorf("cached run changed the layout (-first +second):\n%s", diff)
	}
}

func TestDropCandidates(t *testing.T) {
	p := func(xs ...int) []layout.Position {
		out := make([]layout.Position, len(xs))
		for i, x := range xs {
			out[i] = layout.Pos(x, 0)
		}
		return out
	}
	starts, ends := p(0, 1, 2), p(10, 11)

	tests := []struct {
		k          int
		wantStarts []layout.Position
		wantEnds   []layout.Position
		ok         bool
	}{
		{0, p(0, 1, 2), p(10, 11), true},
		{1, p(0, 2), p(10, 11), true},
		{2, p(0, 1), p(10, 11), true},
		{3, p(1, 2), p(10), true}, // 3%3=0 from starts, then 1%2=1 from ends
		{4, p(0, 2), p(10), true},
		{6, p(1), p(11), true}, // 6%3=0, 2%2=0, 1%2=1
		{12, nil, nil, false},  // runs out of ends
	}
	for _, tt := range tests {
		s, e, ok := dropCandidates(starts, ends, tt.k)
		if ok != tt.ok {
			t.Errorf("k=%d: ok = %v, want %v", tt.k, ok, tt.ok)
			continue
		}
		if diff := cmp.Diff(tt.wantStarts, s); diff != "" {
			t.Errorf("k=%d starts (-want +got):\n%s", tt.k, diff)
		}
		if diff := cmp.Diff(tt.wantEnds, e); diff != "" {
			t.Errorf("k=%d ends (-want +got):\n%s", tt.k, diff)
		}
	}
	if len(starts) != 3 || len(ends) != 2 {
		t.Error("dropCandidates modified its inputs")
	}
}

func TestParsePolicy(t *testing.T) {
	for _, name := range []string{"strict", "Permissive", ""} {
		if _, err := ParsePolicy(name); err != nil {
			t.Errorf("ParsePolicy(%q): %v", name, err)
		}
	}
	if p, _ := ParsePolicy(""); p.Name != "strict" {
		t.Errorf("default policy = %s", p.Name)
	}
	_, err := ParsePolicy("reckless")
	if !errors.Is(err, ErrUnknownPolicy) || !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}
