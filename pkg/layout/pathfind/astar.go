package pathfind

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/boxroute/pkg/layout"
)

// ErrNoPath is returned when the target cannot be reached.
var ErrNoPath = errors.New("no path")

// ErrSearchLimit is returned when a search expands more cells than
// [Finder.MaxNodes] allows.
var ErrSearchLimit = errors.New("search limit exceeded")

// ctxCheckInterval is how many expansions pass between context checks.
const ctxCheckInterval = 1024

// node is a cell on the open list.
type node struct {
	pos    layout.Position
	g      int // cost from start
	h      int // heuristic to target
	f      int // g + h
	seq    int // insertion order, for stable ties
	parent *node
	index  int // index in the heap
}

// nodeQueue orders by f, then h, then insertion order.
type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *nodeQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*q = old[:len(old)-1]
	return n
}

// Finder runs A* searches under one cost policy and counts them.
// A Finder is not safe for concurrent use.
type Finder struct {
	Policy CostPolicy
	// MaxNodes bounds the cells expanded per search; 0 means unbounded.
	MaxNodes int

	searches int
}

// NewFinder returns a Finder using policy, or [Strict] when policy is nil.
func NewFinder(policy CostPolicy) *Finder {
	if policy == nil {
		policy = Strict{}
	}
	return &Finder{Policy: policy}
}

// Searches returns how many searches the Finder has run.
func (f *Finder) Searches() int { return f.searches }

// Find returns the cheapest path from start to end, both included.
//
// A cell other than end may be entered only if it is on the grid, passes
// [Grid.Clear] and is admitted by the cost policy. end itself is always
// admitted.
//
// The search returns ctx.Err() once ctx is done; it is checked before the
// first expansion and then at regular intervals.
func (f *Finder) Find(ctx context.Context, g *Grid, start, end layout.Position) ([]layout.Position, error) {
	f.searches++
	if start == end {
		return []layout.Position{start}, nil
	}
	if !g.InBounds(start) || !g.InBounds(end) {
		return nil, fmt.Errorf("%w: %v to %v leaves the %dx%d grid", ErrNoPath, start, end, g.Width, g.Height)
	}

	policy := f.Policy
	if policy == nil {
		policy = Strict{}
	}

	open := &nodeQueue{}
	nodes := make(map[layout.Position]*node)
	closed := make(map[layout.Position]bool)
	seq := 0

	push := func(n *node) {
		n.seq = seq
		seq++
		heap.Push(open, n)
		nodes[n.pos] = n
	}
	h := start.ManhattanDistance(end)
	push(&node{pos: start, h: h, f: h})

	var buf []layout.Position
	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.pos == end {
			return reconstruct(current), nil
		}
		closed[current.pos] = true

		if expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		expanded++
		if f.MaxNodes > 0 && expanded > f.MaxNodes {
			return nil, fmt.Errorf("%w: %d cells", ErrSearchLimit, f.MaxNodes)
		}

		buf = g.neighbors(current.pos, buf)
		for _, next := range buf {
			if closed[next] {
				continue
			}
			cost, ok := f.stepCost(g, policy, next, end)
			if !ok {
				continue
			}

			tentative := current.g + cost
			if existing, seen := nodes[next]; seen {
				if tentative < existing.g {
					existing.g = tentative
					existing.f = tentative + existing.h
					existing.parent = current
					heap.Fix(open, existing.index)
				}
				continue
			}
			hn := next.ManhattanDistance(end)
			push(&node{pos: next, g: tentative, h: hn, f: tentative + hn, parent: current})
		}
	}
	return nil, fmt.Errorf("%w: %v to %v", ErrNoPath, start, end)
}

func (f *Finder) stepCost(g *Grid, policy CostPolicy, p, end layout.Position) (int, bool) {
	blocked := g.Blocked.Contains(p)
	if p == end {
		if cost, ok := policy.Cost(blocked); ok {
			return cost, true
		}
		return StepCost, true
	}
	if !g.Clear(p) {
		return 0, false
	}
	return policy.Cost(blocked)
}

func reconstruct(goal *node) []layout.Position {
	n := 0
	for c := goal; c != nil; c = c.parent {
		n++
	}
	path := make([]layout.Position, n)
	for c := goal; c != nil; c = c.parent {
		n--
		path[n] = c.pos
	}
	return path
}
