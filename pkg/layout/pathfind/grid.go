package pathfind

import "github.com/matzehuels/boxroute/pkg/layout"

// Grid is the search space for one connection.
type Grid struct {
	// Width and Height are the largest valid coordinates, inclusive.
	Width  int
	Height int
	// Clearance is the minimum distance a path keeps from Obstacles.
	Clearance int
	// Obstacles are the blocks the connection does not touch.
	Obstacles []layout.BlockDisplay
	// Endpoints are the blocks being connected. A path may touch them only
	// at its first and last cell.
	Endpoints []layout.BlockDisplay
	// Blocked holds cells used by already routed connections.
	Blocked *layout.PositionSet
}

// NewGrid splits blocks into obstacles and endpoints by name.
func NewGrid(c layout.LayoutConstraint, blocks []layout.BlockDisplay, start, end string, blocked *layout.PositionSet) *Grid {
	g := &Grid{
		Width:     c.MaxWidth,
		Height:    c.MaxHeight,
		Clearance: c.Connection.BoxDistance,
		Blocked:   blocked,
	}
	for _, b := range blocks {
		if b.Name == start || b.Name == end {
			g.Endpoints = append(g.Endpoints, b)
		} else {
			g.Obstacles = append(g.Obstacles, b)
		}
	}
	return g
}

// WithBlocked returns a copy of g searching around blocked instead.
func (g *Grid) WithBlocked(blocked *layout.PositionSet) *Grid {
	c := *g
	c.Blocked = blocked
	return &c
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p layout.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= g.Width && p.Y <= g.Height
}

// Clear reports whether p respects the block rules: at least Clearance away
// from every obstacle and outside both endpoint blocks. Taken cells are not
// considered.
func (g *Grid) Clear(p layout.Position) bool {
	for _, b := range g.Obstacles {
		if b.DistanceTo(p) < g.Clearance {
			return false
		}
		// Zero clearance still forbids crossing a box.
		if b.Contains(p) {
			return false
		}
	}
	for _, b := range g.Endpoints {
		if b.Contains(p) {
			return false
		}
	}
	return true
}

// neighbors returns the in-bounds orthogonal neighbours of p in the fixed
// order left, up, right, down.
func (g *Grid) neighbors(p layout.Position, buf []layout.Position) []layout.Position {
	buf = buf[:0]
	for _, d := range [...]layout.Position{{X: -1}, {Y: -1}, {X: 1}, {Y: 1}} {
		if n := p.Add(d); g.InBounds(n) {
			buf = append(buf, n)
		}
	}
	return buf
}
