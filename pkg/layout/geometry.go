package layout

import "fmt"

// Position is a cell on the grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add returns the component-wise sum of p and q.
func (p Position) Add(q Position) Position { return Position{X: p.X + q.X, Y: p.Y + q.Y} }

// ManhattanDistance returns |dx| + |dy| between p and q.
func (p Position) ManhattanDistance(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Size is a width and height in cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// =============================================================================
// PositionSet
// =============================================================================

// PositionSet is an immutable set of grid positions. The nil *PositionSet is
// the empty set and is ready to use.
//
// Each Extend adds one layer that points at its parent, so sibling sets
// created from the same parent share it and never see each other's cells.
type PositionSet struct {
	parent *PositionSet
	cells  map[Position]struct{}
	size   int
}

// Extend returns a set holding the receiver's positions plus ps.
func (s *PositionSet) Extend(ps []Position) *PositionSet {
	layer := &PositionSet{
		parent: s,
		cells:  make(map[Position]struct{}, len(ps)),
		size:   s.Len(),
	}
	for _, p := range ps {
		if s.Contains(p) {
			continue
		}
		if _, dup := layer.cells[p]; dup {
			continue
		}
		layer.cells[p] = struct{}{}
		layer.size++
	}
	return layer
}

// Contains reports whether p is in the set.
func (s *PositionSet) Contains(p Position) bool {
	for l := s; l != nil; l = l.parent {
		if _, ok := l.cells[p]; ok {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any of ps is in the set.
func (s *PositionSet) ContainsAny(ps []Position) bool {
	if s == nil {
		return false
	}
	for _, p := range ps {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct positions in the set.
func (s *PositionSet) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}
