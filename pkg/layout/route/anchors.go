package route

import "github.com/matzehuels/boxroute/pkg/layout"

// CoreConnectors returns the midpoints of a block's left, top, right and
// bottom edges, in that order.
func CoreConnectors(b layout.BlockDisplay) []layout.Position {
	x, y, w, h := b.Pos.X, b.Pos.Y, b.Size.Width, b.Size.Height
	return []layout.Position{
		{X: x, Y: y + h/2},
		{X: x + w/2, Y: y},
		{X: x + w - 1, Y: y + h/2},
		{X: x + w/2, Y: y + h - 1},
	}
}

// Alternates returns the points beside used on the same edge of b, a quarter
// of the edge length away but at least 2, that lie strictly between the
// edge's corners.
func Alternates(used layout.Position, b layout.BlockDisplay) []layout.Position {
	var out []layout.Position
	if used.X == b.Pos.X || used.X == b.Right() {
		step := max(b.Size.Height/4, 2)
		if used.Y-step > b.Pos.Y {
			out = append(out, layout.Position{X: used.X, Y: used.Y - step})
		}
		if used.Y+step < b.Bottom() {
			out = append(out, layout.Position{X: used.X, Y: used.Y + step})
		}
		return out
	}
	step := max(b.Size.Width/4, 2)
	if used.X-step > b.Pos.X {
		out = append(out, layout.Position{X: used.X - step, Y: used.Y})
	}
	if used.X+step < b.Right() {
		out = append(out, layout.Position{X: used.X + step, Y: used.Y})
	}
	return out
}

// ConnectionPoints returns the anchors of b not yet taken in blocked.
//
// Each taken core connector is replaced by its alternates; taken alternates
// are expanded the same way until only free points remain. The result keeps
// edge order and holds no duplicates.
func ConnectionPoints(b layout.BlockDisplay, blocked *layout.PositionSet) []layout.Position {
	var out []layout.Position
	seen := make(map[layout.Position]bool)

	var expand func(p layout.Position)
	expand = func(p layout.Position) {
		if seen[p] {
			return
		}
		seen[p] = true
		if !blocked.Contains(p) {
			out = append(out, p)
			return
		}
		for _, alt := range Alternates(p, b) {
			expand(alt)
		}
	}
	for _, p := range CoreConnectors(b) {
		expand(p)
	}
	return out
}
