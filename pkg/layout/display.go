package layout

import "github.com/matzehuels/boxroute/pkg/spec"

// Glyphs shared by the converter and the renderers.
const (
	JointGlyph      Glyph = '+'
	JunctionGlyph   Glyph = '#'
	VerticalGlyph   Glyph = '|'
	HorizontalGlyph Glyph = '-'
)

// Glyph is a single display character. It encodes to JSON as a one
// character string.
type Glyph rune

func (g Glyph) String() string { return string(rune(g)) }

// MarshalText implements encoding.TextMarshaler.
func (g Glyph) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Glyph) UnmarshalText(b []byte) error {
	r := []rune(string(b))
	if len(r) != 1 {
		return errGlyph(string(b))
	}
	*g = Glyph(r[0])
	return nil
}

// =============================================================================
// BlockDisplay
// =============================================================================

// BlockDisplay is a sized, and after placement positioned, text box.
type BlockDisplay struct {
	Name  string        `json:"name"`
	Color spec.Coloring `json:"color,omitempty"`
	Lines []string      `json:"lines"`
	Pos   Position      `json:"pos"`
	Size  Size          `json:"size"`
}

// Right returns the x coordinate of the right border column.
func (b BlockDisplay) Right() int { return b.Pos.X + b.Size.Width - 1 }

// Bottom returns the y coordinate of the bottom border row.
func (b BlockDisplay) Bottom() int { return b.Pos.Y + b.Size.Height - 1 }

// Center returns the cell closest to the middle of the box.
func (b BlockDisplay) Center() Position {
	return Position{X: b.Pos.X + b.Size.Width/2, Y: b.Pos.Y + b.Size.Height/2}
}

// DistanceTo returns the Manhattan distance from p to the nearest cell of
// the box. Cells on the border or inside have distance 0.
func (b BlockDisplay) DistanceTo(p Position) int {
	nearest := Position{
		X: clamp(p.X, b.Pos.X, b.Right()),
		Y: clamp(p.Y, b.Pos.Y, b.Bottom()),
	}
	return p.ManhattanDistance(nearest)
}

// Contains reports whether p lies on the border or inside the box.
func (b BlockDisplay) Contains(p Position) bool { return b.DistanceTo(p) == 0 }

// Overlaps reports whether the two boxes share at least one cell.
func (b BlockDisplay) Overlaps(o BlockDisplay) bool {
	return b.Pos.X <= o.Right() && o.Pos.X <= b.Right() &&
		b.Pos.Y <= o.Bottom() && o.Pos.Y <= b.Bottom()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// ConnectionDisplay
// =============================================================================

// ConnectionPart is one straight run of a routed path, both ends inclusive.
type ConnectionPart struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
	Glyph Glyph    `json:"glyph"`
}

// ConnectionDisplay is a routed connection ready to draw.
//
// Parts cover Path in order. The first and last cells are drawn with
// StartGlyph and EndGlyph, the cells where two parts meet with JointGlyph.
type ConnectionDisplay struct {
	Start      string              `json:"start"`
	End        string              `json:"end"`
	Kind       spec.ConnectionKind `json:"kind"`
	Color      spec.Coloring       `json:"color,omitempty"`
	Parts      []ConnectionPart    `json:"parts"`
	JointGlyph Glyph               `json:"joint_glyph"`
	StartGlyph Glyph               `json:"start_glyph"`
	EndGlyph   Glyph               `json:"end_glyph"`
	Path       []Position          `json:"path"`
}

// Len returns the number of cells the connection occupies.
func (c ConnectionDisplay) Len() int { return len(c.Path) }

// =============================================================================
// Layout
// =============================================================================

// Layout is a complete diagram: positioned blocks and routed connections.
type Layout struct {
	Blocks      []BlockDisplay      `json:"blocks"`
	Connections []ConnectionDisplay `json:"connections"`
}

// Extent returns the smallest size, measured from the origin, that covers
// every block and connection cell.
func (l Layout) Extent() Size {
	return Extent(l.Blocks, l.Connections...)
}

// Extent returns the smallest size from the origin that covers blocks and
// the paths of conns.
func Extent(blocks []BlockDisplay, conns ...ConnectionDisplay) Size {
	var s Size
	grow := func(x, y int) {
		s.Width = max(s.Width, x+1)
		s.Height = max(s.Height, y+1)
	}
	for _, b := range blocks {
		grow(b.Right(), b.Bottom())
	}
	for _, c := range conns {
		for _, p := range c.Path {
			grow(p.X, p.Y)
		}
	}
	return s
}

// Block returns the block with the given name.
func (l Layout) Block(name string) (BlockDisplay, bool) {
	for _, b := range l.Blocks {
		if b.Name == name {
			return b, true
		}
	}
	return BlockDisplay{}, false
}
