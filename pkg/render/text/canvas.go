package text

import (
	"errors"
	"strings"

	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// ErrOutOfBounds is returned by [Canvas.Set] for a position off the canvas.
var ErrOutOfBounds = errors.New("position out of bounds")

type cell struct {
	r     rune
	color spec.Coloring
}

// Canvas is a rune matrix with a color per cell.
// Origin (0,0) is top-left, x grows rightward and y downward.
type Canvas struct {
	cells  [][]cell
	width  int
	height int
}

// NewCanvas creates a blank canvas. Non-positive sizes yield an empty canvas.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	cells := make([][]cell, height)
	for y := range cells {
		cells[y] = make([]cell, width)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' '}
		}
	}
	return &Canvas{cells: cells, width: width, height: height}
}

// Size returns the width and height of the canvas.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

func (c *Canvas) inside(p layout.Position) bool {
	return p.X >= 0 && p.X < c.width && p.Y >= 0 && p.Y < c.height
}

// Get returns the rune at p, or ' ' outside the canvas.
func (c *Canvas) Get(p layout.Position) rune {
	if !c.inside(p) {
		return ' '
	}
	return c.cells[p.Y][p.X].r
}

// Set places r at p.
func (c *Canvas) Set(p layout.Position, r rune, color spec.Coloring) error {
	if !c.inside(p) {
		return ErrOutOfBounds
	}
	c.cells[p.Y][p.X] = cell{r: r, color: color}
	return nil
}

// DrawBlock draws the border and content lines of b. Cells that fall off
// the canvas are skipped.
func (c *Canvas) DrawBlock(b layout.BlockDisplay) {
	x0, y0 := b.Pos.X, b.Pos.Y
	right, bottom := b.Right(), b.Bottom()

	for x := x0 + 1; x < right; x++ {
		c.Set(layout.Pos(x, y0), '-', b.Color)
		c.Set(layout.Pos(x, bottom), '-', b.Color)
	}
	for y := y0 + 1; y < bottom; y++ {
		c.Set(layout.Pos(x0, y), '|', b.Color)
		c.Set(layout.Pos(right, y), '|', b.Color)
	}
	for _, p := range []layout.Position{
		layout.Pos(x0, y0), layout.Pos(right, y0),
		layout.Pos(x0, bottom), layout.Pos(right, bottom),
	} {
		c.Set(p, '+', b.Color)
	}

	for i, line := range b.Lines {
		x := x0 + 2
		for _, r := range line {
			c.Set(layout.Pos(x, y0+1+i), r, b.Color)
			x++
		}
	}
}

// DrawConnection draws every part of cd with its fill glyph, the joints
// between parts, and the start and end glyphs. Parts that are not
// horizontal or vertical are skipped.
func (c *Canvas) DrawConnection(cd layout.ConnectionDisplay) {
	for _, part := range cd.Parts {
		if part.Start.X != part.End.X && part.Start.Y != part.End.Y {
			continue
		}
		step := unit(part.Start, part.End)
		p := part.Start
		for range part.Start.ManhattanDistance(part.End) + 1 {
			c.Set(p, rune(part.Glyph), cd.Color)
			p = p.Add(step)
		}
	}
	for i := 1; i < len(cd.Parts); i++ {
		c.Set(cd.Parts[i].Start, rune(cd.JointGlyph), cd.Color)
	}
	if len(cd.Path) > 0 {
		c.Set(cd.Path[0], rune(cd.StartGlyph), cd.Color)
		c.Set(cd.Path[len(cd.Path)-1], rune(cd.EndGlyph), cd.Color)
	}
}

func unit(from, to layout.Position) layout.Position {
	return layout.Pos(sign(to.X-from.X), sign(to.Y-from.Y))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// String returns the canvas as plain text, one line per row, with trailing
// spaces removed.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))
	for y, row := range c.cells {
		line := make([]rune, len(row))
		for x, cl := range row {
			line[x] = cl.r
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
