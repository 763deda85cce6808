package layout

import (
	"errors"
	"fmt"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// ErrInvalidPath is the cause of every error returned by
// [ConnectionFromPath]. The router only produces unit-step paths, so seeing
// it means the routing invariants were broken.
var ErrInvalidPath = errors.New("invalid path")

func errGlyph(s string) error {
	return fmt.Errorf("glyph %q must be exactly one character", s)
}

// ConnectionFromPath turns a routed path into a drawable connection.
//
// Consecutive unit steps in the same direction are merged into one
// [ConnectionPart] drawn with '|' or '-'. The end glyphs depend on the kind:
//
//	generic   # ... #
//	singular  # ... arrow into the end block
//	dual      arrow into the start block ... arrow into the end block
//
// A path that is empty or contains a diagonal or multi-cell step yields an
// error coded [errs.ErrCodeInternal] wrapping [ErrInvalidPath].
func ConnectionFromPath(c spec.ConnectionSpec, path []Position) (ConnectionDisplay, error) {
	if len(path) == 0 {
		return ConnectionDisplay{}, errs.Wrap(errs.ErrCodeInternal, ErrInvalidPath, "connection %s: empty path", c)
	}

	d := ConnectionDisplay{
		Start:      c.Start,
		End:        c.End,
		Kind:       c.Kind,
		Color:      c.Color,
		JointGlyph: JointGlyph,
		Path:       append([]Position(nil), path...),
	}

	runStart := path[0]
	var runGlyph Glyph
	for i := 1; i < len(path); i++ {
		g, err := stepGlyph(path[i-1], path[i])
		if err != nil {
			return ConnectionDisplay{}, errs.Wrap(errs.ErrCodeInternal, err, "connection %s: step %d", c, i)
		}
		if runGlyph != 0 && g != runGlyph {
			d.Parts = append(d.Parts, ConnectionPart{Start: runStart, End: path[i-1], Glyph: runGlyph})
			runStart = path[i-1]
		}
		runGlyph = g
	}
	if runGlyph != 0 {
		d.Parts = append(d.Parts, ConnectionPart{Start: runStart, End: path[len(path)-1], Glyph: runGlyph})
	}

	d.StartGlyph, d.EndGlyph = endGlyphs(c.Kind, path)
	return d, nil
}

func stepGlyph(from, to Position) (Glyph, error) {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 0 && (dy == 1 || dy == -1):
		return VerticalGlyph, nil
	case dy == 0 && (dx == 1 || dx == -1):
		return HorizontalGlyph, nil
	default:
		return 0, fmt.Errorf("%w: %v to %v is not a unit step", ErrInvalidPath, from, to)
	}
}

func endGlyphs(kind spec.ConnectionKind, path []Position) (start, end Glyph) {
	var first, last Position
	hasStep := len(path) > 1
	if hasStep {
		first = Position{X: path[0].X - path[1].X, Y: path[0].Y - path[1].Y}
		n := len(path)
		last = Position{X: path[n-1].X - path[n-2].X, Y: path[n-1].Y - path[n-2].Y}
	}

	switch kind {
	case spec.Singular:
		return JunctionGlyph, incoming(last, hasStep)
	case spec.Dual:
		return incoming(first, hasStep), incoming(last, hasStep)
	default:
		return JunctionGlyph, JunctionGlyph
	}
}

// incoming returns the arrow pointing along step.
func incoming(step Position, ok bool) Glyph {
	if !ok {
		return JunctionGlyph
	}
	switch {
	case step.X == -1:
		return '<'
	case step.X == 1:
		return '>'
	case step.Y == -1:
		return '^'
	default:
		return 'v'
	}
}
