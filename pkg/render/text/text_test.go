package text

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/spec"
)

func block(name, text string, x, y int) layout.BlockDisplay {
	b := layout.SizeBlock(spec.BlockSpec{Name: name, Text: text}, layout.DefaultBlockConstraint())
	b.Pos = layout.Pos(x, y)
	return b
}

func connection(t *testing.T, kind spec.ConnectionKind, path ...layout.Position) layout.ConnectionDisplay {
	t.Helper()
	cd, err := layout.ConnectionFromPath(spec.ConnectionSpec{Kind: kind, Start: "a", End: "b"}, path)
	if err != nil {
		t.Fatalf("ConnectionFromPath: %v", err)
	}
	return cd
}

func TestRenderTwoBlocks(t *testing.T) {
	l := layout.Layout{
		Blocks: []layout.BlockDisplay{block("a", "hi", 0, 0), block("b", "ok", 0, 6)},
		Connections: []layout.ConnectionDisplay{
			connection(t, spec.Singular, layout.Pos(3, 2), layout.Pos(3, 3), layout.Pos(3, 4), layout.Pos(3, 5), layout.Pos(3, 6)),
		},
	}

	want := strings.Join([]string{
		"+----+",
		"| hi |",
		"+--#-+",
		"   |",
		"   |",
		"   |",
		"+--v-+",
		"| ok |",
		"+----+",
	}, "\n")
	if diff := cmp.Diff(want, Render(l, Options{})); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawConnectionJoints(t *testing.T) {
	tests := []struct {
		name string
		kind spec.ConnectionKind
		path []layout.Position
		want string
	}{
		{
			name: "generic corner",
			kind: spec.Generic,
			path: []layout.Position{layout.Pos(0, 0), layout.Pos(1, 0), layout.Pos(2, 0), layout.Pos(2, 1), layout.Pos(2, 2)},
			want: "#-+\n  |\n  #",
		},
		{
			name: "dual arrows",
			kind: spec.Dual,
			path: []layout.Position{layout.Pos(0, 1), layout.Pos(1, 1), layout.Pos(2, 1), layout.Pos(3, 1)},
			want: "\n<-->",
		},
		{
			name: "single cell",
			kind: spec.Dual,
			path: []layout.Position{layout.Pos(1, 0)},
			want: " #",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layout.Layout{Connections: []layout.ConnectionDisplay{connection(t, tt.kind, tt.path...)}}
			if diff := cmp.Diff(tt.want, Draw(l).String()); diff != "" {
				t.Errorf("canvas mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDrawConnectionSkipsDiagonalPart(t *testing.T) {
	c := NewCanvas(3, 4)
	c.DrawConnection(layout.ConnectionDisplay{Parts: []layout.ConnectionPart{
		{Start: layout.Pos(0, 0), End: layout.Pos(2, 1), Glyph: '-'},
		{Start: layout.Pos(2, 3), End: layout.Pos(0, 3), Glyph: '-'},
	}})
	if diff := cmp.Diff("\n\n\n---", c.String()); diff != "" {
		t.Errorf("canvas mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawBlockWrapped(t *testing.T) {
	b := block("a", "the quick brown fox jumps", 1, 0)
	c := Draw(layout.Layout{Blocks: []layout.BlockDisplay{b}})

	w, h := c.Size()
	if w != b.Right()+1 || h != b.Bottom()+1 {
		t.Fatalf("canvas size = %dx%d, want %dx%d", w, h, b.Right()+1, b.Bottom()+1)
	}
	for i, line := range b.Lines {
		row := strings.Split(c.String(), "\n")[i+1]
		if !strings.HasPrefix(row, " | "+line) {
			t.Errorf("row %d = %q, want content %q at column 3", i+1, row, line)
		}
	}
	if got := c.Get(layout.Pos(1, 0)); got != '+' {
		t.Errorf("top-left corner = %q, want '+'", got)
	}
	if got := c.Get(layout.Pos(b.Right(), b.Bottom())); got != '+' {
		t.Errorf("bottom-right corner = %q, want '+'", got)
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	if err := c.Set(layout.Pos(2, 0), 'x', spec.Default); err != ErrOutOfBounds {
		t.Errorf("Set outside = %v, want ErrOutOfBounds", err)
	}
	if got := c.Get(layout.Pos(-1, 0)); got != ' ' {
		t.Errorf("Get outside = %q, want ' '", got)
	}
	if got := NewCanvas(-1, 3).String(); got != "\n\n" {
		t.Errorf("zero-width canvas = %q", got)
	}
}

func TestStyledWithoutColorProfile(t *testing.T) {
	b := block("a", "hi", 0, 0)
	b.Color = spec.Red
	l := layout.Layout{Blocks: []layout.BlockDisplay{b}}

	r := lipgloss.NewRenderer(io.Discard)
	got := Render(l, Options{Color: true, Renderer: r})
	if diff := cmp.Diff(Render(l, Options{}), got); diff != "" {
		t.Errorf("styled output on a plain writer should match plain text (-want +got):\n%s", diff)
	}
}
