// Package text draws a [layout.Layout] onto a character grid.
//
// Blocks are drawn first: corners as '+', sides as '|', top and bottom as
// '-', and each content line starting two cells right of the left border.
// Connections are drawn over them, so their start and end glyphs replace
// the border cell they attach to.
//
//	out := text.Render(l, text.Options{})
//	fmt.Print(out)
//
// Set [Options.Color] to color blocks and connections by their
// [spec.Coloring] using lipgloss. Color output degrades to plain text when
// the renderer's terminal has no color support.
//
// [layout.Layout]: github.com/matzehuels/boxroute/pkg/layout.Layout
// [spec.Coloring]: github.com/matzehuels/boxroute/pkg/spec.Coloring
package text
