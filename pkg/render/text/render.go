package text

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// Options configures text rendering.
type Options struct {
	// Color styles cells by their coloring.
	Color bool
	// Renderer decides the terminal color profile. Nil uses the lipgloss
	// default renderer for stdout.
	Renderer *lipgloss.Renderer
}

// ansi maps colorings to the basic ANSI palette.
var ansi = map[spec.Coloring]lipgloss.Color{
	spec.Black:   lipgloss.Color("0"),
	spec.Red:     lipgloss.Color("1"),
	spec.Green:   lipgloss.Color("2"),
	spec.Yellow:  lipgloss.Color("3"),
	spec.Blue:    lipgloss.Color("4"),
	spec.Magenta: lipgloss.Color("5"),
	spec.Cyan:    lipgloss.Color("6"),
	spec.White:   lipgloss.Color("7"),
}

// Draw paints l onto a canvas sized to its extent.
func Draw(l layout.Layout) *Canvas {
	size := l.Extent()
	c := NewCanvas(size.Width, size.Height)
	for _, b := range l.Blocks {
		c.DrawBlock(b)
	}
	for _, cd := range l.Connections {
		c.DrawConnection(cd)
	}
	return c
}

// Render draws l and returns it as a string.
func Render(l layout.Layout, opts Options) string {
	c := Draw(l)
	if !opts.Color {
		return c.String()
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return c.Styled(r)
}

// Styled returns the canvas with each run of same-colored cells wrapped in
// a lipgloss style. Default-colored cells are left unstyled.
func (c *Canvas) Styled(r *lipgloss.Renderer) string {
	styles := make(map[spec.Coloring]lipgloss.Style, len(ansi))
	for k, v := range ansi {
		styles[k] = r.NewStyle().Foreground(v)
	}

	var sb strings.Builder
	for y, row := range c.cells {
		end := len(row)
		for end > 0 && row[end-1].r == ' ' {
			end--
		}
		for x := 0; x < end; {
			color := row[x].color
			run := x
			for run < end && row[run].color == color {
				run++
			}
			seg := make([]rune, 0, run-x)
			for _, cl := range row[x:run] {
				seg = append(seg, cl.r)
			}
			if st, ok := styles[color]; ok {
				sb.WriteString(st.Render(string(seg)))
			} else {
				sb.WriteString(string(seg))
			}
			x = run
		}
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
