package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxroute/pkg/pipeline"
)

// Viewer styles
var (
	viewerFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	viewerDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// viewerChrome is the number of terminal rows used by title, help and frame.
const viewerChrome = 6

// =============================================================================
// ViewerModel - Interactive diagram viewer
// =============================================================================

// ViewerModel is the bubbletea model for scrolling a rendered diagram that
// is larger than the terminal.
type ViewerModel struct {
	Title   string
	Lines   []string
	Status  string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// NewViewerModel creates a viewer for drawing, one line per canvas row.
func NewViewerModel(title, drawing, status string) ViewerModel {
	return ViewerModel{
		Title:  title,
		Lines:  strings.Split(strings.TrimRight(drawing, "\n"), "\n"),
		Status: status,
		Width:  78,
		Height: 20,
	}
}

func (m ViewerModel) Init() tea.Cmd {
	return nil
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.OffsetY--
		case "down", "j":
			m.OffsetY++
		case "left", "h":
			m.OffsetX--
		case "right", "l":
			m.OffsetX++
		case "pgup":
			m.OffsetY -= m.Height
		case "pgdown", " ":
			m.OffsetY += m.Height
		case "g", "home":
			m.OffsetX, m.OffsetY = 0, 0
		case "G", "end":
			m.OffsetY = len(m.Lines)
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width-4, 10)
		m.Height = max(msg.Height-viewerChrome, 5)
	}
	m.clamp()
	return m, nil
}

// clamp keeps the viewport inside the drawing.
func (m *ViewerModel) clamp() {
	m.OffsetY = min(m.OffsetY, len(m.Lines)-m.Height)
	m.OffsetY = max(m.OffsetY, 0)
	m.OffsetX = min(m.OffsetX, m.maxLineWidth()-m.Width)
	m.OffsetX = max(m.OffsetX, 0)
}

func (m ViewerModel) maxLineWidth() int {
	w := 0
	for _, l := range m.Lines {
		w = max(w, len([]rune(l)))
	}
	return w
}

// visible returns the lines inside the viewport, padded to its width.
func (m ViewerModel) visible() []string {
	end := min(m.OffsetY+m.Height, len(m.Lines))
	out := make([]string, 0, m.Height)
	for i := m.OffsetY; i < end; i++ {
		r := []rune(m.Lines[i])
		if m.OffsetX < len(r) {
			r = r[m.OffsetX:min(len(r), m.OffsetX+m.Width)]
		} else {
			r = nil
		}
		out = append(out, string(r)+strings.Repeat(" ", m.Width-len(r)))
	}
	return out
}

func (m ViewerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	if m.Status != "" {
		b.WriteString("  " + viewerDimStyle.Render(m.Status))
	}
	b.WriteString("\n")
	b.WriteString(viewerDimStyle.Render("↑/↓/←/→ scroll  g top  G bottom  q quit"))
	b.WriteString("\n")
	b.WriteString(viewerFrameStyle.Render(strings.Join(m.visible(), "\n")))
	b.WriteString("\n")
	b.WriteString(viewerDimStyle.Render(fmt.Sprintf("  [%d,%d]", m.OffsetX, m.OffsetY)))

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// viewCommand creates the view command that opens the interactive viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		inputFormat string
		flags       layoutFlags
	)

	cmd := &cobra.Command{
		Use:               "view [diagram]",
		Short:             "Lay out a diagram and browse it in the terminal",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatText}
			return c.runView(cmd.Context(), args[0], inputFormat, opts)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: text, json, hcl (default: by extension)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, inputFormat string, opts pipeline.Options) error {
	runner := c.newRunner()
	defer runner.Close()

	records, err := c.readDiagram(ctx, runner, input, inputFormat)
	if err != nil {
		return err
	}
	result, err := runner.Execute(ctx, records, opts)
	if err != nil {
		return err
	}

	status := fmt.Sprintf("%d blocks · %d/%d connections",
		result.Stats.BlockCount, result.Stats.RoutedCount, result.Stats.ConnectionCount)
	model := NewViewerModel(input, string(result.Artifacts[pipeline.FormatText]), status)

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
