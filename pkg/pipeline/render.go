package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/boxroute/pkg/graph"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/observability"
	"github.com/matzehuels/boxroute/pkg/render/nodelink"
	"github.com/matzehuels/boxroute/pkg/render/text"
)

// Render generates output artifacts in the requested formats.
//
// The ansi format always carries color escape codes, whatever the
// terminal the process runs in; the text format never does.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, l layout.Layout, opts Options) (map[string][]byte, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts, err := renderFormats(ctx, g, l, opts.Formats)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, g *graph.Graph, l layout.Layout, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(text.Render(l, text.Options{}) + "\n")
		case FormatANSI:
			data = []byte(text.Render(l, text.Options{Color: true, Renderer: ansiRenderer()}) + "\n")
		case FormatJSON:
			data, err = layout.Marshal(l)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(g, nodelink.Options{}))
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func ansiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return r
}
