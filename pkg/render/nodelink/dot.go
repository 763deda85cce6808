package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boxroute/pkg/graph"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the block name and connection count in node labels.
	// When false, only the block text is shown.
	Detailed bool
}

// dotColors maps colorings to Graphviz X11 color names.
var dotColors = map[spec.Coloring]string{
	spec.Black:   "black",
	spec.White:   "white",
	spec.Red:     "red",
	spec.Green:   "green",
	spec.Yellow:  "gold",
	spec.Blue:    "blue",
	spec.Magenta: "magenta",
	spec.Cyan:    "cyan3",
}

// ToDOT converts a block graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Generic connections are drawn without arrowheads, singular ones with an
// arrow into the end block and dual ones with arrows on both sides.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, b := range g.Blocks {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, i, opts.Detailed))}
		if c, ok := dotColors[b.Spec.Color]; ok {
			attrs = append(attrs, fmt.Sprintf("color=%q", c))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", b.Name(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections {
		attrs := fmtEdgeAttrs(c.Spec)
		from, to := g.Blocks[c.Start].Name(), g.Blocks[c.End].Name()
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", from, to, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, i int, detailed bool) string {
	b := g.Blocks[i]
	if !detailed {
		return b.Spec.Text
	}
	return fmt.Sprintf("%s\n%s\nconnections: %d", b.Spec.Text, b.Name(), g.ConnectionCount(i))
}

func fmtEdgeAttrs(c spec.ConnectionSpec) []string {
	var attrs []string
	switch c.Kind {
	case spec.Generic:
		attrs = append(attrs, "dir=none")
	case spec.Dual:
		attrs = append(attrs, "dir=both")
	}
	if col, ok := dotColors[c.Color]; ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", col))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
