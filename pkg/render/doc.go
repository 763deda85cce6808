// Package render groups the output backends for routed diagrams.
//
// # Overview
//
//   - Character grid output (in [text] subpackage), plain or colored
//   - Node-link diagrams of the block graph (in [nodelink] subpackage)
//
// JSON output of a layout lives with the layout itself, see
// [layout.Marshal].
//
// # Text
//
//	out := text.Render(l, text.Options{Color: true})
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the unrouted block graph using
// Graphviz. Blocks appear as boxes connected by edges.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [text]: github.com/matzehuels/boxroute/pkg/render/text
// [nodelink]: github.com/matzehuels/boxroute/pkg/render/nodelink
// [layout.Marshal]: github.com/matzehuels/boxroute/pkg/layout.Marshal
package render
