// Package nodelink renders the block graph as a node-link diagram.
//
// Where the text renderer shows the routed grid layout, this package hands
// the bare graph to Graphviz: blocks become boxes labeled with their text
// and connections become edges. It is useful to check a diagram's topology
// before the router runs.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] output can also be saved and processed with external Graphviz
// tools. Rendering uses [github.com/goccy/go-graphviz] in process.
package nodelink
