// Package pkg provides the core libraries for boxroute diagram layout.
//
// # Overview
//
// Boxroute turns a flat description of named text boxes and the connections
// between them into a character-grid drawing: boxes are sized and placed,
// then every connection is routed as a path of straight runs that never
// crosses a box or another connection. The pkg directory is organized into
// four main areas:
//
//  1. [spec], [graph] - Input records and the resolved block graph
//  2. [layout] - Sizing, placement, pathfinding and routing
//  3. [render], [io] - Output drawings and diagram file formats
//  4. [pipeline] - Orchestration (parse → layout → render)
//
// # Architecture
//
// The typical data flow through boxroute:
//
//	.box / .json / .hcl diagram
//	         ↓
//	    [io] package (read records)
//	         ↓
//	    [graph] package (resolve connection endpoints)
//	         ↓
//	    [layout] package (size + place blocks, route connections)
//	         ↓
//	    [render] package (text canvas, DOT, SVG)
//
// # Quick Start
//
// Lay out a diagram and draw it in the terminal:
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/matzehuels/boxroute/pkg/graph"
//	    pkgio "github.com/matzehuels/boxroute/pkg/io"
//	    "github.com/matzehuels/boxroute/pkg/layout"
//	    "github.com/matzehuels/boxroute/pkg/layout/route"
//	    "github.com/matzehuels/boxroute/pkg/render/text"
//	)
//
//	// 1. Read the diagram
//	records, _ := pkgio.ParseText("box text a\nA\n\nbox text b\nB\n\nconnection a b\n")
//
//	// 2. Resolve the graph
//	g, _ := graph.Build(records)
//
//	// 3. Size and place the blocks
//	c := layout.DefaultConstraint()
//	blocks := layout.SizeBlocks(g.BlockSpecs(), c.Block)
//	layout.VerticalStack{ScreenWidth: c.MaxWidth, Spacing: c.Block.InterBlockDistance}.Place(blocks, nil)
//
//	// 4. Route the connections
//	res, _ := route.New(route.Strict, c.Cover(blocks, 3)).Route(context.Background(), blocks, g.ConnectionSpecs())
//
//	// 5. Draw
//	fmt.Println(text.Render(layout.Layout{Blocks: blocks, Connections: res.Connections}, text.Options{}))
//
// Most callers use [pipeline.Runner] instead, which applies the same steps
// with configured defaults and caching.
//
// # Main Packages
//
// ## Domain
//
// [spec] - Block and connection records, connection kinds and colorings.
//
// [graph] - Arena graph of blocks and connections. Building it reports every
// connection endpoint that names no block.
//
// ## Layout
//
// [layout] - Block sizing, placement strategies, constraints and the
// conversion of grid paths into drawable connection parts.
//
//   - [layout/pathfind]: A* search over the character grid with strict and
//     permissive cost policies
//   - [layout/memo]: Reuse of computed paths across routing attempts
//   - [layout/route]: Backtracking search over connection anchor points
//
// ## Output
//
// [render/text] - Rune canvas drawing with optional lipgloss colors.
//
// [render/nodelink] - Block graph as Graphviz DOT and SVG.
//
// [io] - Text grammar, JSON and HCL diagram readers and writers.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (parse → layout → render) used by the CLI
// and the layout service. Ensures consistent behavior across entry points.
//
// [cache] - Layout and artifact caching with null and in-memory LRU backends.
//
// [config] - TOML configuration file with XDG path resolution.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for parse, layout, route, render and request events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [spec]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/spec
// [graph]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/layout
// [layout/pathfind]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/layout/pathfind
// [layout/memo]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/layout/memo
// [layout/route]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/layout/route
// [render]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/render
// [render/text]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/render/text
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/boxroute/pkg/observability
package pkg
