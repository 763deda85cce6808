// Package layout holds the geometry of a diagram on a character grid and
// the steps that do not need a search: sizing blocks, placing them and
// turning a routed grid path into drawable segments.
//
// # Coordinates
//
// The grid origin (0,0) is the top-left cell. X grows to the right and Y
// grows downward; both are measured in character cells. A [BlockDisplay]
// occupies the rectangle from Pos to Pos+Size-1 inclusive, border included.
//
// # Pipeline
//
//	d := layout.SizeBlock(blockSpec, constraint.Block)   // unpositioned box
//	layout.VerticalStack{ScreenWidth: 50, Spacing: 5}.Place(displays, nil)
//	c, err := layout.ConnectionFromPath(connSpec, path) // after routing
//
// Routing itself lives in the pathfind, memo and route subpackages; this
// package only defines the values they exchange.
//
// # Blocked Cells
//
// [PositionSet] is a persistent set: Extend returns a new set layered on top
// of the receiver and never modifies it. Search code can commit a path
// tentatively and simply drop the extended set to roll back.
package layout
