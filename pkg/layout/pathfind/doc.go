// Package pathfind finds orthogonal unit-step paths on the layout grid.
//
// A [Grid] describes one search: the bounds, the blocks a path must keep
// clear of, the two blocks being connected and the cells already taken by
// other connections. A [Finder] runs A* over it with a Manhattan heuristic
// and a [CostPolicy] that decides what taken cells cost.
//
//	f := pathfind.NewFinder(pathfind.Strict{})
//	path, err := f.Find(ctx, &grid, start, end)
//	if errors.Is(err, pathfind.ErrNoPath) {
//	    // try other anchors
//	}
//
// Searches are deterministic: ties between equally promising cells are
// broken by insertion order, so the same grid always yields the same path.
package pathfind
