// Package route assigns a grid path to every connection of a placed layout.
//
// # Anchors
//
// A path starts and ends on a block border. Every block offers four core
// connectors at its edge midpoints ([CoreConnectors]). Once a connector is
// taken by a path, the points beside it on the same edge become candidates
// instead ([Alternates], [ConnectionPoints]).
//
// # Policies
//
// [Strict] routes connections in order and backtracks: if a later connection
// cannot be routed, the previous connection retries with a smaller set of
// anchor candidates, enumerating subsets until either everything fits or the
// search runs out of candidates. Paths never share a cell. The search is
// bounded by [Router.MaxAttempts] and by the context, which every A* search
// also observes.
//
// [Permissive] makes one pass, lets paths cross taken cells at a penalty and
// keeps whatever it routed before the first failure.
//
// Both policies look up paths through a [memo.Memoizer], so retries reuse
// earlier searches whenever the cached path is still free and still clear of
// the current blocks.
//
//	r := route.New(route.Strict, layout.DefaultConstraint())
//	res, err := r.Route(ctx, blocks, conns)
package route
