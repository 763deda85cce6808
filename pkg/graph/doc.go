// Package graph turns a flat list of input records into a
// block/connection graph.
//
// # Arena Layout
//
// Blocks and connections live in two flat slices owned by [Graph] and refer
// to each other by index: a [Connection] stores the indices of its start and
// end blocks, and a [Block] stores the indices of every connection attached
// to it. There are no pointers between the two, so a graph is a plain value
// that can be copied, compared and serialized.
//
// # Construction
//
// [Build] is all-or-nothing. It partitions records into blocks and
// connections (keeping source order inside each group), rejects duplicate
// block names, and resolves each connection's endpoints by exact name. Every
// problem found is collected; if there is at least one, Build returns a
// [*BuildError] listing all of them and no graph:
//
//	g, err := graph.Build(records)
//	var be *graph.BuildError
//	if errors.As(err, &be) {
//	    for _, p := range be.Problems {
//	        fmt.Println(p) // "Block x does not exist"
//	    }
//	}
//
// # Queries
//
// [Graph.Lookup] finds a block by name, [Graph.OtherEnd] returns the far
// endpoint of a connection, [Graph.ConnectionCount] counts attachments (a
// self-connection counts twice) and [Graph.ByConnectionCount] orders blocks
// from most to least connected.
package graph
