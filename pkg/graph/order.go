package graph

import (
	"cmp"
	"slices"
)

// ByConnectionCount returns block indices ordered from most to least
// connected. Blocks with equal counts keep their declaration order.
func (g *Graph) ByConnectionCount() []int {
	order := make([]int, len(g.Blocks))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(g.ConnectionCount(b), g.ConnectionCount(a))
	})
	return order
}

// Adjacency returns the neighbor lists of every block, indexed like Blocks.
func (g *Graph) Adjacency() [][]int {
	adj := make([][]int, len(g.Blocks))
	for i := range g.Blocks {
		adj[i] = g.Neighbors(i)
	}
	return adj
}
