package layout

import (
	"sort"
	"strings"

	errs "github.com/matzehuels/boxroute/pkg/errors"
)

// Placement strategy names accepted by [NewPlacer].
const (
	PlacementVertical     = "vertical"
	PlacementConnectivity = "connectivity"
)

// PlacementNames lists the strategies [NewPlacer] knows.
var PlacementNames = []string{PlacementVertical, PlacementConnectivity}

// NewPlacer returns the named placement strategy. An empty name selects
// [VerticalStack].
func NewPlacer(name string, screenWidth, spacing int) (Placer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PlacementVertical:
		return VerticalStack{ScreenWidth: screenWidth, Spacing: spacing}, nil
	case PlacementConnectivity:
		return ConnectivityRows{ScreenWidth: screenWidth, Spacing: spacing}, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown placement %q (want one of %s)",
			name, strings.Join(PlacementNames, ", "))
	}
}

// Placer assigns positions to sized blocks in place. adj lists, for each
// block index, the indices of blocks it is connected to; strategies that
// ignore connectivity accept nil.
type Placer interface {
	Place(blocks []BlockDisplay, adj [][]int)
}

// VerticalStack centers every block on the screen and stacks them top to
// bottom in input order.
type VerticalStack struct {
	ScreenWidth int
	Spacing     int
}

// Place implements [Placer].
func (v VerticalStack) Place(blocks []BlockDisplay, _ [][]int) {
	y := 0
	for i := range blocks {
		blocks[i].Pos = Position{X: centered(v.ScreenWidth, blocks[i].Size.Width), Y: y}
		y += blocks[i].Size.Height + v.Spacing
	}
}

// ConnectivityRows groups blocks into rows by breadth-first distance from
// the most connected block. Each row is centered on the screen with Spacing
// columns between blocks, and rows are stacked like [VerticalStack].
// Disconnected components follow in order of their most connected block.
type ConnectivityRows struct {
	ScreenWidth int
	Spacing     int
	// Order optionally fixes the root priority, most connected first.
	// When nil it is derived from adj.
	Order []int
}

// Place implements [Placer].
func (r ConnectivityRows) Place(blocks []BlockDisplay, adj [][]int) {
	y := 0
	for _, row := range r.Rows(len(blocks), adj) {
		width, height := 0, 0
		for _, i := range row {
			width += blocks[i].Size.Width
			height = max(height, blocks[i].Size.Height)
		}
		width += r.Spacing * (len(row) - 1)

		x := centered(r.ScreenWidth, width)
		for _, i := range row {
			blocks[i].Pos = Position{X: x, Y: y}
			x += blocks[i].Size.Width + r.Spacing
		}
		y += height + r.Spacing
	}
}

// Rows returns the block indices of each row, top row first.
func (r ConnectivityRows) Rows(n int, adj [][]int) [][]int {
	order := r.Order
	if order == nil {
		order = byDegree(n, adj)
	}

	visited := make([]bool, n)
	var rows [][]int
	for _, root := range order {
		if root < 0 || root >= n || visited[root] {
			continue
		}
		visited[root] = true
		layer := []int{root}
		for len(layer) > 0 {
			rows = append(rows, layer)
			var next []int
			for _, i := range layer {
				if i >= len(adj) {
					continue
				}
				for _, j := range adj[i] {
					if j >= 0 && j < n && !visited[j] {
						visited[j] = true
						next = append(next, j)
					}
				}
			}
			layer = next
		}
	}
	// Indices missing from a caller supplied order land at the end.
	for i := range n {
		if !visited[i] {
			rows = append(rows, []int{i})
		}
	}
	return rows
}

func byDegree(n int, adj [][]int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	degree := func(i int) int {
		if i < len(adj) {
			return len(adj[i])
		}
		return 0
	}
	sort.SliceStable(order, func(a, b int) bool { return degree(order[a]) > degree(order[b]) })
	return order
}

func centered(screen, width int) int {
	return max(screen/2-width/2, 0)
}
