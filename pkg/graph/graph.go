package graph

import (
	"errors"
	"fmt"
	"strings"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// ErrEmptyName is reported by [Build] for a block or connection endpoint
// without a name.
var ErrEmptyName = errors.New("block name must not be empty")

// =============================================================================
// Types
// =============================================================================

// Block is a block spec together with the indices of the connections
// attached to it. A self-connection appears twice in Connections.
type Block struct {
	Spec        spec.BlockSpec
	Connections []int
}

// Name returns the block's identifier.
func (b *Block) Name() string { return b.Spec.Name }

// Connection is a connection spec with resolved endpoint block indices.
type Connection struct {
	Spec  spec.ConnectionSpec
	Start int
	End   int
}

// IsSelf reports whether both endpoints are the same block.
func (c *Connection) IsSelf() bool { return c.Start == c.End }

// Graph owns the block and connection arenas. Both slices keep the order in
// which their records appeared in the input.
//
// A Graph is only produced by [Build]; every connection endpoint refers to a
// block in the same graph. The zero value is an empty graph.
type Graph struct {
	Blocks      []Block
	Connections []Connection

	index map[string]int
}

// =============================================================================
// Build
// =============================================================================

// BuildError lists every problem found while building a graph.
type BuildError struct {
	Problems []string
}

func (e *BuildError) Error() string {
	if len(e.Problems) == 1 {
		return e.Problems[0]
	}
	return fmt.Sprintf("%d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Build constructs a graph from records.
//
// Blocks must have unique, non-empty names. Each connection endpoint must name
// an existing block. All violations are collected; if any exist Build returns
// a nil graph and an error coded [errs.ErrCodeUnresolvedBlock] (or
// [errs.ErrCodeDuplicateBlock] when only duplicates were found) whose cause is
// a [*BuildError].
func Build(records []spec.Record) (*Graph, error) {
	blockSpecs, connSpecs := spec.Split(records)

	g := &Graph{
		Blocks:      make([]Block, 0, len(blockSpecs)),
		Connections: make([]Connection, 0, len(connSpecs)),
		index:       make(map[string]int, len(blockSpecs)),
	}

	var problems []string
	unresolved := false

	for _, bs := range blockSpecs {
		if bs.Name == "" {
			problems = append(problems, ErrEmptyName.Error())
			continue
		}
		if _, dup := g.index[bs.Name]; dup {
			problems = append(problems, fmt.Sprintf("Block %s is defined more than once", bs.Name))
			continue
		}
		g.index[bs.Name] = len(g.Blocks)
		g.Blocks = append(g.Blocks, Block{Spec: bs})
	}

	for _, cs := range connSpecs {
		m := resolve(g.Blocks, cs)
		if !m.complete() {
			unresolved = true
			problems = append(problems, missingNames(cs, m)...)
			continue
		}

		ci := len(g.Connections)
		g.Connections = append(g.Connections, Connection{Spec: cs, Start: m.start, End: m.end})
		g.Blocks[m.start].Connections = append(g.Blocks[m.start].Connections, ci)
		g.Blocks[m.end].Connections = append(g.Blocks[m.end].Connections, ci)
	}

	if len(problems) > 0 {
		code := errs.ErrCodeDuplicateBlock
		if unresolved {
			code = errs.ErrCodeUnresolvedBlock
		}
		return nil, errs.Wrap(code, &BuildError{Problems: problems}, "build graph")
	}
	return g, nil
}

func missingNames(cs spec.ConnectionSpec, m endpointMatch) []string {
	var out []string
	if m.start < 0 {
		out = append(out, missing(cs.Start))
	}
	if m.end < 0 && !(cs.IsSelf() && m.start < 0) {
		out = append(out, missing(cs.End))
	}
	return out
}

func missing(name string) string {
	if name == "" {
		return ErrEmptyName.Error()
	}
	return fmt.Sprintf("Block %s does not exist", name)
}

// =============================================================================
// Queries
// =============================================================================

// Lookup returns the index of the block with the given name.
func (g *Graph) Lookup(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// ConnectionCount returns how many connection endpoints are attached to the
// block at index i. A self-connection contributes 2.
func (g *Graph) ConnectionCount(i int) int {
	return len(g.Blocks[i].Connections)
}

// OtherEnd returns the block on the far side of connection ci as seen from
// block bi. For a self-connection it returns bi.
func (g *Graph) OtherEnd(ci, bi int) int {
	c := g.Connections[ci]
	if c.Start == bi {
		return c.End
	}
	return c.Start
}

// Neighbors returns the distinct blocks connected to block i, in the order
// their connections were declared. Block i itself is included only when it
// has a self-connection.
func (g *Graph) Neighbors(i int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, ci := range g.Blocks[i].Connections {
		o := g.OtherEnd(ci, i)
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

// BlockSpecs returns the block specs in arena order.
func (g *Graph) BlockSpecs() []spec.BlockSpec {
	out := make([]spec.BlockSpec, len(g.Blocks))
	for i, b := range g.Blocks {
		out[i] = b.Spec
	}
	return out
}

// ConnectionSpecs returns the connection specs in arena order.
func (g *Graph) ConnectionSpecs() []spec.ConnectionSpec {
	out := make([]spec.ConnectionSpec, len(g.Connections))
	for i, c := range g.Connections {
		out[i] = c.Spec
	}
	return out
}
