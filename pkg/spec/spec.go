// Package spec defines the flat input records a diagram is built
// from: blocks, connections, connection kinds and colorings.
//
// Records are produced by the readers in [github.com/matzehuels/boxroute/pkg/io]
// and consumed by [github.com/matzehuels/boxroute/pkg/graph]. They are plain
// values and are never mutated after parsing.
package spec

import (
	"fmt"
	"strings"
)

// =============================================================================
// Coloring
// =============================================================================

// Coloring is the display color of a block or connection.
// The zero value is [Default], which leaves the terminal color unchanged.
type Coloring int

const (
	Default Coloring = iota
	Black
	White
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
)

var coloringNames = [...]string{
	Default: "default",
	Black:   "black",
	White:   "white",
	Red:     "red",
	Green:   "green",
	Yellow:  "yellow",
	Blue:    "blue",
	Magenta: "magenta",
	Cyan:    "cyan",
}

// Colorings lists every coloring in declaration order.
var Colorings = []Coloring{Default, Black, White, Red, Green, Yellow, Blue, Magenta, Cyan}

// String returns the lowercase name used by the text grammar.
func (c Coloring) String() string {
	if c < 0 || int(c) >= len(coloringNames) {
		return fmt.Sprintf("coloring(%d)", int(c))
	}
	return coloringNames[c]
}

// ParseColoring maps a color name to its Coloring. Matching is case-insensitive.
func ParseColoring(s string) (Coloring, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range coloringNames {
		if n == name {
			return Coloring(i), nil
		}
	}
	return Default, fmt.Errorf("unknown color %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Coloring) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value is [Default].
func (c *Coloring) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = Default
		return nil
	}
	v, err := ParseColoring(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// =============================================================================
// ConnectionKind
// =============================================================================

// ConnectionKind decides which glyphs terminate a routed connection.
// The zero value is [Generic].
type ConnectionKind int

const (
	// Generic connections end in a junction glyph on both sides.
	Generic ConnectionKind = iota
	// Singular connections carry one arrow into the end block.
	Singular
	// Dual connections carry arrows into both blocks.
	Dual
)

var kindNames = [...]string{
	Generic:  "generic",
	Singular: "singular",
	Dual:     "dual",
}

// String returns the lowercase name used by the text grammar.
func (k ConnectionKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseConnectionKind maps a kind name to its ConnectionKind.
func ParseConnectionKind(s string) (ConnectionKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return ConnectionKind(i), nil
		}
	}
	return Generic, fmt.Errorf("unknown connection kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ConnectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value is [Generic].
func (k *ConnectionKind) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = Generic
		return nil
	}
	v, err := ParseConnectionKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// =============================================================================
// Specs
// =============================================================================

// BlockSpec describes a named text box.
type BlockSpec struct {
	Name  string   `json:"name"`
	Color Coloring `json:"color,omitempty"`
	Text  string   `json:"text"`
}

// ConnectionSpec describes a line between two blocks, referenced by name.
// Start and End may be equal.
type ConnectionSpec struct {
	Kind  ConnectionKind `json:"kind,omitempty"`
	Start string         `json:"start"`
	End   string         `json:"end"`
	Color Coloring       `json:"color,omitempty"`
}

// IsSelf reports whether the connection starts and ends on the same block.
func (c ConnectionSpec) IsSelf() bool { return c.Start == c.End }

// Touches reports whether name is one of the connection's endpoints.
func (c ConnectionSpec) Touches(name string) bool { return c.Start == name || c.End == name }

func (c ConnectionSpec) String() string {
	return fmt.Sprintf("%s connection %s %s", c.Kind, c.Start, c.End)
}

// =============================================================================
// Record
// =============================================================================

// Record is one entry of a diagram description: exactly one of Block or
// Connection is set.
type Record struct {
	Block      *BlockSpec
	Connection *ConnectionSpec
}

// BlockRecord wraps a block spec in a Record.
func BlockRecord(b BlockSpec) Record { return Record{Block: &b} }

// ConnectionRecord wraps a connection spec in a Record.
func ConnectionRecord(c ConnectionSpec) Record { return Record{Connection: &c} }

// IsBlock reports whether the record describes a block.
func (r Record) IsBlock() bool { return r.Block != nil }

// Split partitions records into blocks and connections, preserving the
// relative order inside each group. Records with neither field set are dropped.
func Split(records []Record) ([]BlockSpec, []ConnectionSpec) {
	var blocks []BlockSpec
	var conns []ConnectionSpec
	for _, r := range records {
		switch {
		case r.Block != nil:
			blocks = append(blocks, *r.Block)
		case r.Connection != nil:
			conns = append(conns, *r.Connection)
		}
	}
	return blocks, conns
}

// Join builds records from separate block and connection lists, blocks first.
func Join(blocks []BlockSpec, conns []ConnectionSpec) []Record {
	out := make([]Record, 0, len(blocks)+len(conns))
	for _, b := range blocks {
		out = append(out, BlockRecord(b))
	}
	for _, c := range conns {
		out = append(out, ConnectionRecord(c))
	}
	return out
}
