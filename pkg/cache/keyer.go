package cache

import "github.com/matzehuels/boxroute/pkg/layout"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a routed layout of a diagram.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string
	// RenderKey identifies one rendering of a layout.
	RenderKey(layoutKey string, opts RenderKeyOpts) string
}

// LayoutKeyOpts lists the settings that change a routed layout.
type LayoutKeyOpts struct {
	Policy      string                  `json:"policy"`
	Placement   string                  `json:"placement"`
	MaxAttempts int                     `json:"max_attempts"`
	Constraint  layout.LayoutConstraint `json:"constraint"`
}

// RenderKeyOpts lists the settings that change a rendering.
type RenderKeyOpts struct {
	Format string `json:"format"`
	Color  bool   `json:"color"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts)
}

// RenderKey implements [Keyer].
func (DefaultKeyer) RenderKey(layoutKey string, opts RenderKeyOpts) string {
	return hashKey("render", layoutKey, opts)
}
