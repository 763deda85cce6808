package layout

import (
	errs "github.com/matzehuels/boxroute/pkg/errors"
)

// Default constraint values.
const (
	DefaultMinLimitedWidth    = 20
	DefaultMaxHeightPerWidth  = 1
	DefaultMaxWidthPerHeight  = 10
	DefaultInterBlockDistance = 5

	DefaultMinLength   = 1
	DefaultMaxLength   = 0
	DefaultBoxDistance = 1

	DefaultScreenWidth  = 50
	DefaultScreenHeight = 50

	// MaxScreenSize bounds the configured grid width and height.
	MaxScreenSize = 1000
)

// BlockConstraint bounds block sizes and spacing.
type BlockConstraint struct {
	// MinLimitedWidth is the width, border included, above which text wraps.
	MinLimitedWidth int `json:"min_limited_width" toml:"min_limited_width"`
	// MaxHeightPerWidth is reserved; sizing does not read it yet.
	MaxHeightPerWidth int `json:"max_height_per_width" toml:"max_height_per_width"`
	MaxWidthPerHeight int `json:"max_width_per_height" toml:"max_width_per_height"`
	// InterBlockDistance is the gap placement leaves between blocks.
	InterBlockDistance int `json:"inter_block_distance" toml:"inter_block_distance"`
}

// MaxWidthForHeight returns the widest box allowed for height h.
func (c BlockConstraint) MaxWidthForHeight(h int) int {
	return max(h*c.MaxWidthPerHeight, c.MinLimitedWidth)
}

// MaxHeightForWidth returns the tallest box allowed for width w.
func (c BlockConstraint) MaxHeightForWidth(w int) int {
	return w * c.MaxHeightPerWidth
}

// ConnectionConstraint bounds routed paths.
//
// MinLength and MaxLength are validated but reserved: the router does not
// enforce path lengths yet. See [LayoutConstraint.Reserved].
type ConnectionConstraint struct {
	MinLength int `json:"min_length" toml:"min_length"`
	// MaxLength of 0 means unbounded.
	MaxLength int `json:"max_length" toml:"max_length"`
	// BoxDistance is the clearance a path keeps from blocks it does not connect.
	BoxDistance int `json:"box_distance" toml:"box_distance"`
}

// LayoutConstraint bundles every constraint the router needs.
// MaxWidth and MaxHeight bound the search grid.
type LayoutConstraint struct {
	Connection ConnectionConstraint `json:"connection" toml:"connection"`
	Block      BlockConstraint      `json:"block" toml:"block"`
	MaxWidth   int                  `json:"max_width" toml:"max_width"`
	MaxHeight  int                  `json:"max_height" toml:"max_height"`
}

// DefaultBlockConstraint returns {20, 1, 10, 5}.
func DefaultBlockConstraint() BlockConstraint {
	return BlockConstraint{
		MinLimitedWidth:    DefaultMinLimitedWidth,
		MaxHeightPerWidth:  DefaultMaxHeightPerWidth,
		MaxWidthPerHeight:  DefaultMaxWidthPerHeight,
		InterBlockDistance: DefaultInterBlockDistance,
	}
}

// DefaultConnectionConstraint returns {1, 0, 1}.
func DefaultConnectionConstraint() ConnectionConstraint {
	return ConnectionConstraint{
		MinLength:   DefaultMinLength,
		MaxLength:   DefaultMaxLength,
		BoxDistance: DefaultBoxDistance,
	}
}

// DefaultConstraint returns the default constraints on a 50x50 grid.
func DefaultConstraint() LayoutConstraint {
	return LayoutConstraint{
		Connection: DefaultConnectionConstraint(),
		Block:      DefaultBlockConstraint(),
		MaxWidth:   DefaultScreenWidth,
		MaxHeight:  DefaultScreenHeight,
	}
}

// Validate reports the first constraint that cannot produce a layout.
func (c BlockConstraint) Validate() error {
	if c.MinLimitedWidth < 5 {
		return errs.New(errs.ErrCodeInvalidConfig, "min_limited_width must be at least 5, got %d", c.MinLimitedWidth)
	}
	if c.MaxHeightPerWidth < 0 || c.MaxWidthPerHeight < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "block ratios must not be negative")
	}
	if c.InterBlockDistance < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "inter_block_distance must not be negative, got %d", c.InterBlockDistance)
	}
	return nil
}

// Validate reports the first constraint that cannot produce a layout.
func (c ConnectionConstraint) Validate() error {
	if c.MinLength < 0 || c.MaxLength < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "connection lengths must not be negative")
	}
	if c.MaxLength > 0 && c.MaxLength < c.MinLength {
		return errs.New(errs.ErrCodeInvalidConfig, "max_length %d is below min_length %d", c.MaxLength, c.MinLength)
	}
	if c.BoxDistance < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "box_distance must not be negative, got %d", c.BoxDistance)
	}
	return nil
}

// Validate checks the nested constraints and the grid bounds. Grids grown by
// [LayoutConstraint.Cover] may exceed [MaxScreenSize].
func (c LayoutConstraint) Validate() error {
	if err := c.Block.Validate(); err != nil {
		return err
	}
	if err := c.Connection.Validate(); err != nil {
		return err
	}
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "grid must be positive, got %dx%d", c.MaxWidth, c.MaxHeight)
	}
	if c.MaxWidth > MaxScreenSize || c.MaxHeight > MaxScreenSize {
		return errs.New(errs.ErrCodeInvalidConfig, "grid must be at most %dx%d, got %dx%d",
			MaxScreenSize, MaxScreenSize, c.MaxWidth, c.MaxHeight)
	}
	return nil
}

// Reserved returns the config keys of c that are set away from their
// defaults but have no effect on layout.
func (c LayoutConstraint) Reserved() []string {
	var keys []string
	if c.Block.MaxHeightPerWidth != DefaultMaxHeightPerWidth {
		keys = append(keys, "max_height_per_width")
	}
	if c.Connection.MinLength != DefaultMinLength {
		keys = append(keys, "min_length")
	}
	if c.Connection.MaxLength != DefaultMaxLength {
		keys = append(keys, "max_length")
	}
	return keys
}

// Cover returns c with MaxWidth and MaxHeight grown so the grid holds every
// block plus margin cells on the right and bottom.
func (c LayoutConstraint) Cover(blocks []BlockDisplay, margin int) LayoutConstraint {
	ext := Extent(blocks)
	c.MaxWidth = max(c.MaxWidth, ext.Width+margin)
	c.MaxHeight = max(c.MaxHeight, ext.Height+margin)
	return c
}
