// Package pipeline provides the parse → layout → render pipeline for boxroute.
//
// This package implements the complete pipeline used by the CLI and the
// layout service. By centralizing it, both entry points apply the same
// defaults, logging and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read diagram records from text, JSON or HCL input
//  2. Layout: Build the graph, size and place blocks, route connections
//  3. Render: Generate output in various formats (text, ansi, json, dot, svg)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	records, err := runner.Parse(ctx, data, pkgio.FormatText, "diagram.box")
//	result, err := runner.Execute(ctx, records, pipeline.Options{Formats: []string{"text"}})
//	fmt.Print(string(result.Artifacts["text"]))
//
// Routing that cannot place every connection is not an error. Check
// [Result.Complete] or the route statistics in [Result.Route].
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxroute/pkg/cache"
	"github.com/matzehuels/boxroute/pkg/config"
	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/graph"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/layout/pathfind"
	"github.com/matzehuels/boxroute/pkg/layout/route"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatANSI = "ansi"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatText, FormatANSI, FormatJSON, FormatDOT, FormatSVG}

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatText

// TTLLayout bounds how long a cached layout is reused.
const TTLLayout = time.Hour

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for service requests; zero
// values mean defaults.
type Options struct {
	// Layout options
	Placement   string                      `json:"placement,omitempty"`
	Width       int                         `json:"width,omitempty"`
	Height      int                         `json:"height,omitempty"`
	Block       layout.BlockConstraint      `json:"block,omitzero"`
	Connection  layout.ConnectionConstraint `json:"connection,omitzero"`
	Policy      string                      `json:"policy,omitempty"`
	MaxAttempts int                         `json:"max_attempts,omitempty"`
	Penalty     int                         `json:"penalty,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// OptionsFromConfig maps a configuration file onto pipeline options.
func OptionsFromConfig(f config.File) Options {
	return Options{
		Placement:   f.Screen.Placement,
		Width:       f.Screen.Width,
		Height:      f.Screen.Height,
		Block:       f.Block,
		Connection:  f.Connection,
		Policy:      f.Router.Policy,
		MaxAttempts: f.Router.MaxAttempts,
		Penalty:     f.Router.Penalty,
	}
}

// SetDefaults fills every zero field with its default.
func (o *Options) SetDefaults() {
	if o.Placement == "" {
		o.Placement = layout.PlacementVertical
	}
	if o.Width == 0 {
		o.Width = layout.DefaultScreenWidth
	}
	if o.Height == 0 {
		o.Height = layout.DefaultScreenHeight
	}
	if o.Block == (layout.BlockConstraint{}) {
		o.Block = layout.DefaultBlockConstraint()
	}
	if o.Connection == (layout.ConnectionConstraint{}) {
		o.Connection = layout.DefaultConnectionConstraint()
	}
	if o.Policy == "" {
		o.Policy = route.Strict.Name
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = route.DefaultMaxAttempts
	}
	if o.Penalty == 0 {
		o.Penalty = pathfind.DefaultPenalty
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks options after [Options.SetDefaults].
func (o *Options) Validate() error {
	if err := o.Constraint().Validate(); err != nil {
		return err
	}
	if _, err := o.Placer(); err != nil {
		return err
	}
	if _, err := o.RoutePolicy(); err != nil {
		return err
	}
	if o.MaxAttempts < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_attempts must not be negative")
	}
	return ValidateFormats(o.Formats)
}

// Constraint returns the layout constraint for the options.
func (o *Options) Constraint() layout.LayoutConstraint {
	return layout.LayoutConstraint{
		Connection: o.Connection,
		Block:      o.Block,
		MaxWidth:   o.Width,
		MaxHeight:  o.Height,
	}
}

// Placer returns the configured placement strategy.
func (o *Options) Placer() (layout.Placer, error) {
	return layout.NewPlacer(o.Placement, o.Width, o.Block.InterBlockDistance)
}

// RoutePolicy returns the configured routing policy.
func (o *Options) RoutePolicy() (route.Policy, error) {
	p, err := route.ParsePolicy(o.Policy)
	if err != nil {
		return route.Policy{}, err
	}
	if !p.Backtrack && o.Penalty > 0 {
		p.Cost = pathfind.Permissive{Penalty: o.Penalty}
	}
	return p, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Policy:      fmt.Sprintf("%s/%d", o.Policy, o.Penalty),
		Placement:   o.Placement,
		MaxAttempts: o.MaxAttempts,
		Constraint:  o.Constraint(),
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and service responses.
	RunID string

	// Graph is the resolved block graph.
	Graph *graph.Graph

	// Layout holds the positioned blocks and routed connections.
	Layout layout.Layout

	// Route reports how routing went. It is zero when the layout came from
	// the cache.
	Route route.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Complete reports whether every connection of the graph was drawn.
func (r *Result) Complete() bool {
	return r.Graph != nil && len(r.Layout.Connections) == len(r.Graph.Connections)
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount      int
	ConnectionCount int
	RoutedCount     int
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}
