package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boxroute/pkg/cache"
	"github.com/matzehuels/boxroute/pkg/graph"
	pkgio "github.com/matzehuels/boxroute/pkg/io"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and service use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options when its cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the layout and render stages with caching.
func (r *Runner) Execute(ctx context.Context, records []spec.Record, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)

	g, err := graph.Build(records)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.BlockCount = len(g.Blocks)
	result.Stats.ConnectionCount = len(g.Connections)

	// Stage 1: Layout
	layoutStart := time.Now()
	layoutKey, err := r.layoutKey(records, opts)
	if err != nil {
		return nil, err
	}
	l, hit := r.cachedLayout(ctx, layoutKey)
	if !hit {
		l, result.Route, err = r.computeLayout(ctx, g, opts, logger)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		if data, err := layout.Marshal(l); err == nil {
			_ = r.Cache.Set(ctx, layoutKey, data, TTLLayout)
		}
	}
	result.Layout = l
	result.CacheInfo.LayoutHit = hit
	result.Stats.RoutedCount = len(l.Connections)
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("computed layout",
		"blocks", result.Stats.BlockCount,
		"connections", result.Stats.ConnectionCount,
		"routed", result.Stats.RoutedCount,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderCached(ctx, layoutKey, g, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// layoutKey hashes the canonical JSON form of records together with the
// layout options.
func (r *Runner) layoutKey(records []spec.Record, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(&buf, records); err != nil {
		return "", fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	return r.Keyer.LayoutKey(cache.Hash(buf.Bytes()), opts.LayoutKeyOpts()), nil
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (layout.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return layout.Layout{}, false
	}
	l, err := layout.Unmarshal(data)
	if err != nil {
		return layout.Layout{}, false // recompute
	}
	return l, true
}

func (r *Runner) renderCached(ctx context.Context, layoutKey string, g *graph.Graph, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.RenderKey(layoutKey, cache.RenderKeyOpts{Format: format})
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := r.Render(ctx, g, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.RenderKey(layoutKey, cache.RenderKeyOpts{Format: format})
		_ = r.Cache.Set(ctx, key, data, TTLLayout)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
