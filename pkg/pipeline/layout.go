package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxroute/pkg/graph"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/layout/route"
	"github.com/matzehuels/boxroute/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout sizes and places the blocks of g and routes its
// connections. It does not consult the cache.
func (r *Runner) ComputeLayout(ctx context.Context, g *graph.Graph, opts Options) (layout.Layout, route.Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return layout.Layout{}, route.Result{}, err
	}
	return r.computeLayout(ctx, g, opts, opts.Logger)
}

func (r *Runner) computeLayout(ctx context.Context, g *graph.Graph, opts Options, logger *log.Logger) (layout.Layout, route.Result, error) {
	if keys := opts.Constraint().Reserved(); len(keys) > 0 {
		logger.Warn("ignoring reserved constraint settings", "keys", keys)
	}
	blocks, err := placeBlocks(ctx, g, opts)
	if err != nil {
		return layout.Layout{}, route.Result{}, err
	}
	logger.Debug("placed blocks", "placement", opts.Placement, "blocks", len(blocks))

	res, err := routeConnections(ctx, g, blocks, opts, logger)
	if err != nil {
		return layout.Layout{}, res, err
	}
	if len(res.Unrouted) > 0 {
		logger.Warn("some connections could not be routed",
			"policy", opts.Policy,
			"unrouted", len(res.Unrouted),
			"exhausted", res.Exhausted)
	}
	return layout.Layout{Blocks: blocks, Connections: res.Connections}, res, nil
}

// placeBlocks sizes every block and positions it with the configured placer.
func placeBlocks(ctx context.Context, g *graph.Graph, opts Options) ([]layout.BlockDisplay, error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Placement, len(g.Blocks))

	placer, err := opts.Placer()
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, opts.Placement, time.Since(start), err)
		return nil, err
	}
	if rows, ok := placer.(layout.ConnectivityRows); ok {
		rows.Order = g.ByConnectionCount()
		placer = rows
	}

	blocks := layout.SizeBlocks(g.BlockSpecs(), opts.Block)
	placer.Place(blocks, g.Adjacency())

	observability.Pipeline().OnLayoutComplete(ctx, opts.Placement, time.Since(start), nil)
	return blocks, nil
}

// routeConnections runs the router over a grid that covers every block.
func routeConnections(ctx context.Context, g *graph.Graph, blocks []layout.BlockDisplay, opts Options, logger *log.Logger) (route.Result, error) {
	policy, err := opts.RoutePolicy()
	if err != nil {
		return route.Result{}, err
	}
	conns := g.ConnectionSpecs()

	start := time.Now()
	observability.Pipeline().OnRouteStart(ctx, policy.Name, len(conns))

	margin := opts.Connection.BoxDistance + 2
	router := route.New(policy, opts.Constraint().Cover(blocks, margin))
	router.MaxAttempts = opts.MaxAttempts
	router.Logger = logger

	res, err := router.Route(ctx, blocks, conns)
	observability.Pipeline().OnRouteComplete(ctx, policy.Name, len(res.Connections), time.Since(start), err)
	if err != nil {
		return res, err
	}

	logger.Info("routed connections",
		"policy", policy.Name,
		"routed", len(res.Connections),
		"attempts", res.Attempts,
		"searches", res.Searches,
		"duration", res.Duration)
	return res, nil
}
