package route

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/layout/memo"
	"github.com/matzehuels/boxroute/pkg/layout/pathfind"
	"github.com/matzehuels/boxroute/pkg/observability"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// DefaultMaxAttempts bounds the anchor assignments a strict search tries
// before giving up.
const DefaultMaxAttempts = 20000

// Router routes connections between positioned blocks.
//
// A Router is not safe for concurrent use; create one per layout.
type Router struct {
	Policy     Policy
	Constraint layout.LayoutConstraint
	// MaxAttempts bounds a strict search; 0 means [DefaultMaxAttempts].
	MaxAttempts int
	// Memo caches paths across routing calls. Nil gets a fresh cache per call.
	// Cached paths are checked against the current blocks before reuse, so a
	// Memo may be shared between layouts.
	Memo *memo.Memoizer
	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger
}

// New returns a Router with the given policy and constraint.
func New(policy Policy, c layout.LayoutConstraint) *Router {
	return &Router{Policy: policy, Constraint: c}
}

// Result is the outcome of one routing call.
type Result struct {
	// Connections holds one display per routed connection, in input order.
	// A strict search that fails leaves it empty; a permissive pass keeps
	// everything routed before the first failure.
	Connections []layout.ConnectionDisplay
	// Skipped lists connections naming a block that is not in the layout.
	Skipped []spec.ConnectionSpec
	// Unrouted lists connections the router found no path for.
	Unrouted []spec.ConnectionSpec
	// Faults holds conversion errors for connections whose path could not be
	// drawn. Those connections are missing from Connections.
	Faults []error

	Attempts  int  // anchor assignments tried
	Exhausted bool // the strict search hit MaxAttempts
	Searches  int  // A* searches run
	Memo      memo.Stats
	Duration  time.Duration
}

// Complete reports whether every connection was routed and drawn.
func (r Result) Complete(total int) bool {
	return len(r.Connections)+len(r.Skipped) == total && len(r.Faults) == 0
}

// routed pairs a connection with its grid path.
type routed struct {
	conn spec.ConnectionSpec
	path []layout.Position
}

// Route finds a path for every connection in conns.
//
// Infeasibility is not an error: the result is empty (strict) or partial
// (permissive). The only error is ctx's, when it ends before routing
// finishes; the A* searches observe it too.
func (r *Router) Route(ctx context.Context, blocks []layout.BlockDisplay, conns []spec.ConnectionSpec) (Result, error) {
	start := time.Now()
	logger := r.logger()

	m := r.Memo
	if m == nil {
		m = memo.New()
	}
	before := m.Stats()

	policy := r.Policy
	if policy.Cost == nil {
		policy = Strict
	}

	s := &search{
		ctx:         ctx,
		constraint:  r.Constraint,
		blocks:      blocks,
		byName:      make(map[string]int, len(blocks)),
		finder:      pathfind.NewFinder(policy.Cost),
		memo:        m,
		maxAttempts: r.MaxAttempts,
		logger:      logger,
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = DefaultMaxAttempts
	}
	for i, b := range blocks {
		s.byName[b.Name] = i
	}

	var res Result
	var known []spec.ConnectionSpec
	for _, c := range conns {
		if s.has(c.Start) && s.has(c.End) {
			known = append(known, c)
			continue
		}
		logger.Warn("skipping connection with unknown block", "connection", c.String())
		res.Skipped = append(res.Skipped, c)
	}

	logger.Debug("routing connections", "policy", policy.Name, "connections", len(known), "blocks", len(blocks))

	var paths []routed
	var finished bool
	if policy.Backtrack {
		paths, finished = s.solve(known, nil, 0)
	} else {
		paths, res.Unrouted = s.greedy(known)
		finished = len(res.Unrouted) == 0
	}
	if !finished && s.err == nil {
		// The deadline may pass during the last search, after the final
		// attempt check.
		s.err = ctx.Err()
	}
	if policy.Backtrack && !finished && s.err == nil {
		res.Unrouted = known
	}

	res.Attempts = s.attempts
	res.Exhausted = s.exhausted
	res.Searches = s.finder.Searches()
	res.Memo = delta(before, m.Stats())
	res.Duration = time.Since(start)

	if s.err != nil {
		return res, s.err
	}
	if s.exhausted {
		logger.Warn("routing search exhausted", "attempts", s.attempts, "limit", s.maxAttempts)
		observability.Route().OnExhausted(ctx, s.attempts)
		res.Unrouted = known
	}

	for _, p := range paths {
		d, err := layout.ConnectionFromPath(p.conn, p.path)
		if err != nil {
			logger.Error("dropping connection", "connection", p.conn.String(), "err", err)
			res.Faults = append(res.Faults, err)
			continue
		}
		res.Connections = append(res.Connections, d)
	}

	logger.Debug("routed connections",
		"routed", len(res.Connections),
		"attempts", res.Attempts,
		"searches", res.Searches,
		"cache", res.Memo.String(),
		"duration", res.Duration)
	return res, nil
}

func (r *Router) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}

func delta(before, after memo.Stats) memo.Stats {
	return memo.Stats{
		Hits:     after.Hits - before.Hits,
		Misses:   after.Misses - before.Misses,
		Failures: after.Failures - before.Failures,
		Pairs:    after.Pairs,
		Paths:    after.Paths,
	}
}
