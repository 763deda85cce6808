package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxroute/pkg/buildinfo"
	"github.com/matzehuels/boxroute/pkg/cache"
	errs "github.com/matzehuels/boxroute/pkg/errors"
	pkgio "github.com/matzehuels/boxroute/pkg/io"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/observability"
	"github.com/matzehuels/boxroute/pkg/pipeline"
)

const (
	// maxRequestBytes bounds the size of a layout request body.
	maxRequestBytes = 1 << 20

	// requestTimeout bounds a single layout computation.
	requestTimeout = 30 * time.Second

	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command that runs the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Endpoints:
  POST /v1/layout   lay out a diagram and return the requested artifacts
  GET  /healthz     liveness check with build information

Layouts are kept in an in-memory LRU cache sized by [server] cache_entries,
so repeated requests for the same diagram skip routing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				file.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), file.Server.Addr, file.Server.CacheEntries, pipeline.OptionsFromConfig(file))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, cacheEntries int, base pipeline.Options) error {
	runner := pipeline.NewRunner(cache.NewMemoryCache(cacheEntries), nil, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, base, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("layout service listening", "addr", addr, "cache_entries", cacheEntries)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down layout service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	Diagram string           `json:"diagram"`
	Format  string           `json:"format,omitempty"` // input format, default text
	Options pipeline.Options `json:"options"`
}

type layoutStats struct {
	Blocks      int   `json:"blocks"`
	Connections int   `json:"connections"`
	Routed      int   `json:"routed"`
	LayoutMS    int64 `json:"layout_ms"`
	RenderMS    int64 `json:"render_ms"`
}

// layoutResponse is the answer to POST /v1/layout.
type layoutResponse struct {
	RunID     string            `json:"run_id"`
	Complete  bool              `json:"complete"`
	Cached    bool              `json:"cached"`
	Stats     layoutStats       `json:"stats"`
	Artifacts map[string]string `json:"artifacts"`
}

// healthResponse is the answer to GET /healthz.
type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
}

// newServer builds the service router. base holds the configured defaults
// that request options fall back to.
func newServer(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) http.Handler {
	s := &server{runner: runner, base: base, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/layout", s.handleLayout)

	return r
}

// logRequests logs every request and reports it to the server hooks.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, status, duration)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", duration)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Current()})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	format := pkgio.Format(req.Format)
	if format == "" {
		format = pkgio.FormatText
	}
	records, err := s.runner.Parse(ctx, []byte(req.Diagram), format, "request")
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := mergeOptions(s.base, req.Options)
	opts.Logger = s.logger.With("request", middleware.GetReqID(r.Context()))
	result, err := s.runner.Execute(ctx, records, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := layoutResponse{
		RunID:    result.RunID,
		Complete: result.Complete(),
		Cached:   result.CacheInfo.LayoutHit,
		Stats: layoutStats{
			Blocks:      result.Stats.BlockCount,
			Connections: result.Stats.ConnectionCount,
			Routed:      result.Stats.RoutedCount,
			LayoutMS:    result.Stats.LayoutTime.Milliseconds(),
			RenderMS:    result.Stats.RenderTime.Milliseconds(),
		},
		Artifacts: make(map[string]string, len(result.Artifacts)),
	}
	for format, data := range result.Artifacts {
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("layout request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: errs.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// mergeOptions fills the unset fields of req from base.
func mergeOptions(base, req pipeline.Options) pipeline.Options {
	out := req
	if out.Placement == "" {
		out.Placement = base.Placement
	}
	if out.Width == 0 {
		out.Width = base.Width
	}
	if out.Height == 0 {
		out.Height = base.Height
	}
	if out.Block == (layout.BlockConstraint{}) {
		out.Block = base.Block
	}
	if out.Connection == (layout.ConnectionConstraint{}) {
		out.Connection = base.Connection
	}
	if out.Policy == "" {
		out.Policy = base.Policy
	}
	if out.MaxAttempts == 0 {
		out.MaxAttempts = base.MaxAttempts
	}
	if out.Penalty == 0 {
		out.Penalty = base.Penalty
	}
	if len(out.Formats) == 0 {
		out.Formats = base.Formats
	}
	return out
}
