// Package cli implements the boxroute command-line interface.
//
// This package provides commands for laying out diagrams of text boxes and
// connections, drawing them in the terminal or as files, exporting the block
// graph to Graphviz, and serving layouts over HTTP. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Lay out a diagram and draw it as text, ANSI, JSON, DOT or SVG
//   - layout: Write block positions and connection paths as layout.json
//   - check: Report whether every connection can be routed
//   - dot: Export the block graph as DOT or SVG
//   - view: Browse a large drawing in an interactive viewer
//   - serve: Run the HTTP layout service
//   - config: Inspect the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/boxroute/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:]); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a stderr-style logger for w at level, stamping each line
// with "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command and logs its outcome as structured fields.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, rounded to milliseconds:
//
//	14:32:01.45 INFO rendered diagram blocks=3 routed=2/2 elapsed=41ms
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

// routeFields are the progress fields every routing command reports.
func routeFields(blocks, routed, total int) []any {
	return []any{"blocks", blocks, "routed", fmt.Sprintf("%d/%d", routed, total)}
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() when ctx
// carries none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
