package pipeline

import (
	"context"
	"time"

	pkgio "github.com/matzehuels/boxroute/pkg/io"
	"github.com/matzehuels/boxroute/pkg/observability"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// Parse reads diagram records from data. source names the input in logs
// and diagnostics.
func (r *Runner) Parse(ctx context.Context, data []byte, format pkgio.Format, source string) ([]spec.Record, error) {
	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, string(format), source)

	records, err := pkgio.Parse(data, format, source)
	duration := time.Since(start)
	observability.Pipeline().OnParseComplete(ctx, string(format), source, len(records), duration, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("parsed diagram",
		"source", source,
		"format", format,
		"records", len(records),
		"duration", duration)
	return records, nil
}

// ParseFile reads the diagram file at path, picking the reader by extension.
func (r *Runner) ParseFile(ctx context.Context, path string) ([]spec.Record, error) {
	start := time.Now()
	format := pkgio.FormatFromPath(path)
	observability.Pipeline().OnParseStart(ctx, string(format), path)

	records, err := pkgio.Import(path)
	duration := time.Since(start)
	observability.Pipeline().OnParseComplete(ctx, string(format), path, len(records), duration, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("parsed diagram",
		"source", path,
		"format", format,
		"records", len(records),
		"duration", duration)
	return records, nil
}
