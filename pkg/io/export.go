package io

import (
	"bytes"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// Write encodes records in the given format. HCL output is not supported.
func Write(w io.Writer, records []spec.Record, format Format) error {
	switch format {
	case FormatText, "":
		return WriteText(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	default:
		return errs.New(errs.ErrCodeUnsupported, "cannot write %s diagrams", format)
	}
}

// Export writes records to path, choosing the writer with [FormatFromPath].
// The file is only created once encoding has succeeded.
func Export(path string, records []spec.Record) error {
	var buf bytes.Buffer
	if err := Write(&buf, records, FormatFromPath(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
