package io

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// Format names an input or output encoding of a diagram.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks the format from a file extension: .box and .txt are
// text, .json is JSON and .hcl is HCL. Anything else is text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".hcl":
		return FormatHCL
	default:
		return FormatText
	}
}

// Parse decodes data in the given format. name is used in diagnostics.
func Parse(data []byte, format Format, name string) ([]spec.Record, error) {
	switch format {
	case FormatText, "":
		return ReadText(bytes.NewReader(data))
	case FormatJSON:
		return ReadJSON(bytes.NewReader(data))
	case FormatHCL:
		return ReadHCL(data, name)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown input format %q", format)
	}
}

// Import reads the diagram file at path, choosing the reader with
// [FormatFromPath]. A missing file is reported as [errs.ErrCodeFileNotFound].
func Import(path string) ([]spec.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	records, err := Parse(data, FormatFromPath(path), path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
