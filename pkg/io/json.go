package io

import (
	"encoding/json"
	"fmt"
	"io"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// document is the JSON shape of a diagram.
type document struct {
	Blocks      []spec.BlockSpec      `json:"blocks"`
	Connections []spec.ConnectionSpec `json:"connections"`
}

// ReadJSON decodes a diagram document from r.
//
// Block names and texts are checked with the same rules as the text
// grammar so that every document can be written back with [WriteText].
// Unknown fields are rejected. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]spec.Record, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "decode")
	}
	if err := validate(doc.Blocks, doc.Connections); err != nil {
		return nil, err
	}
	return spec.Join(doc.Blocks, doc.Connections), nil
}

// WriteJSON encodes records as a diagram document.
// The output can be re-imported with [ReadJSON].
func WriteJSON(w io.Writer, records []spec.Record) error {
	blocks, conns := spec.Split(records)
	doc := document{
		Blocks:      append([]spec.BlockSpec{}, blocks...),
		Connections: append([]spec.ConnectionSpec{}, conns...),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func validate(blocks []spec.BlockSpec, conns []spec.ConnectionSpec) error {
	for i, b := range blocks {
		if err := errs.ValidateIdentifier(b.Name); err != nil {
			return errs.Wrap(errs.ErrCodeParse, err, "block %d", i)
		}
		if err := errs.ValidateText(b.Text); err != nil {
			return errs.Wrap(errs.ErrCodeParse, err, "block %s", b.Name)
		}
	}
	for i, c := range conns {
		for _, name := range []string{c.Start, c.End} {
			if err := errs.ValidateIdentifier(name); err != nil {
				return errs.Wrap(errs.ErrCodeParse, err, "connection %d", i)
			}
		}
	}
	return nil
}
