package io

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// hclFile is the top-level structure of a diagram file for decoding.
type hclFile struct {
	Blocks      []*hclBlock      `hcl:"block,block"`
	Connections []*hclConnection `hcl:"connection,block"`
}

type hclBlock struct {
	Name  string `hcl:"name,label"`
	Text  string `hcl:"text"`
	Color string `hcl:"color,optional"`
}

type hclConnection struct {
	From  string `hcl:"from"`
	To    string `hcl:"to"`
	Kind  string `hcl:"kind,optional"`
	Color string `hcl:"color,optional"`
}

// ReadHCL parses an HCL diagram. filename is used in diagnostics only.
//
// All block declarations come before all connections in the returned
// records, matching the way the graph builder partitions them anyway.
func ReadHCL(data []byte, filename string) ([]spec.Record, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errs.Wrap(errs.ErrCodeParse, diags, "failed to parse HCL file %s", filename)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, errs.Wrap(errs.ErrCodeParse, diags, "failed to decode HCL file %s", filename)
	}

	blocks := make([]spec.BlockSpec, 0, len(parsed.Blocks))
	for _, b := range parsed.Blocks {
		color, err := parseColor(b.Color)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeParse, err, "block %s", b.Name)
		}
		blocks = append(blocks, spec.BlockSpec{Name: b.Name, Text: b.Text, Color: color})
	}

	conns := make([]spec.ConnectionSpec, 0, len(parsed.Connections))
	for _, c := range parsed.Connections {
		cs := spec.ConnectionSpec{Start: c.From, End: c.To}
		var err error
		if c.Kind != "" {
			if cs.Kind, err = spec.ParseConnectionKind(c.Kind); err != nil {
				return nil, errs.Wrap(errs.ErrCodeParse, err, "connection %s -> %s", c.From, c.To)
			}
		}
		if cs.Color, err = parseColor(c.Color); err != nil {
			return nil, errs.Wrap(errs.ErrCodeParse, err, "connection %s -> %s", c.From, c.To)
		}
		conns = append(conns, cs)
	}

	if err := validate(blocks, conns); err != nil {
		return nil, err
	}
	return spec.Join(blocks, conns), nil
}

func parseColor(s string) (spec.Coloring, error) {
	if s == "" {
		return spec.Default, nil
	}
	return spec.ParseColoring(s)
}
