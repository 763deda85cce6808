package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// SyntaxError describes malformed text input.
type SyntaxError struct {
	Line int // 1-based
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

func syntaxErr(line int, format string, args ...any) error {
	se := &SyntaxError{Line: line, Msg: fmt.Sprintf(format, args...)}
	return errs.Wrap(errs.ErrCodeParse, se, "parse diagram")
}

// ReadText parses the text grammar from r.
//
// Parsing stops at the first malformed record; the error wraps a
// [*SyntaxError]. ReadText does not close r.
func ReadText(r io.Reader) ([]spec.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []spec.Record
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "box" {
			b, err := parseBoxHeader(fields, line)
			if err != nil {
				return nil, err
			}
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, errs.Wrap(errs.ErrCodeParse, err, "read diagram")
				}
				return nil, syntaxErr(line, "box %s has no text line", b.Name)
			}
			line++
			b.Text = strings.TrimSpace(sc.Text())
			if err := errs.ValidateText(b.Text); err != nil {
				return nil, syntaxErr(line, "%s", errs.UserMessage(err))
			}
			records = append(records, spec.BlockRecord(b))
			continue
		}

		c, err := parseConnection(fields, line)
		if err != nil {
			return nil, err
		}
		records = append(records, spec.ConnectionRecord(c))
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "read diagram")
	}
	return records, nil
}

// ParseText parses the text grammar from a string.
func ParseText(s string) ([]spec.Record, error) {
	return ReadText(strings.NewReader(s))
}

// box text <name> [color <c>]
func parseBoxHeader(f []string, line int) (spec.BlockSpec, error) {
	if len(f) < 3 || f[1] != "text" {
		return spec.BlockSpec{}, syntaxErr(line, `expected "box text <name>"`)
	}
	b := spec.BlockSpec{Name: f[2]}
	if err := ident(b.Name, line); err != nil {
		return spec.BlockSpec{}, err
	}
	color, err := trailingColor(f[3:], line)
	if err != nil {
		return spec.BlockSpec{}, err
	}
	b.Color = color
	return b, nil
}

// [generic|singular|dual] connection <a> <b> [color <c>]
func parseConnection(f []string, line int) (spec.ConnectionSpec, error) {
	var c spec.ConnectionSpec
	if f[0] != "connection" {
		kind, err := spec.ParseConnectionKind(f[0])
		if err != nil {
			return c, syntaxErr(line, "expected box or connection, got %q", f[0])
		}
		c.Kind = kind
		f = f[1:]
	}
	if len(f) < 3 || f[0] != "connection" {
		return c, syntaxErr(line, `expected "connection <start> <end>"`)
	}
	c.Start, c.End = f[1], f[2]
	if err := ident(c.Start, line); err != nil {
		return c, err
	}
	if err := ident(c.End, line); err != nil {
		return c, err
	}
	color, err := trailingColor(f[3:], line)
	if err != nil {
		return c, err
	}
	c.Color = color
	return c, nil
}

func trailingColor(rest []string, line int) (spec.Coloring, error) {
	switch {
	case len(rest) == 0:
		return spec.Default, nil
	case len(rest) == 2 && rest[0] == "color":
		c, err := spec.ParseColoring(rest[1])
		if err != nil {
			return spec.Default, syntaxErr(line, "%v", err)
		}
		return c, nil
	default:
		return spec.Default, syntaxErr(line, "unexpected %q", strings.Join(rest, " "))
	}
}

func ident(name string, line int) error {
	if err := errs.ValidateIdentifier(name); err != nil {
		return syntaxErr(line, "%s", errs.UserMessage(err))
	}
	return nil
}

// WriteText writes records in the text grammar, one blank line between
// records.
func WriteText(w io.Writer, records []spec.Record) error {
	bw := bufio.NewWriter(w)
	for i, r := range records {
		if i > 0 {
			bw.WriteByte('\n')
		}
		switch {
		case r.Block != nil:
			bw.WriteString("box text " + r.Block.Name + colorSuffix(r.Block.Color) + "\n")
			bw.WriteString(r.Block.Text + "\n")
		case r.Connection != nil:
			c := r.Connection
			if c.Kind != spec.Generic {
				bw.WriteString(c.Kind.String() + " ")
			}
			bw.WriteString("connection " + c.Start + " " + c.End + colorSuffix(c.Color) + "\n")
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	return nil
}

func colorSuffix(c spec.Coloring) string {
	if c == spec.Default {
		return ""
	}
	return " color " + c.String()
}
