// Package io reads and writes diagram descriptions.
//
// # Formats
//
// Three input formats produce the same []spec.Record:
//
// The text grammar (.box, .txt), one record per line group:
//
//	box text api color cyan
//	Public API gateway
//
//	box text db
//	Postgres
//
//	singular connection api db color red
//
// A box header is followed by exactly one line of display text, which is
// trimmed. Connection kinds are generic (the default), singular and dual.
// Names are ASCII letters and digits. Blank lines between records are
// ignored.
//
// JSON documents (.json):
//
//	{
//	  "blocks": [{"name": "api", "text": "Public API gateway", "color": "cyan"}],
//	  "connections": [{"kind": "singular", "start": "api", "end": "db"}]
//	}
//
// HCL files (.hcl):
//
//	block "api" {
//	  text  = "Public API gateway"
//	  color = "cyan"
//	}
//
//	connection {
//	  from = "api"
//	  to   = "db"
//	  kind = "singular"
//	}
//
// # Import
//
// Use [Import] to read a file and pick the reader by extension, or call
// [ReadText], [ReadJSON] and [ReadHCL] directly. Every reader reports
// malformed input as an error coded [errors.ErrCodeParse]; the text reader
// also returns a [*SyntaxError] with the offending line.
//
// # Export
//
// [WriteText] and [WriteJSON] write records back out; [Export] picks the
// writer by extension. Text written by [WriteText] reads back identically.
//
// [errors.ErrCodeParse]: github.com/matzehuels/boxroute/pkg/errors.ErrCodeParse
package io
