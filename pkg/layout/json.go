package layout

import (
	"encoding/json"

	errs "github.com/matzehuels/boxroute/pkg/errors"
)

// Marshal encodes a layout as indented JSON.
func Marshal(l Layout) ([]byte, error) {
	if l.Blocks == nil {
		l.Blocks = []BlockDisplay{}
	}
	if l.Connections == nil {
		l.Connections = []ConnectionDisplay{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal decodes a layout written by [Marshal].
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode layout")
	}
	return l, nil
}
