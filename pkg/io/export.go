package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/niosHD/symbolator/pkg/hdl"
)

type document struct {
	Components []hdl.Component `json:"components"`
}

// WriteJSON encodes comps as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(w io.Writer, comps []hdl.Component) error {
	if comps == nil {
		comps = []hdl.Component{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Components: comps}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes comps to a JSON file at path.
func ExportJSON(path string, comps []hdl.Component) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, comps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
