// Package hdl holds the language-neutral view of a hardware module interface.
//
// A parser produces [Entity] records whose port and generic types are
// expression trees ([Expr]). [Convert] flattens those trees into strings,
// normalizes port directions and canonicalizes range syntax, yielding a
// [Component] that the symbol layout engine consumes.
//
//	ents, _ := parse.Parse(hdl.LangVHDL, src)
//	comp, err := hdl.Convert(ents[0], hdl.ConvertOptions{Policy: hdl.TypePolicyDegrade})
//
// Everything in this package is pure: no I/O, no shared state.
package hdl

import (
	"strings"

	errs "github.com/niosHD/symbolator/pkg/errors"
)

// Mode is the canonical direction of a port or generic.
type Mode string

// Canonical modes. Dialect synonyms collapse onto these in [NormalizeMode].
const (
	ModeIn    Mode = "in"
	ModeOut   Mode = "out"
	ModeInOut Mode = "inout"
)

// NormalizeMode maps a direction keyword from any supported dialect onto a
// canonical [Mode]. Matching is case-insensitive.
func NormalizeMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "input":
		return ModeIn, nil
	case "out", "output", "buffer":
		return ModeOut, nil
	case "inout":
		return ModeInOut, nil
	}
	return "", errs.New(errs.ErrCodeInvalidInput, "unknown port direction %q", s)
}

// Parameter is one named, directioned, typed value: a port or a generic.
type Parameter struct {
	Name         string `json:"name"`
	Mode         Mode   `json:"mode"`
	DataType     string `json:"data_type,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
}

// Component is one module's identity with its ordered ports and generics.
//
// Sections maps a port index to the label of the section that starts there.
// A present key with an empty label is an unnamed section break.
type Component struct {
	Name     string         `json:"name"`
	Ports    []Parameter    `json:"ports"`
	Generics []Parameter    `json:"generics,omitempty"`
	Sections map[int]string `json:"sections,omitempty"`
}

// Language identifies the HDL dialect an entity was parsed from.
type Language string

// Supported languages.
const (
	LangVHDL          Language = "vhdl"
	LangVerilog       Language = "verilog"
	LangSystemVerilog Language = "systemverilog"
)

// Entity is a parsed module interface before type flattening.
type Entity struct {
	Name     string
	Language Language
	Ports    []PortDecl
	Generics []GenericDecl
	// Sections maps a port index to a metacomment section label.
	Sections map[int]string
}

// PortDecl is a port as produced by a parser.
type PortDecl struct {
	Name      string
	Direction string
	Type      Expr
	Default   string
}

// GenericDecl is a generic (VHDL) or parameter (Verilog) as produced by a parser.
type GenericDecl struct {
	Name    string
	Type    Expr
	Default string
}
