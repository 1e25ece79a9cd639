// Package parse extracts module interfaces from VHDL, Verilog and
// SystemVerilog source.
//
// Only declarations are read: VHDL entity and component declarations and
// Verilog module headers (plus the body direction declarations of
// Verilog-1995 style modules). Architectures, statements and expressions
// outside of types and defaults are skipped without being understood.
//
// Section metacomments ("--# {{label}}" in VHDL, "//# {{label}}" in
// Verilog) inside a port list are returned in [hdl.Entity.Sections], keyed
// by the index of the first port of the section.
//
//	ents, err := parse.Parse(hdl.LangVHDL, src)
//
// Type expressions the parser cannot structure come back as
// [hdl.Aggregate] values so that conversion can degrade them.
package parse

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
)

var extensions = map[string]hdl.Language{
	".vhd":  hdl.LangVHDL,
	".vhdl": hdl.LangVHDL,
	".v":    hdl.LangVerilog,
	".vlog": hdl.LangVerilog,
	".sv":   hdl.LangSystemVerilog,
}

// Parse returns every entity declared in src.
func Parse(lang hdl.Language, src []byte) ([]hdl.Entity, error) {
	switch lang {
	case hdl.LangVHDL:
		return parseVHDL(src)
	case hdl.LangVerilog, hdl.LangSystemVerilog:
		return parseVerilog(lang, src)
	}
	return nil, errs.New(errs.ErrCodeInvalidInput, "unsupported language %q", lang)
}

// Detect maps a file extension to its language.
func Detect(path string) (hdl.Language, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// ParseLanguage resolves a language name given on the command line.
func ParseLanguage(name string) (hdl.Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vhdl", "vhd":
		return hdl.LangVHDL, nil
	case "verilog", "v":
		return hdl.LangVerilog, nil
	case "systemverilog", "sv":
		return hdl.LangSystemVerilog, nil
	}
	return "", errs.New(errs.ErrCodeInvalidInput, "unknown language %q (want vhdl, verilog or systemverilog)", name)
}

// ParseFile parses one file, choosing the language from its extension.
// Files with an unrecognized extension yield no entities and no error.
func ParseFile(path string) ([]hdl.Entity, error) {
	lang, ok := Detect(path)
	if !ok {
		return nil, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", path)
	}
	ents, err := Parse(lang, src)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "%s", path)
	}
	return ents, nil
}

// Discover returns the HDL files under root. A file is returned as is
// when its language is known; a directory is walked recursively. The
// result is sorted and free of duplicates.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "invalid input source: %s", root)
	}
	if !info.IsDir() {
		if _, ok := Detect(root); !ok {
			return nil, nil
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := Detect(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "walk %s", root)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
