// Package pkg provides the core libraries for drawing HDL component symbols.
//
// # Overview
//
// Symbolator reads VHDL, Verilog and SystemVerilog sources, extracts the
// interface of every entity or module, and draws it as a schematic symbol:
// a box with inputs on the left, outputs on the right, grouped into
// sections. The pkg directory is organized into these areas:
//
//  1. [hdl] - Interface model, type flattening and canonical type strings
//  2. [hdl/parse] - Lexer and parsers for VHDL and Verilog sources
//  3. [symbol] - Symbol layout: pins, sections, widths and colors
//  4. [canvas] - Shape model, text metrics and SVG/PNG/JSON output
//  5. [pipeline] - Orchestration (discover → parse → build → render)
//  6. [cache] - Artifact cache backends (file, Redis, null)
//
// # Architecture
//
// The typical data flow:
//
//	HDL source
//	     ↓
//	[hdl/parse] package (entities with raw type expressions)
//	     ↓
//	[hdl] package (components with canonical type strings)
//	     ↓
//	[symbol] package (sections, pins, layout)
//	     ↓
//	[canvas] package (shapes → SVG/PNG/PDF/JSON)
//
// # Quick Start
//
// Parse a file and draw its first entity:
//
//	ents, _ := parse.ParseFile("fifo.vhd")
//	comp, _ := hdl.Convert(ents[0], hdl.ConvertOptions{})
//
//	m, _ := canvas.NewFaceMetrics()
//	sym := symbol.Build(comp, symbol.BuildOptions{Title: true, Style: symbol.DefaultStyle()})
//	svg := canvas.RenderSVG(symbol.Render(sym, m))
//
// Or let the pipeline do discovery, naming and caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	results, err := runner.Run(ctx, pipeline.Options{Inputs: []string{"rtl/"}, Output: "symbols/"})
//
// # Main Packages
//
// [config] - TOML configuration for output defaults, style and cache backend.
//
// [io] - Component JSON interchange, for interfaces that do not come from
// HDL sources.
//
// [observability] - Hooks for parse, render, cache and HTTP events.
//
// [errors] - Coded errors shared by the CLI and the HTTP service.
//
// [buildinfo] - Version information injected at link time.
package pkg
