// Package io provides JSON import and export for component interfaces.
//
// # Overview
//
// This package lets tools that already know a module's interface, such as
// an IP catalog or a netlist extractor, hand it to symbolator without
// writing HDL. The same format is written by `symbolator inspect --json`,
// so parsed interfaces round-trip:
//
//	symbolator inspect --json rtl/ > ifaces.json
//	symbolator render ifaces.json -o symbols/
//
// # JSON Format
//
// A single object with a "components" array:
//
//	{
//	  "components": [
//	    {
//	      "name": "fifo",
//	      "generics": [{"name": "DEPTH", "mode": "in", "data_type": "natural", "default_value": "16"}],
//	      "ports": [
//	        {"name": "clk", "mode": "in", "data_type": "std_logic"},
//	        {"name": "dout", "mode": "output", "data_type": "std_logic_vector(7 downto 0)"}
//	      ],
//	      "sections": {"0": "clocks|Clocking", "1": "Data"}
//	    }
//	  ]
//	}
//
// Required: a component "name" and a "name" for every port and generic.
// Modes accept the same synonyms as HDL sources ("input", "buffer", ...)
// and are normalized on import; types are canonicalized, so
// "std_logic_vector(7 downto 0)" is read as "std_logic_vector[7:0]".
// Section keys are port indices; an index past the last port is an error.
//
// # Import
//
// Use [ImportJSON] to read a file, or [ReadJSON] for any io.Reader.
//
// # Export
//
// Use [ExportJSON] to write a file, or [WriteJSON] for any io.Writer.
// Exported components are already normalized, so importing them again
// yields identical values.
package io
