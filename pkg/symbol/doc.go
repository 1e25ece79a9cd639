// Package symbol lays out schematic symbols for HDL components.
//
// A [hdl.Component] becomes an [HdlSymbol] through [Build]: ports are
// classified into [Pin] values, grouped into [PinSection] bands at the
// component's section markers, and stacked into [Symbol] outlines. Drawing
// emits primitives onto a [canvas.Group]; text widths are taken from a
// [canvas.TextMeasurer] so the layout matches the fonts of the output.
//
//	h := symbol.Build(comp, symbol.BuildOptions{Title: true})
//	c := symbol.Render(h, metrics)
//	svg := canvas.RenderSVG(c)
//
// Layout is deterministic and keeps no state between calls. Section fill
// colors are a function of the section index, and pin markers live on the
// canvas they are drawn on.
package symbol
