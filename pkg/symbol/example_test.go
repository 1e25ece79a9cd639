package symbol_test

import (
	"fmt"

	"github.com/niosHD/symbolator/pkg/canvas"
	"github.com/niosHD/symbolator/pkg/hdl"
	"github.com/niosHD/symbolator/pkg/symbol"
)

func ExampleBuild() {
	comp := hdl.Component{
		Name: "counter",
		Ports: []hdl.Parameter{
			{Name: "clk", Mode: hdl.ModeIn},
			{Name: "rst_n", Mode: hdl.ModeIn},
			{Name: "count", Mode: hdl.ModeOut, DataType: "unsigned(7 downto 0)"},
		},
	}
	h := symbol.Build(comp, symbol.BuildOptions{Title: true})

	sec := h.Symbols[0].Sections[0]
	for _, p := range sec.Pins {
		fmt.Printf("%-6s %-5s clock=%-5v bubble=%-5v bus=%v", p.Label, p.Side, p.Clocked, p.Bubble, p.Bus)
		if p.DataType != "" {
			fmt.Print(" ", p.DataType)
		}
		fmt.Println()
	}
	fmt.Printf("width: %.0f\n", h.Width(canvas.ApproxMetrics{}))
	// Output:
	// clk    left  clock=true  bubble=false bus=false
	// rst_n  left  clock=false bubble=true  bus=false
	// count  right clock=false bubble=false bus=true unsigned[7:0]
	// width: 100
}

func ExamplePartition() {
	ports := []hdl.Parameter{
		{Name: "clk", Mode: hdl.ModeIn},
		{Name: "addr", Mode: hdl.ModeIn},
		{Name: "data", Mode: hdl.ModeOut},
	}
	for _, s := range symbol.Partition(ports, map[int]string{0: "clocks|Clock", 1: "Bus"}) {
		class, label := symbol.ParseSectionLabel(s.Label)
		fmt.Printf("%q %q %d\n", class, label, len(s.Params))
	}
	// Output:
	// "clocks" "Clock" 1
	// "" "Bus" 2
}
