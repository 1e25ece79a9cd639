package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niosHD/symbolator/pkg/hdl"
)

var allModes = []hdl.Mode{hdl.ModeIn, hdl.ModeOut, hdl.ModeInOut}

func TestSideFor(t *testing.T) {
	assert.Equal(t, SideLeft, SideFor(hdl.ModeIn))
	assert.Equal(t, SideRight, SideFor(hdl.ModeOut))
	assert.Equal(t, SideRight, SideFor(hdl.ModeInOut))
	assert.Equal(t, "left", SideLeft.String())
	assert.Equal(t, "right", SideRight.String())
}

func TestIsClock(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"clk", true},
		{"CLK", true},
		{"clock", true},
		{"sys_clk", true},
		{"ClockEnable", true},
		{"adc_clock", true},
		{"clkdiv", true},
		{"block", false},
		{"blocks", false},
		{"ck", false},
		{"data", false},
		{"my_clk_en", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClock(tt.name, hdl.ModeIn))
			assert.False(t, IsClock(tt.name, hdl.ModeOut), "outputs are never clocks")
			assert.False(t, IsClock(tt.name, hdl.ModeInOut), "bidirectional pins are never clocks")
		})
	}
}

func TestIsBubble(t *testing.T) {
	for name, want := range map[string]bool{
		"rst_n":   true,
		"RST_N":   true,
		"cs_b":    true,
		"we_B":    true,
		"n_reset": false,
		"rstn":    false,
		"data_nb": false,
		"_n":      true,
	} {
		assert.Equal(t, want, IsBubble(name), name)
	}
}

func TestIsBus(t *testing.T) {
	tests := []struct {
		name, dataType string
		want           bool
	}{
		{"data", "std_logic_vector[7:0]", true},
		{"data", "[7:0]", true},
		{"data", "std_logic", false},
		{"data", "", false},
		{"addr[3:0]", "", true},
		{"bit[0]", "wire", true},
		{"a[0]b", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBus(tt.name, tt.dataType), "%s %q", tt.name, tt.dataType)
	}
}

func TestClassifySide(t *testing.T) {
	for _, m := range allModes {
		pin := Classify(hdl.Parameter{Name: "x", Mode: m}, true)
		if m == hdl.ModeIn {
			assert.Equal(t, SideLeft, pin.Side, m)
		} else {
			assert.Equal(t, SideRight, pin.Side, m)
		}
		assert.Equal(t, m == hdl.ModeInOut, pin.Bidir, m)
	}
}

func TestClassifyFlagsCombine(t *testing.T) {
	pin := Classify(hdl.Parameter{Name: "clk_n", Mode: hdl.ModeIn, DataType: "[1:0]"}, true)
	assert.Equal(t, Pin{
		Label:    "clk_n",
		Side:     SideLeft,
		Bubble:   true,
		Clocked:  true,
		Bus:      true,
		DataType: "[1:0]",
	}, pin)

	pin = Classify(hdl.Parameter{Name: "clk", Mode: hdl.ModeIn, DataType: "[1:0]"}, false)
	assert.True(t, pin.Clocked)
	assert.True(t, pin.Bus, "bus detection uses the type even when it is hidden")
	assert.Empty(t, pin.DataType)

	pin = Classify(hdl.Parameter{Name: "sda_n", Mode: hdl.ModeInOut}, true)
	assert.True(t, pin.Bubble)
	assert.True(t, pin.Bidir)
	assert.False(t, pin.Clocked)
}
