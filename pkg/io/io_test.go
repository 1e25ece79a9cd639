package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
)

func TestReadJSONNormalizes(t *testing.T) {
	in := `{"components": [{
		"name": "fifo",
		"generics": [{"name": "DEPTH", "data_type": "natural", "default_value": "16"}],
		"ports": [
			{"name": "clk", "mode": "input", "data_type": "std_logic"},
			{"name": "dout", "mode": "Buffer", "data_type": "std_logic_vector(7 downto 0)"},
			{"name": "sda", "mode": "inout"}
		],
		"sections": {"0": "clocks|Clocking", "1": ""}
	}]}`

	got, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)

	want := []hdl.Component{{
		Name:     "fifo",
		Generics: []hdl.Parameter{{Name: "DEPTH", Mode: hdl.ModeIn, DataType: "natural", DefaultValue: "16"}},
		Ports: []hdl.Parameter{
			{Name: "clk", Mode: hdl.ModeIn, DataType: "std_logic"},
			{Name: "dout", Mode: hdl.ModeOut, DataType: "std_logic_vector[7:0]"},
			{Name: "sda", Mode: hdl.ModeInOut},
		},
		Sections: map[int]string{0: "clocks|Clocking", 1: ""},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadJSON mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONRangeTypes(t *testing.T) {
	in := `{"components": [{"name": "cnt", "ports": [{"name": "q", "mode": "out", "data_type": "integer range 0 to 255"}]}]}`
	got, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "integer[0→255]", got[0].Ports[0].DataType)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"components": [`},
		{"unknown field", `{"components": [], "graph": {}}`},
		{"missing component name", `{"components": [{"ports": []}]}`},
		{"missing port name", `{"components": [{"name": "a", "ports": [{"mode": "in"}]}]}`},
		{"bad mode", `{"components": [{"name": "a", "ports": [{"name": "x", "mode": "linkage"}]}]}`},
		{"section out of range", `{"components": [{"name": "a", "ports": [{"name": "x"}], "sections": {"3": "s"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Equal(t, errs.ErrCodeInvalidInput, errs.GetCode(err))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	comps := []hdl.Component{
		{
			Name: "adder",
			Ports: []hdl.Parameter{
				{Name: "a", Mode: hdl.ModeIn, DataType: "unsigned[W-1:0]"},
				{Name: "s", Mode: hdl.ModeOut, DataType: "unsigned[W:0]"},
			},
			Generics: []hdl.Parameter{{Name: "W", Mode: hdl.ModeIn, DataType: "integer", DefaultValue: "8"}},
			Sections: map[int]string{1: "result|Result"},
		},
		{
			Name:  "inverter",
			Ports: []hdl.Parameter{{Name: "x", Mode: hdl.ModeIn}, {Name: "y", Mode: hdl.ModeOut}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, comps))
	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(comps, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, `{"components": []}`, buf.String())
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ifaces.json")
	comps := []hdl.Component{{Name: "buf", Ports: []hdl.Parameter{{Name: "i", Mode: hdl.ModeIn}}}}

	require.NoError(t, ExportJSON(path, comps))
	got, err := ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, comps, got)

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, errs.ErrCodeInvalidPath, errs.GetCode(err))
}
