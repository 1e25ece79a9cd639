package hdl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/niosHD/symbolator/pkg/errors"
)

func slv(hi, lo string) Expr {
	return Index{Base: Ident{"std_logic_vector"}, Index: BinOp{OpDownto, IntLit{hi}, IntLit{lo}}}
}

func TestNormalizeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"in", ModeIn, false},
		{"IN", ModeIn, false},
		{"input", ModeIn, false},
		{"out", ModeOut, false},
		{"Output", ModeOut, false},
		{"buffer", ModeOut, false},
		{"inout", ModeInOut, false},
		{"linkage", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert(t *testing.T) {
	ent := Entity{
		Name: "fifo",
		Generics: []GenericDecl{
			{Name: "DEPTH", Type: Ident{"natural"}, Default: "16"},
		},
		Ports: []PortDecl{
			{Name: "clk", Direction: "in", Type: Ident{"std_logic"}},
			{Name: "din", Direction: "input", Type: slv("7", "0")},
			{Name: "dout", Direction: "OUT", Type: slv("7", "0")},
			{Name: "sda", Direction: "inout", Type: Ident{"std_logic"}},
		},
		Sections: map[int]string{0: "clocks|Clocks", 1: "data|"},
	}

	got, err := Convert(ent, ConvertOptions{})
	require.NoError(t, err)

	want := Component{
		Name: "fifo",
		Generics: []Parameter{
			{Name: "DEPTH", Mode: ModeIn, DataType: "natural", DefaultValue: "16"},
		},
		Ports: []Parameter{
			{Name: "clk", Mode: ModeIn, DataType: "std_logic"},
			{Name: "din", Mode: ModeIn, DataType: "std_logic_vector[7:0]"},
			{Name: "dout", Mode: ModeOut, DataType: "std_logic_vector[7:0]"},
			{Name: "sda", Mode: ModeInOut, DataType: "std_logic"},
		},
		Sections: map[int]string{0: "clocks|Clocks", 1: "data|"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Convert() mismatch (-want +got):\n%s", diff)
	}

	// Sections are copied, not shared.
	got.Sections[5] = "x"
	assert.NotContains(t, ent.Sections, 5)
}

func TestConvertDegrade(t *testing.T) {
	ent := Entity{
		Name: "top",
		Ports: []PortDecl{
			{Name: "a", Direction: "in", Type: Index{Base: Ident{"slv"}, Index: Attribute{Base: Ident{"b"}, Name: "range"}}},
			{Name: "b", Direction: "out", Type: slv("3", "0")},
		},
	}

	var degraded []string
	got, err := Convert(ent, ConvertOptions{
		Policy: TypePolicyDegrade,
		OnDegrade: func(entity, param string, err error) {
			assert.Equal(t, "top", entity)
			degraded = append(degraded, param)
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Ports, 2)
	assert.Equal(t, "", got.Ports[0].DataType)
	assert.Equal(t, "std_logic_vector[3:0]", got.Ports[1].DataType)
	assert.Equal(t, []string{"a"}, degraded)
}

func TestConvertStrict(t *testing.T) {
	ent := Entity{
		Name:     "top",
		Generics: []GenericDecl{{Name: "N", Type: Unary{Op: "-", X: IntLit{"1"}}}},
	}

	_, err := Convert(ent, ConvertOptions{Policy: TypePolicyStrict})
	require.Error(t, err)

	var ute *UnsupportedTypeExpressionError
	assert.True(t, errors.As(err, &ute))
	assert.Contains(t, err.Error(), "entity top: N")
}

func TestConvertBadDirection(t *testing.T) {
	ent := Entity{Name: "top", Ports: []PortDecl{{Name: "a", Direction: "sideways"}}}

	_, err := Convert(ent, ConvertOptions{})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
}
