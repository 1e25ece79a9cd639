package hdl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/niosHD/symbolator/pkg/errors"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"nil", nil, ""},
		{"identifier", Ident{"std_logic"}, "std_logic"},
		{"integer", IntLit{"42"}, "42"},
		{
			name: "index with downto",
			expr: Index{Base: Ident{"std_logic_vector"}, Index: BinOp{OpDownto, IntLit{"7"}, IntLit{"0"}}},
			want: "std_logic_vector(7 downto 0)",
		},
		{
			name: "nested arithmetic",
			expr: Index{
				Base:  Ident{"unsigned"},
				Index: BinOp{OpDownto, BinOp{OpSub, Ident{"W"}, IntLit{"1"}}, IntLit{"0"}},
			},
			want: "unsigned(W - 1 downto 0)",
		},
		{
			name: "call with args",
			expr: Call{Base: Ident{"mem_t"}, Args: []Expr{BinOp{OpTo, IntLit{"0"}, IntLit{"3"}}, Ident{"x"}}},
			want: "mem_t(0 to 3, x)",
		},
		{"power", BinOp{OpPow, IntLit{"2"}, Ident{"N"}}, "2 ** N"},
		{"mul div", BinOp{OpDiv, BinOp{OpMul, Ident{"a"}, Ident{"b"}}, IntLit{"2"}}, "a * b / 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flatten(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenUnsupported(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
	}{
		{"unary", Unary{Op: "-", X: IntLit{"1"}}},
		{"attribute", Attribute{Base: Ident{"sig"}, Name: "range"}},
		{"aggregate", Aggregate{Raw: "(others => '0')"}},
		{"string literal", StringLit{`"abc"`}},
		{"unknown operator", BinOp{OpMod, Ident{"a"}, Ident{"b"}}},
		{"nested inside index", Index{Base: Ident{"slv"}, Index: Attribute{Base: Ident{"x"}, Name: "range"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flatten(tt.expr)
			assert.Empty(t, got)

			var ute *UnsupportedTypeExpressionError
			require.True(t, errors.As(err, &ute), "want UnsupportedTypeExpressionError, got %v", err)
			assert.True(t, errs.Is(err, errs.ErrCodeUnsupportedTypeExpression))
		})
	}
}
