package hdl

import (
	"fmt"
	"strings"

	errs "github.com/niosHD/symbolator/pkg/errors"
)

// Expr is a node of a parsed type expression.
type Expr interface {
	exprNode()
}

// Ident is an identifier or selected name (ieee.numeric_std.unsigned).
type Ident struct{ Name string }

// IntLit is an integer literal kept verbatim.
type IntLit struct{ Value string }

// StringLit is a quoted string or character literal.
type StringLit struct{ Value string }

// Index is base(index) with exactly one argument.
type Index struct {
	Base  Expr
	Index Expr
}

// Call is base(arg, arg, ...) with any other argument count.
type Call struct {
	Base Expr
	Args []Expr
}

// Operator names a binary operator.
type Operator string

// Binary operators recognized by parsers.
const (
	OpDownto Operator = "DOWNTO"
	OpTo     Operator = "TO"
	OpAdd    Operator = "ADD"
	OpSub    Operator = "SUB"
	OpDiv    Operator = "DIV"
	OpMul    Operator = "MUL"
	OpPow    Operator = "POW"
	OpMod    Operator = "MOD"
	OpRange  Operator = "RANGE"
)

// BinOp is left OP right.
type BinOp struct {
	Op          Operator
	Left, Right Expr
}

// Unary is a prefix operator applied to an operand (-x, not x).
type Unary struct {
	Op string
	X  Expr
}

// Attribute is base'name (sig'range, t'length).
type Attribute struct {
	Base Expr
	Name string
}

// Aggregate is a parenthesized association list such as (others => '0').
type Aggregate struct{ Raw string }

func (Ident) exprNode()     {}
func (IntLit) exprNode()    {}
func (StringLit) exprNode() {}
func (Index) exprNode()     {}
func (Call) exprNode()      {}
func (BinOp) exprNode()     {}
func (Unary) exprNode()     {}
func (Attribute) exprNode() {}
func (Aggregate) exprNode() {}

// opSymbols is the fixed rendering table for binary operators.
var opSymbols = map[Operator]string{
	OpDownto: "downto",
	OpTo:     "to",
	OpAdd:    "+",
	OpSub:    "-",
	OpDiv:    "/",
	OpMul:    "*",
	OpPow:    "**",
}

// UnsupportedTypeExpressionError reports an expression shape [Flatten]
// has no rendering rule for.
type UnsupportedTypeExpressionError struct {
	Expr Expr
}

func (e *UnsupportedTypeExpressionError) Error() string {
	return fmt.Sprintf("unsupported type expression %s", describe(e.Expr))
}

// Code returns the error code for this error type.
func (e *UnsupportedTypeExpressionError) Code() errs.Code {
	return errs.ErrCodeUnsupportedTypeExpression
}

// Flatten renders a type expression tree as a string.
//
// Identifiers and integers render verbatim, Index and Call as base(args),
// and binary operators as "left OP right". A nil expression is the empty
// string. Every other shape yields *UnsupportedTypeExpressionError.
func Flatten(e Expr) (string, error) {
	var b strings.Builder
	if err := flatten(&b, e); err != nil {
		return "", err
	}
	return b.String(), nil
}

func flatten(b *strings.Builder, e Expr) error {
	switch n := e.(type) {
	case nil:
		return nil
	case Ident:
		b.WriteString(n.Name)
	case IntLit:
		b.WriteString(n.Value)
	case Index:
		if err := flatten(b, n.Base); err != nil {
			return err
		}
		b.WriteByte('(')
		if err := flatten(b, n.Index); err != nil {
			return err
		}
		b.WriteByte(')')
	case Call:
		if err := flatten(b, n.Base); err != nil {
			return err
		}
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := flatten(b, a); err != nil {
				return err
			}
		}
		b.WriteByte(')')
	case BinOp:
		sym, ok := opSymbols[n.Op]
		if !ok {
			return &UnsupportedTypeExpressionError{Expr: e}
		}
		if err := flatten(b, n.Left); err != nil {
			return err
		}
		b.WriteString(" " + sym + " ")
		if err := flatten(b, n.Right); err != nil {
			return err
		}
	default:
		return &UnsupportedTypeExpressionError{Expr: e}
	}
	return nil
}

func describe(e Expr) string {
	switch n := e.(type) {
	case Unary:
		return fmt.Sprintf("unary %q", n.Op)
	case Attribute:
		return fmt.Sprintf("attribute '%s", n.Name)
	case Aggregate:
		return fmt.Sprintf("aggregate %s", n.Raw)
	case StringLit:
		return fmt.Sprintf("literal %s", n.Value)
	case BinOp:
		return fmt.Sprintf("operator %s", n.Op)
	}
	return fmt.Sprintf("%T", e)
}
