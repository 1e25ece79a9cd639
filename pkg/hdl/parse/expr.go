package parse

import (
	"strings"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
)

var binaryOps = map[string]hdl.Operator{
	"+":  hdl.OpAdd,
	"-":  hdl.OpSub,
	"*":  hdl.OpMul,
	"/":  hdl.OpDiv,
	"**": hdl.OpPow,
}

func operator(t Token) hdl.Operator {
	if op, ok := binaryOps[t.Text]; ok {
		return op
	}
	return hdl.Operator(strings.ToUpper(t.Text))
}

// exprParser is a precedence-climbing parser for type expressions:
// ranges bind loosest, then additive, multiplicative and power operators,
// then unary prefixes, then calls and attributes.
type exprParser struct {
	stream
	vhdl bool
}

// parseExpr parses toks as a single expression. Text the grammar does not
// cover (aggregates, ternaries, concatenations...) comes back as an
// Aggregate holding the raw source, which flattening reports as an
// unsupported type.
func parseExpr(src string, toks []Token, vhdl bool) hdl.Expr {
	toks = dropMeta(toks)
	if len(toks) == 0 {
		return nil
	}
	p := &exprParser{stream: stream{toks: toks, src: src}, vhdl: vhdl}
	e, err := p.full()
	if err != nil {
		return hdl.Aggregate{Raw: rawText(src, toks)}
	}
	return e
}

func (p *exprParser) sub(toks []Token) (hdl.Expr, error) {
	q := &exprParser{stream: stream{toks: toks, src: p.src}, vhdl: p.vhdl}
	return q.full()
}

func (p *exprParser) full() (hdl.Expr, error) {
	e, err := p.rangeExpr()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		t := p.peek()
		return nil, errs.New(errs.ErrCodeParse, "line %d: unexpected %s in expression", t.Line, t)
	}
	return e, nil
}

func (p *exprParser) rangeExpr() (hdl.Expr, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	if !p.vhdl {
		return left, nil
	}
	switch {
	case p.accept("downto"):
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		return hdl.BinOp{Op: hdl.OpDownto, Left: left, Right: right}, nil
	case p.accept("to"):
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		return hdl.BinOp{Op: hdl.OpTo, Left: left, Right: right}, nil
	case p.accept("range"):
		right, err := p.rangeExpr()
		if err != nil {
			return nil, err
		}
		return hdl.BinOp{Op: hdl.OpRange, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *exprParser) binary(next func() (hdl.Expr, error), ops ...string) (hdl.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for isAny(p.peek(), ops) {
		op := operator(p.next())
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = hdl.BinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) additive() (hdl.Expr, error) {
	return p.binary(p.multiplicative, "+", "-", "&")
}

func (p *exprParser) multiplicative() (hdl.Expr, error) {
	if p.vhdl {
		return p.binary(p.power, "*", "/", "mod", "rem")
	}
	return p.binary(p.power, "*", "/", "%")
}

// power is right associative: 2**3**2 is 2**(3**2).
func (p *exprParser) power() (hdl.Expr, error) {
	base, err := p.unary()
	if err != nil {
		return nil, err
	}
	if !p.accept("**") {
		return base, nil
	}
	exp, err := p.power()
	if err != nil {
		return nil, err
	}
	return hdl.BinOp{Op: hdl.OpPow, Left: base, Right: exp}, nil
}

func (p *exprParser) unary() (hdl.Expr, error) {
	t := p.peek()
	if isAny(t, []string{"-", "+", "~", "!"}) || (p.vhdl && (t.Is("not") || t.Is("abs"))) {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return hdl.Unary{Op: strings.ToLower(t.Text), X: x}, nil
	}
	return p.postfix()
}

func (p *exprParser) postfix() (hdl.Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch t := p.peek(); {
		case t.Is("("):
			inner, err := p.group()
			if err != nil {
				return nil, err
			}
			if e, err = p.call(e, inner, t); err != nil {
				return nil, err
			}
		case p.vhdl && t.Is("'") && p.peekAt(1).Kind == TokIdent:
			p.next()
			e = hdl.Attribute{Base: e, Name: p.next().Text}
		case p.vhdl && t.Is(".") && p.peekAt(1).Kind == TokIdent:
			id, ok := e.(hdl.Ident)
			if !ok {
				return nil, errs.New(errs.ErrCodeParse, "line %d: selected name on non-name", t.Line)
			}
			p.next()
			e = hdl.Ident{Name: id.Name + "." + p.next().Text}
		default:
			return e, nil
		}
	}
}

// call turns base(args) into an Index for one argument and a Call
// otherwise. Named association is not a type expression.
func (p *exprParser) call(base hdl.Expr, inner []Token, open Token) (hdl.Expr, error) {
	if indexTop(inner, "=>") >= 0 {
		return nil, errs.New(errs.ErrCodeParse, "line %d: named association", open.Line)
	}
	if len(inner) == 0 {
		return hdl.Call{Base: base}, nil
	}
	parts := splitTop(inner, ",")
	args := make([]hdl.Expr, 0, len(parts))
	for _, part := range parts {
		a, err := p.sub(part)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if len(args) == 1 {
		return hdl.Index{Base: base, Index: args[0]}, nil
	}
	return hdl.Call{Base: base, Args: args}, nil
}

func (p *exprParser) primary() (hdl.Expr, error) {
	t := p.peek()
	switch t.Kind {
	case TokIdent:
		p.next()
		return hdl.Ident{Name: t.Text}, nil
	case TokNumber:
		p.next()
		return hdl.IntLit{Value: t.Text}, nil
	case TokString:
		p.next()
		return hdl.StringLit{Value: t.Text}, nil
	}
	if t.Is("(") {
		inner, err := p.group()
		if err != nil {
			return nil, err
		}
		if indexTop(inner, ",") >= 0 || indexTop(inner, "=>") >= 0 {
			return hdl.Aggregate{Raw: "(" + p.raw(inner) + ")"}, nil
		}
		return p.sub(inner)
	}
	return nil, errs.New(errs.ErrCodeParse, "line %d: unexpected %s in expression", t.Line, t)
}
