package parse

import (
	"strings"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
)

var verilogDirections = []string{"input", "output", "inout", "ref"}

// Keywords that precede a parameter or port type without being part of it.
var verilogDropWords = []string{"parameter", "localparam", "var", "type"}

// parseVerilog returns every module in src, in source order. Both ANSI
// headers and Verilog-1995 style port lists with body declarations are
// understood.
func parseVerilog(lang hdl.Language, src []byte) ([]hdl.Entity, error) {
	toks, err := NewLexer(lang, src).Tokenize()
	if err != nil {
		return nil, err
	}
	s := &stream{toks: toks, src: string(src)}

	var out []hdl.Entity
	for !s.eof() {
		t := s.next()
		if !t.Is("module") && !t.Is("macromodule") {
			continue
		}
		ent, err := verilogModule(s, lang)
		if err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}

func verilogModule(s *stream, lang hdl.Language) (hdl.Entity, error) {
	if s.peek().Is("automatic") || s.peek().Is("static") {
		s.next()
	}
	name, err := s.ident()
	if err != nil {
		return hdl.Entity{}, err
	}
	ent := hdl.Entity{Name: name.Text, Language: lang}

	for s.peek().Is("import") {
		s.skipPast(";")
	}

	headerParams := false
	if s.peek().Is("#") && s.peekAt(1).Is("(") {
		s.next()
		inner, err := s.group()
		if err != nil {
			return ent, err
		}
		ent.Generics = verilogParams(s.src, inner, "parameter")
		headerParams = true
	}

	var (
		ports    []hdl.PortDecl
		byName   = map[string]int{}
		sections = newSectionTracker(nil)
		ansi     bool
	)
	if s.peek().Is("(") {
		inner, err := s.group()
		if err != nil {
			return ent, err
		}
		items := splitTop(inner, ",")
		ansi = isANSI(items)
		var (
			dir      string
			typeToks []Token
		)
		for _, item := range items {
			item = sections.strip(item, len(ports))
			if len(item) == 0 {
				continue
			}
			if !ansi {
				byName[item[0].Text] = len(ports)
				ports = append(ports, hdl.PortDecl{Name: item[0].Text})
				continue
			}
			p, err := verilogANSIPort(s.src, item, &dir, &typeToks)
			if err != nil {
				return ent, err
			}
			ports = append(ports, p)
		}
	}
	s.skipPast(";")

	if err := verilogBody(s, &ent, ports, byName, sections, !headerParams); err != nil {
		return ent, err
	}

	for i := range ports {
		if ports[i].Direction == "" {
			ports[i].Direction = "inout"
		}
	}
	ent.Ports = ports
	ent.Sections = sections.result()
	return ent, nil
}

// isANSI reports whether a header port list carries declarations rather
// than bare names.
func isANSI(items [][]Token) bool {
	for _, item := range items {
		item = dropMeta(item)
		if len(item) > 1 || (len(item) == 1 && isAny(item[0], verilogDirections)) {
			return true
		}
	}
	return false
}

// verilogANSIPort parses one header port declaration. Direction and type
// carry over from the previous port when omitted: "input [7:0] a, b".
func verilogANSIPort(src string, item []Token, dir *string, typeToks *[]Token) (hdl.PortDecl, error) {
	explicitDir := false
	if isAny(item[0], verilogDirections) {
		*dir = strings.ToLower(item[0].Text)
		item = item[1:]
		explicitDir = true
	}
	decl, typ, err := verilogDeclarator(src, item)
	if err != nil {
		return hdl.PortDecl{}, err
	}
	if len(typ) > 0 || explicitDir {
		*typeToks = typ
	}
	decl.Direction = portDirection(*dir)
	decl.Type = verilogType(src, *typeToks)
	return decl, nil
}

func portDirection(dir string) string {
	if dir == "ref" {
		return "inout"
	}
	return dir
}

// verilogDeclarator splits "type name [unpacked] [= default]" and returns
// the name and default in a PortDecl with the type tokens alongside.
func verilogDeclarator(src string, item []Token) (hdl.PortDecl, []Token, error) {
	body, def := item, ""
	if i := indexTop(item, "="); i >= 0 {
		body, def = item[:i], rawText(src, item[i+1:])
	}
	nameAt, depth := -1, 0
	for i, t := range body {
		switch {
		case isOpen(t):
			depth++
		case isClose(t):
			depth--
		case depth == 0 && t.Kind == TokIdent:
			nameAt = i
		}
	}
	if nameAt < 0 {
		line := 0
		if len(item) > 0 {
			line = item[0].Line
		}
		return hdl.PortDecl{}, nil, errs.New(errs.ErrCodeParse, "line %d: missing name in declaration %q", line, rawText(src, item))
	}
	return hdl.PortDecl{Name: body[nameAt].Text, Default: def}, body[:nameAt], nil
}

// verilogType builds an expression from type keywords and packed
// dimensions: "logic signed [7:0]" is Index(logic signed, 7 downto 0).
// A type with no keywords and one dimension is the bare range.
func verilogType(src string, toks []Token) hdl.Expr {
	var (
		base []Token
		dims []hdl.Expr
	)
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if isAny(t, verilogDropWords) && len(base) == 0 {
			continue
		}
		if !t.Is("[") {
			if len(dims) == 0 {
				base = append(base, t)
			}
			continue
		}
		end := matchBracket(toks, i)
		if end < 0 {
			return hdl.Aggregate{Raw: rawText(src, toks)}
		}
		dims = append(dims, verilogDim(src, toks[i+1:end]))
		i = end
	}

	var e hdl.Expr
	if len(base) > 0 {
		e = hdl.Ident{Name: strings.Join(strings.Fields(rawText(src, base)), " ")}
	}
	switch {
	case e == nil && len(dims) == 0:
		return nil
	case e == nil && len(dims) == 1:
		return dims[0]
	case e == nil:
		e = hdl.Ident{}
	}
	for _, d := range dims {
		e = hdl.Index{Base: e, Index: d}
	}
	return e
}

// verilogDim turns the inside of [msb:lsb] into a descending range.
func verilogDim(src string, inner []Token) hdl.Expr {
	if i := indexTop(inner, ":"); i >= 0 {
		return hdl.BinOp{
			Op:    hdl.OpDownto,
			Left:  parseExpr(src, inner[:i], false),
			Right: parseExpr(src, inner[i+1:], false),
		}
	}
	return parseExpr(src, inner, false)
}

func matchBracket(toks []Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch {
		case isOpen(toks[i]):
			depth++
		case isClose(toks[i]):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// verilogParams parses a comma separated parameter list. keyword is the
// parameter keyword assumed when an item carries none; localparam items
// are not overridable and are skipped.
func verilogParams(src string, toks []Token, keyword string) []hdl.GenericDecl {
	var (
		out      []hdl.GenericDecl
		typeToks []Token
		local    = keyword == "localparam"
	)
	for _, item := range splitTop(toks, ",") {
		item = dropMeta(item)
		if len(item) == 0 {
			continue
		}
		explicit := false
		switch {
		case item[0].Is("parameter"):
			local, explicit = false, true
			item = item[1:]
		case item[0].Is("localparam"):
			local, explicit = true, true
			item = item[1:]
		}
		decl, typ, err := verilogDeclarator(src, item)
		if err != nil {
			continue
		}
		if len(typ) > 0 || explicit {
			typeToks = typ
		}
		if local {
			continue
		}
		out = append(out, hdl.GenericDecl{Name: decl.Name, Type: verilogType(src, typeToks), Default: decl.Default})
	}
	return out
}

// verilogBody scans a module body up to endmodule. It completes
// non-ANSI ports from their direction declarations and, when the header
// had no parameter list, collects body parameters.
func verilogBody(s *stream, ent *hdl.Entity, ports []hdl.PortDecl, byName map[string]int, sections *sectionTracker, bodyParams bool) error {
	var pending *string
	for !s.eof() {
		t := s.peek()
		switch {
		case t.Is("endmodule"):
			s.next()
			if s.accept(":") {
				s.next()
			}
			return nil
		case t.Kind == TokMeta:
			s.next()
			label := t.Text
			pending = &label
		case t.Is("function"):
			skipTo(s, "endfunction")
		case t.Is("task"):
			skipTo(s, "endtask")
		case bodyParams && t.Is("parameter"):
			stmt := statement(s)
			ent.Generics = append(ent.Generics, verilogParams(s.src, stmt, "parameter")...)
		case isAny(t, verilogDirections) && len(byName) > 0:
			stmt := statement(s)
			dir := strings.ToLower(stmt[0].Text)
			var typeToks []Token
			for i, item := range splitTop(dropMeta(stmt[1:]), ",") {
				decl, typ, err := verilogDeclarator(s.src, item)
				if err != nil {
					return err
				}
				if i == 0 {
					typeToks = typ
				}
				idx, ok := byName[decl.Name]
				if !ok {
					return errs.New(errs.ErrCodeParse, "line %d: %s declared but not in port list of %s", t.Line, decl.Name, ent.Name)
				}
				if pending != nil {
					if _, taken := sections.sections[idx]; !taken {
						sections.sections[idx] = *pending
					}
					pending = nil
				}
				ports[idx].Direction = portDirection(dir)
				ports[idx].Type = verilogType(s.src, typeToks)
				ports[idx].Default = decl.Default
			}
		default:
			s.next()
		}
	}
	return errs.New(errs.ErrCodeParse, "module %s: missing endmodule", ent.Name)
}

// statement consumes tokens through the next ";" and returns them without it.
func statement(s *stream) []Token {
	start := s.pos
	s.skipPast(";")
	end := s.pos
	if end > start && s.toks[end-1].Is(";") {
		end--
	}
	return s.toks[start:end]
}

func skipTo(s *stream, keyword string) {
	for !s.eof() {
		if s.next().Is(keyword) {
			return
		}
	}
}
