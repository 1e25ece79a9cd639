package parse

import (
	"strings"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
)

var vhdlModes = []string{"in", "out", "inout", "buffer", "linkage"}

// Interface object classes that may prefix a VHDL interface declaration.
var vhdlClasses = []string{"signal", "constant", "variable", "file"}

// parseVHDL returns every entity and component declaration in src, in
// source order. Instantiations and everything inside architectures and
// packages other than component declarations are ignored.
func parseVHDL(src []byte) ([]hdl.Entity, error) {
	toks, err := NewLexer(hdl.LangVHDL, src).Tokenize()
	if err != nil {
		return nil, err
	}
	s := &stream{toks: toks, src: string(src)}

	var out []hdl.Entity
	for !s.eof() {
		t := s.next()
		switch {
		case t.Is("end"):
			// "end entity foo;" and "end component;" close a declaration.
			s.skipPast(";")
		case t.Is("entity") || t.Is("component"):
			name := s.peek()
			if name.Kind != TokIdent || !isDeclaration(s, t.Is("entity")) {
				continue
			}
			ent, err := vhdlDeclaration(s)
			if err != nil {
				return nil, err
			}
			out = append(out, ent)
		}
	}
	return out, nil
}

// isDeclaration distinguishes "entity foo is" and "component foo [is]"
// from direct and component instantiations ("u0: entity work.foo port map").
func isDeclaration(s *stream, entity bool) bool {
	after := s.peekAt(1)
	if after.Is("is") {
		return true
	}
	if entity {
		return false
	}
	switch {
	case after.Is("generic"), after.Is("port"):
		return s.peekAt(2).Is("(")
	case after.Is("end"):
		return true
	}
	return false
}

func vhdlDeclaration(s *stream) (hdl.Entity, error) {
	name := s.next()
	s.accept("is")
	ent := hdl.Entity{Name: name.Text, Language: hdl.LangVHDL}

	var pending *string
	for {
		t := s.peek()
		switch {
		case t.Kind == TokMeta:
			s.next()
			label := t.Text
			pending = &label
		case t.Is("generic") && s.peekAt(1).Is("("):
			s.next()
			inner, err := s.group()
			if err != nil {
				return ent, err
			}
			for _, item := range splitTop(inner, ";") {
				decls, err := vhdlInterface(s.src, item)
				if err != nil {
					return ent, err
				}
				for _, d := range decls {
					ent.Generics = append(ent.Generics, hdl.GenericDecl{Name: d.Name, Type: d.Type, Default: d.Default})
				}
			}
			s.accept(";")
		case t.Is("port") && s.peekAt(1).Is("("):
			s.next()
			inner, err := s.group()
			if err != nil {
				return ent, err
			}
			sections := newSectionTracker(pending)
			pending = nil
			for _, item := range splitTop(inner, ";") {
				item = sections.strip(item, len(ent.Ports))
				decls, err := vhdlInterface(s.src, item)
				if err != nil {
					return ent, err
				}
				ent.Ports = append(ent.Ports, decls...)
			}
			ent.Sections = sections.result()
			s.accept(";")
		default:
			return ent, nil
		}
	}
}

// vhdlInterface parses one interface declaration:
//
//	[class] name {, name} : [mode] type [:= default]
//
// Every name yields one declaration sharing mode, type and default.
// Generic types, packages and subprograms (VHDL-2008) carry no value and
// are skipped.
func vhdlInterface(src string, item []Token) ([]hdl.PortDecl, error) {
	item = dropMeta(item)
	if len(item) == 0 {
		return nil, nil
	}
	if isAny(item[0], []string{"type", "package", "function", "procedure", "impure", "pure"}) {
		return nil, nil
	}
	if isAny(item[0], vhdlClasses) {
		item = item[1:]
	}
	colon := indexTop(item, ":")
	if colon < 0 {
		return nil, errs.New(errs.ErrCodeParse, "line %d: expected ':' in interface declaration %q", item[0].Line, rawText(src, item))
	}

	var names []string
	for _, part := range splitTop(item[:colon], ",") {
		if len(part) != 1 || part[0].Kind != TokIdent {
			return nil, errs.New(errs.ErrCodeParse, "line %d: bad interface name list %q", item[0].Line, rawText(src, item[:colon]))
		}
		names = append(names, part[0].Text)
	}

	rest := item[colon+1:]
	dir := "in"
	if len(rest) > 0 && isAny(rest[0], vhdlModes) {
		dir = strings.ToLower(rest[0].Text)
		rest = rest[1:]
	}
	if dir == "linkage" {
		dir = "inout"
	}

	typeToks, def := rest, ""
	if i := indexTop(rest, ":="); i >= 0 {
		typeToks, def = rest[:i], rawText(src, rest[i+1:])
	}
	if n := len(typeToks); n > 0 && typeToks[n-1].Is("bus") {
		typeToks = typeToks[:n-1]
	}
	typ := parseExpr(src, typeToks, true)

	out := make([]hdl.PortDecl, 0, len(names))
	for _, n := range names {
		out = append(out, hdl.PortDecl{Name: n, Direction: dir, Type: typ, Default: def})
	}
	return out, nil
}

// sectionTracker assigns metacomment labels to port indices. A label
// leading a declaration starts a section at that declaration's first port;
// a label trailing one starts a section at the next port.
type sectionTracker struct {
	sections map[int]string
	pending  *string
}

func newSectionTracker(pending *string) *sectionTracker {
	return &sectionTracker{sections: map[int]string{}, pending: pending}
}

// strip removes metacomments from item, whose first port will land at
// index, and records their labels.
func (st *sectionTracker) strip(item []Token, index int) []Token {
	var (
		rest  []Token
		after *string
	)
	for _, t := range item {
		if t.Kind != TokMeta {
			rest = append(rest, t)
			continue
		}
		label := t.Text
		if len(rest) == 0 {
			st.pending = &label
		} else {
			after = &label
		}
	}
	if st.pending != nil && len(rest) > 0 {
		st.sections[index] = *st.pending
		st.pending = nil
	}
	if after != nil {
		st.pending = after
	}
	return rest
}

// result returns the collected labels, or nil when there are none. A
// label still pending after the last port has nothing to start.
func (st *sectionTracker) result() map[int]string {
	if len(st.sections) == 0 {
		return nil
	}
	return st.sections
}
