package parse

import (
	errs "github.com/niosHD/symbolator/pkg/errors"
)

// stream is a cursor over a token slice. The slice always ends in TokEOF
// when it comes from the lexer; sub-streams over a span may not.
type stream struct {
	toks []Token
	pos  int
	src  string
}

func (s *stream) eof() bool {
	return s.pos >= len(s.toks) || s.toks[s.pos].Kind == TokEOF
}

func (s *stream) peek() Token {
	return s.peekAt(0)
}

func (s *stream) peekAt(off int) Token {
	if s.pos+off >= len(s.toks) {
		return Token{Kind: TokEOF}
	}
	return s.toks[s.pos+off]
}

func (s *stream) next() Token {
	t := s.peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	return t
}

// accept consumes the next token if it is s.
func (s *stream) accept(text string) bool {
	if s.peek().Is(text) {
		s.pos++
		return true
	}
	return false
}

func (s *stream) expect(text string) (Token, error) {
	t := s.peek()
	if !t.Is(text) {
		return t, errs.New(errs.ErrCodeParse, "line %d: expected %q, found %s", t.Line, text, t)
	}
	s.pos++
	return t, nil
}

func (s *stream) ident() (Token, error) {
	t := s.peek()
	if t.Kind != TokIdent {
		return t, errs.New(errs.ErrCodeParse, "line %d: expected identifier, found %s", t.Line, t)
	}
	s.pos++
	return t, nil
}

// group consumes a balanced parenthesized group starting at the cursor and
// returns the tokens between the parentheses.
func (s *stream) group() ([]Token, error) {
	open, err := s.expect("(")
	if err != nil {
		return nil, err
	}
	start := s.pos
	depth := 1
	for !s.eof() {
		t := s.next()
		switch {
		case isOpen(t):
			depth++
		case isClose(t):
			depth--
			if depth == 0 {
				return s.toks[start : s.pos-1], nil
			}
		}
	}
	return nil, errs.New(errs.ErrCodeParse, "line %d: unbalanced parenthesis", open.Line)
}

// skipPast advances beyond the next top-level token equal to text.
func (s *stream) skipPast(text string) {
	depth := 0
	for !s.eof() {
		t := s.next()
		switch {
		case isOpen(t):
			depth++
		case isClose(t):
			depth--
		case depth <= 0 && t.Is(text):
			return
		}
	}
}

// raw returns the source text covered by toks.
func (s *stream) raw(toks []Token) string {
	return rawText(s.src, toks)
}

func rawText(src string, toks []Token) string {
	toks = dropMeta(toks)
	if len(toks) == 0 {
		return ""
	}
	return src[toks[0].Start:toks[len(toks)-1].End]
}

func isOpen(t Token) bool  { return t.Is("(") || t.Is("[") || t.Is("{") }
func isClose(t Token) bool { return t.Is(")") || t.Is("]") || t.Is("}") }

// splitTop splits toks at every top-level occurrence of any sep.
func splitTop(toks []Token, seps ...string) [][]Token {
	var (
		out   [][]Token
		depth int
		start int
	)
	for i, t := range toks {
		switch {
		case isOpen(t):
			depth++
		case isClose(t):
			depth--
		case depth == 0 && isAny(t, seps):
			out = append(out, toks[start:i])
			start = i + 1
		}
	}
	return append(out, toks[start:])
}

// indexTop returns the position of the first top-level sep, or -1.
func indexTop(toks []Token, sep string) int {
	depth := 0
	for i, t := range toks {
		switch {
		case isOpen(t):
			depth++
		case isClose(t):
			depth--
		case depth == 0 && t.Is(sep):
			return i
		}
	}
	return -1
}

func isAny(t Token, texts []string) bool {
	for _, s := range texts {
		if t.Is(s) {
			return true
		}
	}
	return false
}

// takeMeta strips metacomments from toks and returns the last label seen.
func takeMeta(toks []Token) (rest []Token, label string, ok bool) {
	for _, t := range toks {
		if t.Kind == TokMeta {
			label, ok = t.Text, true
			continue
		}
		rest = append(rest, t)
	}
	return rest, label, ok
}

func dropMeta(toks []Token) []Token {
	rest, _, ok := takeMeta(toks)
	if !ok {
		return toks
	}
	return rest
}
