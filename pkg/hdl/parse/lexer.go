package parse

import (
	"regexp"
	"strings"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
)

// metaRe matches the body of a section metacomment after its comment
// leader: "--# {{label}}" in VHDL, "//# {{label}}" in Verilog.
var metaRe = regexp.MustCompile(`^#\s*\{\{(.*?)\}\}`)

// Multi-character operators, longest first.
var puncts = []string{
	"**", ":=", "=>", "<=", ">=", "/=", "::", "==", "!=", "<<", ">>", "+:", "-:",
}

// Lexer tokenizes VHDL or Verilog source. Ordinary comments are dropped;
// section metacomments become TokMeta tokens.
type Lexer struct {
	src  string
	pos  int
	line int
	lang hdl.Language
	prev Token
}

// NewLexer returns a lexer over src for lang.
func NewLexer(lang hdl.Language, src []byte) *Lexer {
	return &Lexer{src: string(src), line: 1, lang: lang}
}

func (l *Lexer) vhdl() bool { return l.lang == hdl.LangVHDL }

// Tokenize consumes the whole source. The last token is always TokEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	toks := make([]Token, 0, max(len(l.src)/5, 64))
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) errorf(format string, args ...any) error {
	return errs.New(errs.ErrCodeParse, "line %d: "+format, append([]any{l.line}, args...)...)
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	tok, err := l.next()
	if err == nil {
		l.prev = tok
	}
	return tok, err
}

func (l *Lexer) next() (Token, error) {
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			return Token{Kind: TokEOF, Start: l.pos, End: l.pos, Line: l.line}, nil
		}
		meta, skipped, err := l.comment()
		if err != nil {
			return Token{}, err
		}
		if meta != nil {
			return *meta, nil
		}
		if !skipped {
			break
		}
	}

	start, line := l.pos, l.line
	c := l.src[l.pos]
	tok := func(k Kind) Token {
		return Token{Kind: k, Text: l.src[start:l.pos], Start: start, End: l.pos, Line: line}
	}

	switch {
	case isIdentStart(c) || (!l.vhdl() && (c == '$' || c == '`')):
		l.pos++
		l.identTail()
		return tok(TokIdent), nil
	case c == '\\':
		return l.extendedIdent(start, line)
	case isDigit(c):
		l.number()
		return tok(TokNumber), nil
	case c == '"':
		if err := l.stringLit(); err != nil {
			return Token{}, err
		}
		return tok(TokString), nil
	case c == '\'':
		if l.tickLiteral() {
			return tok(l.tickKind()), nil
		}
	}

	for _, p := range puncts {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.pos += len(p)
			return tok(TokPunct), nil
		}
	}
	l.pos++
	return tok(TokPunct), nil
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\n':
			l.line++
		case ' ', '\t', '\r', '\f', '\v':
		default:
			return
		}
		l.pos++
	}
}

// comment consumes one comment at the cursor. It returns a token when the
// comment is a metacomment and skipped=true when anything was consumed.
func (l *Lexer) comment() (meta *Token, skipped bool, err error) {
	rest := l.src[l.pos:]
	lineComment := (l.vhdl() && strings.HasPrefix(rest, "--")) || (!l.vhdl() && strings.HasPrefix(rest, "//"))
	switch {
	case lineComment:
		start, line := l.pos, l.line
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			end = len(rest)
		}
		body := rest[2:end]
		l.pos += end
		if m := metaRe.FindStringSubmatch(body); m != nil {
			return &Token{Kind: TokMeta, Text: strings.TrimSpace(m[1]), Start: start, End: l.pos, Line: line}, true, nil
		}
		return nil, true, nil
	case strings.HasPrefix(rest, "/*"):
		return nil, true, l.skipBlock("/*", "*/")
	case !l.vhdl() && strings.HasPrefix(rest, "(*") && !strings.HasPrefix(rest, "(*)"):
		return nil, true, l.skipBlock("(*", "*)")
	}
	return nil, false, nil
}

func (l *Lexer) skipBlock(open, close string) error {
	end := strings.Index(l.src[l.pos+len(open):], close)
	if end < 0 {
		return l.errorf("unterminated %s", open)
	}
	body := l.src[l.pos : l.pos+len(open)+end+len(close)]
	l.line += strings.Count(body, "\n")
	l.pos += len(body)
	return nil
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) || c == '$' }

// identTail consumes the rest of an identifier. SystemVerilog package
// scopes (pkg::name) stay in one token.
func (l *Lexer) identTail() {
	for {
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.pos++
		}
		if !l.vhdl() && l.peekAt(0) == ':' && l.peekAt(1) == ':' && isIdentStart(l.peekAt(2)) {
			l.pos += 2
			continue
		}
		return
	}
}

// extendedIdent reads \name\ in VHDL and \name<space> in Verilog.
func (l *Lexer) extendedIdent(start, line int) (Token, error) {
	l.pos++
	if l.vhdl() {
		end := strings.IndexByte(l.src[l.pos:], '\\')
		if end < 0 {
			return Token{}, l.errorf("unterminated extended identifier")
		}
		l.pos += end + 1
	} else {
		for l.pos < len(l.src) && !strings.ContainsRune(" \t\r\n", rune(l.src[l.pos])) {
			l.pos++
		}
	}
	return Token{Kind: TokIdent, Text: l.src[start:l.pos], Start: start, End: l.pos, Line: line}, nil
}

// number reads decimal, real and based literals of either language
// (16#FF#, 8'hff, 1_000, 2.5e-3).
func (l *Lexer) number() {
	digits := func() {
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	}
	digits()
	if l.peekAt(0) == '.' && isDigit(l.peekAt(1)) {
		l.pos++
		digits()
	}
	if c := l.peekAt(0); (c == 'e' || c == 'E') && (isDigit(l.peekAt(1)) || ((l.peekAt(1) == '-' || l.peekAt(1) == '+') && isDigit(l.peekAt(2)))) {
		l.pos += 2
		digits()
	}
	if l.vhdl() && l.peekAt(0) == '#' {
		if end := strings.IndexByte(l.src[l.pos+1:], '#'); end >= 0 {
			l.pos += end + 2
		}
		return
	}
	if !l.vhdl() && l.peekAt(0) == '\'' {
		l.tickLiteral()
	}
}

var basedRe = regexp.MustCompile(`^'[sS]?[bBoOdDhH]\s*[0-9a-fA-F_xXzZ?]+|^'[01xXzZ]`)

// tickLiteral consumes a literal starting at an apostrophe: a VHDL
// character literal or a Verilog based/unbased number. It leaves the
// cursor alone and returns false when the apostrophe is an attribute or
// cast tick.
func (l *Lexer) tickLiteral() bool {
	rest := l.src[l.pos:]
	if l.vhdl() {
		// After a name or closing paren the tick is an attribute.
		if l.prev.Kind == TokIdent || l.prev.Is(")") {
			return false
		}
		if len(rest) >= 3 && rest[2] == '\'' {
			l.pos += 3
			return true
		}
		return false
	}
	if loc := basedRe.FindStringIndex(rest); loc != nil {
		l.pos += loc[1]
		return true
	}
	return false
}

func (l *Lexer) tickKind() Kind {
	if l.vhdl() {
		return TokString
	}
	return TokNumber
}

func (l *Lexer) stringLit() error {
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			return l.errorf("unterminated string literal")
		case c == '\\' && !l.vhdl():
			l.pos += 2
			continue
		case c == '"':
			if l.vhdl() && l.peekAt(1) == '"' {
				l.pos += 2
				continue
			}
			l.pos++
			return nil
		}
		l.pos++
	}
	return l.errorf("unterminated string literal")
}
