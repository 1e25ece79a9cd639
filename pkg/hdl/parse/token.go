package parse

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	TokEOF Kind = iota
	TokIdent
	TokNumber
	TokString
	TokPunct
	// TokMeta is a section metacomment; Text holds the label.
	TokMeta
)

func (k Kind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "identifier"
	case TokNumber:
		return "number"
	case TokString:
		return "string"
	case TokPunct:
		return "punctuation"
	case TokMeta:
		return "metacomment"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexeme with its byte span in the source.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
	Line  int
}

// Is reports whether t is the identifier or punctuation s. Identifiers
// compare case-insensitively, which suits VHDL keywords; Verilog keywords
// are lowercase in practice.
func (t Token) Is(s string) bool {
	switch t.Kind {
	case TokIdent:
		return strings.EqualFold(t.Text, s)
	case TokPunct:
		return t.Text == s
	}
	return false
}

func (t Token) String() string {
	if t.Kind == TokEOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.Text)
}
