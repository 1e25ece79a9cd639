package hdl

import (
	"regexp"
	"strings"
	"unicode"
)

// AscendingSep separates the bounds of an ascending ("to") range.
const AscendingSep = "→"

var (
	downtoRe    = regexp.MustCompile(`(?i)\s+downto\s+`)
	toRe        = regexp.MustCompile(`(?i)\s+to\s+`)
	bareRangeRe = regexp.MustCompile(`(?i)^[^()\[\]]+?\s+(downto|to)\s+[^()\[\]]+$`)
	rangeTypeRe = regexp.MustCompile(`(?i)^(\S+)\s+range\s+(.+)$`)
)

// Canonicalize rewrites dialect-specific range syntax into bracket notation.
//
//	std_logic_vector(7 downto 0)  -> std_logic_vector[7:0]
//	7 downto 0                    -> [7:0]
//	0 to 7                        -> [0→7]
//	integer range 0 to 255        -> integer[0→255]
//	array_t(0 to 3)(7 downto 0)   -> array_t[0→3][7:0]
//	wire[7 : 0]                   -> wire[7:0]
//
// Whitespace inside every bracket group is removed. The result no longer
// matches any rewritten pattern, so Canonicalize is idempotent.
func Canonicalize(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return t
	}

	if m := rangeTypeRe.FindStringSubmatch(t); m != nil && balanced(t) {
		return m[1] + "[" + canonRange(m[2]) + "]"
	}

	if base, groups, ok := splitGroups(t); ok {
		var b strings.Builder
		b.WriteString(strings.TrimRightFunc(base, unicode.IsSpace))
		for _, g := range groups {
			b.WriteString("[" + canonRange(g) + "]")
		}
		return b.String()
	}

	if bareRangeRe.MatchString(t) {
		return "[" + canonRange(t) + "]"
	}
	return t
}

// canonRange converts range keywords to separators and strips whitespace.
func canonRange(s string) string {
	s = downtoRe.ReplaceAllString(s, ":")
	s = toRe.ReplaceAllString(s, AscendingSep)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// splitGroups splits "base(a)(b)[c]" into its base and the contents of each
// trailing parenthesized or bracketed group. ok is false when the string has
// no groups or has text after the last group.
func splitGroups(s string) (base string, groups []string, ok bool) {
	start := strings.IndexAny(s, "([")
	if start < 0 {
		return "", nil, false
	}
	base = s[:start]

	i := start
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			i++
			continue
		case '(', '[':
		default:
			return "", nil, false
		}
		end := matchClose(s, i)
		if end < 0 {
			return "", nil, false
		}
		groups = append(groups, s[i+1:end])
		i = end + 1
	}
	return base, groups, len(groups) > 0
}

// balanced reports whether every bracket in s is closed in order.
func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth--; depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// matchClose returns the index of the bracket closing the one at open,
// or -1 when unbalanced.
func matchClose(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
