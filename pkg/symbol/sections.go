package symbol

import (
	"regexp"
	"strings"

	"github.com/niosHD/symbolator/pkg/hdl"
)

// SectionSpec is one run of consecutive parameters sharing a section.
// Label is the raw marker text that opened it, empty for none.
type SectionSpec struct {
	Label  string
	Params []hdl.Parameter
}

// Partition splits params at every index carrying a marker. A marker on
// the first parameter names the first section; markers never produce empty
// sections and order is preserved.
func Partition(params []hdl.Parameter, markers map[int]string) []SectionSpec {
	var (
		out []SectionSpec
		cur = SectionSpec{Label: markers[0]}
	)
	for i, p := range params {
		if label, ok := markers[i]; ok && len(cur.Params) > 0 {
			out = append(out, cur)
			cur = SectionSpec{Label: label}
		}
		cur.Params = append(cur.Params, p)
	}
	if len(cur.Params) > 0 {
		out = append(out, cur)
	}
	return out
}

var sectionLabelRe = regexp.MustCompile(`^(\w+)\s*\|(.*)$`)

// ParseSectionLabel splits a "class|label" marker. The class comes back
// lowercased; a marker without a bar is all label.
func ParseSectionLabel(raw string) (class, label string) {
	m := sectionLabelRe.FindStringSubmatch(raw)
	if m == nil {
		return "", strings.TrimSpace(raw)
	}
	return strings.ToLower(strings.TrimSpace(m[1])), strings.TrimSpace(m[2])
}
