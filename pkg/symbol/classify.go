package symbol

import (
	"regexp"
	"strings"

	"github.com/niosHD/symbolator/pkg/hdl"
)

// Side is the symbol edge a pin attaches to.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Pin is the visual form of one port or generic.
type Pin struct {
	Label    string
	Side     Side
	Bubble   bool
	Clocked  bool
	Bus      bool
	Bidir    bool
	DataType string
}

var (
	clockRe   = regexp.MustCompile(`(?i)(^cl(oc)?k)|(cl(oc)?k$)`)
	bubbleRe  = regexp.MustCompile(`(?i)_[nb]$`)
	busNameRe = regexp.MustCompile(`\[.*\]$`)
)

// IsClock reports whether an input named name is a clock. Outputs and
// bidirectional pins are never clocks.
func IsClock(name string, mode hdl.Mode) bool {
	return mode == hdl.ModeIn && clockRe.MatchString(name)
}

// IsBubble reports whether name marks an active-low signal.
func IsBubble(name string) bool {
	return bubbleRe.MatchString(name)
}

// IsBus reports whether the pin carries a vector, judged by either its
// bracketed type or a trailing index on its name.
func IsBus(name, dataType string) bool {
	return strings.Contains(dataType, "[") || busNameRe.MatchString(name)
}

// SideFor places inputs on the left and everything else on the right.
func SideFor(mode hdl.Mode) Side {
	if mode == hdl.ModeIn {
		return SideLeft
	}
	return SideRight
}

// Classify derives a pin from a parameter whose type is already
// canonicalized. With showType false the type annotation is dropped, but the
// type still decides the bus flag.
func Classify(p hdl.Parameter, showType bool) Pin {
	pin := Pin{
		Label:   p.Name,
		Side:    SideFor(p.Mode),
		Bubble:  IsBubble(p.Name),
		Clocked: IsClock(p.Name, p.Mode),
		Bus:     IsBus(p.Name, p.DataType),
		Bidir:   p.Mode == hdl.ModeInOut,
	}
	if showType {
		pin.DataType = p.DataType
	}
	return pin
}
