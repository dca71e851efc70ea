package resolver

import (
	"strings"

	"github.com/tranvictor/payroll/common"
)

// NameSeparator marks input that should be looked up as a name.
const NameSeparator = "."

type Kind int

const (
	KindNone Kind = iota
	KindAddress
	KindName
)

func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindName:
		return "name"
	default:
		return "none"
	}
}

// Classify decides how text should be resolved. Surrounding whitespace is
// ignored.
func Classify(text string) Kind {
	text = strings.TrimSpace(text)
	if common.IsValidAddress(text) {
		return KindAddress
	}
	if strings.Contains(text, NameSeparator) {
		return KindName
	}
	return KindNone
}
