package sanitizer

import (
	"strings"
	"unicode"
)

// CollapseSpaces trims s and turns every run of whitespace into one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dropControl removes control and other non-printing runes. Whitespace is
// kept for CollapseSpaces to handle.
func dropControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizeName cleans a display name such as a hotel name. Punctuation and
// non-ASCII letters survive; layout characters do not.
func NormalizeName(name string) string {
	return Pipeline{dropControl, CollapseSpaces}.Apply(name)
}
