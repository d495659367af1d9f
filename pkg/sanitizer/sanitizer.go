package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reRoomNumberJunk  = regexp.MustCompile(`[^0-9\p{L}-]+`)
	reTypeSeparators  = regexp.MustCompile(`[\s-]+`)
	reTrimUnderscores = regexp.MustCompile(`_+`)
)

func trimAndUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func collapseUnderscores(s string) string {
	s = reTrimUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

func SanitizeHotelName(input string) string {
	return NormalizeName(input)
}

func SanitizeRoomNumber(input string) string {
	p := Pipeline{
		trimAndUpper,
		func(s string) string { return reRoomNumberJunk.ReplaceAllString(s, "") },
	}
	return p.Apply(input)
}

// SanitizeRoomType prepares a type name for model.ParseRoomType, so that
// "deluxe room" and "Delux-Room" both become "DELUXE_ROOM"-style tokens.
func SanitizeRoomType(input string) string {
	p := Pipeline{
		trimAndUpper,
		func(s string) string { return reTypeSeparators.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	return p.Apply(input)
}

func SanitizeUsername(input string) string {
	return strings.TrimSpace(input)
}
