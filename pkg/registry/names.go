package registry

import (
	"strings"
	"unicode"
)

// Underscore converts a CamelCase type name to snake_case.
//
// A word boundary is placed before an uppercase letter that follows a
// lowercase letter or digit, and before the last uppercase letter of an
// acronym run when a lowercase letter follows it:
//
//	TestAdapter -> test_adapter
//	XMLAdapter  -> xml_adapter
//	MapGraph    -> map_graph
//	REXML       -> rexml
//	Base64Graph -> base64_graph
func Underscore(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				b.WriteByte('_')
			case unicode.IsUpper(prev) && nextLower:
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
