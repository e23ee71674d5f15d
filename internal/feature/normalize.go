// Package feature turns table rows into GeoJSON point features.
package feature

import (
	"regexp"
	"strings"
)

var (
	afterSpace = regexp.MustCompile(`[\s\p{Zs}].`)
	spaces     = regexp.MustCompile(`[\s\p{Zs}]`)
	nonWord    = regexp.MustCompile(`\W`)
)

// Normalize turns a column header into a camel-case identifier:
// "Street Address #2" becomes "streetAddress2".
func Normalize(header string) string {
	out := afterSpace.ReplaceAllStringFunc(header, strings.ToUpper)
	out = spaces.ReplaceAllString(out, "")
	out = nonWord.ReplaceAllString(out, "")
	if out == "" {
		return out
	}

	// only [A-Za-z0-9_] is left, so the first byte is the first rune
	return strings.ToLower(out[:1]) + out[1:]
}

// NormalizeAll normalizes every header, keeping positions.
func NormalizeAll(headers []string) []string {
	out := make([]string, len(headers))
	for i, header := range headers {
		out[i] = Normalize(header)
	}

	return out
}
