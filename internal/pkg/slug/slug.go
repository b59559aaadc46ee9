// Package slug turns free-text labels into canonical tag keys.
package slug

import (
	"strings"
	"unicode"
)

// Make lower-cases name, collapses every whitespace run into a single hyphen
// and drops anything that is not a-z, 0-9 or '-'.
// Make(Make(s)) == Make(s) for every s.
func Make(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))

	inSpace := false
	for _, r := range lower {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
