// Package normalize brings file paths and link targets to a single Unicode
// form so that routes compare equal regardless of how they were typed or
// how the filesystem stores names.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Path returns p in Unicode NFC with backslash separators turned into
// forward slashes. macOS stores filenames decomposed (NFD) while editors
// write links composed, so both sides go through here before comparison.
func Path(p string) string {
	if !norm.NFC.IsNormalString(p) {
		p = norm.NFC.String(p)
	}
	return strings.ReplaceAll(p, "\\", "/")
}

// Href returns a link target in NFC. Separators are left alone: a backslash
// in a written link is content, not a path separator.
func Href(h string) string {
	return norm.NFC.String(h)
}
