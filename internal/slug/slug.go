// Package slug derives URL-safe path segments from document identifiers,
// tag names, and category names.
package slug

import gslug "github.com/gosimple/slug"

// Make converts a human identifier into a URL-safe slug. It is pure and
// deterministic; distinct inputs may collide (e.g. names differing only in
// case), which callers resolve with first-write-wins semantics.
func Make(id string) string {
	return gslug.Make(id)
}
