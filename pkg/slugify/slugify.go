// Package slugify derives secondary keys from display names.
package slugify

import "strings"

// Make lower-cases the name and collapses whitespace runs into single
// hyphens. Punctuation is kept: "Home & Garden" becomes "home-&-garden".
func Make(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
