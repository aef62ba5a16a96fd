package slug

import (
	"regexp"
	"strings"
)

// nonAlnumRegex matches one or more characters outside [a-z0-9].
var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize canonicalizes free-form slug text into a comparison key:
// 1. Lowercase
// 2. Replace every maximal run of characters outside [a-z0-9] with a single "-"
// 3. Strip leading/trailing "-"
//
// Total and idempotent. "Learn.xyz", "learn-xyz" and "Learn XYZ" all map to
// "learn-xyz". Every cross-source slug comparison goes through Normalize on
// both sides; raw string equality is never enough because slugs are
// human-editable and drift between the catalog and previously minted links.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Equal reports whether two slugs refer to the same record after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
