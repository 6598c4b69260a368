package flight

import (
	"regexp"
	"strings"
)

// Flight identity is derived, not stored: date + slugified route + slugified
// registration, joined with underscores. Two inputs that slugify identically
// alias to the same flight; the key is wide enough in practice that this is
// accepted rather than detected.

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	slugRuns     = regexp.MustCompile(`[-\s]+`)
)

// Slugify lowercases, strips everything but word characters, spaces and
// hyphens, and collapses whitespace/hyphen runs into single hyphens.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugRuns.ReplaceAllString(s, "-")
	return s
}

// ID derives the flight identifier for a date, route and registration.
// Deterministic: same inputs always yield the same id, so the date prefix
// keeps ids lexicographically sortable when dates are ISO-formatted.
func ID(date, route, registration string) string {
	return date + "_" + Slugify(route) + "_" + Slugify(registration)
}

// ParseID recovers best-effort flight attributes from an id. Used when a
// flight has a ticket directory but no manifest rows to read them from.
// The route comes back as an upper-cased "A - B" rendering of its slug.
func ParseID(id string) (date, route, registration string, ok bool) {
	parts := strings.Split(id, "_")
	if len(parts) < 3 {
		return "", "", "", false
	}
	date = parts[0]
	route = strings.ReplaceAll(strings.ToUpper(parts[1]), "-", " - ")
	registration = strings.ToUpper(parts[2])
	return date, route, registration, true
}
