package tables

import "strings"

// NormalizeCode upper-cases a country code and strips stray whitespace.
// WHO publishes a single space as the code for the "Other" group; that
// becomes empty and is treated as missing.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeName collapses runs of whitespace in free-text names.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
