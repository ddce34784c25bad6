package club

import "strings"

// Club is a canonical external organization. Names are unique ignoring case.
type Club struct {
	ID   int64
	Name string
}

// LookupKey is the lowercase form used for case-insensitive name matching.
func LookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
