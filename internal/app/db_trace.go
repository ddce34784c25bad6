package app

import "strings"

const maxTracedQueryRunes = 512

// traceQuery collapses whitespace so multi-line SQL reads as one span
// attribute, and caps its length.
func traceQuery(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	runes := []rune(compact)
	if len(runes) <= maxTracedQueryRunes {
		return compact
	}
	return string(runes[:maxTracedQueryRunes]) + "..."
}
