package app

import (
	"strings"
	"testing"
)

func TestTraceQuery(t *testing.T) {
	got := traceQuery(" SELECT   id\nFROM matches \t WHERE team_id = $1 ")
	if got != "SELECT id FROM matches WHERE team_id = $1" {
		t.Fatalf("unexpected formatted query: %q", got)
	}

	long := "SELECT " + strings.Repeat("x, ", 400) + "id FROM matches"
	got = traceQuery(long)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != maxTracedQueryRunes+3 {
		t.Fatalf("expected truncated query, got %d runes", len([]rune(got)))
	}
}
