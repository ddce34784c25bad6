package match

import (
	"testing"
	"time"
)

func TestCriteriaMatches_NullSafe(t *testing.T) {
	location := "Academy Ground"
	otherLocation := "Away Park"
	teamID := int64(5)
	kickoff := time.Date(2026, 4, 11, 10, 0, 0, 0, time.UTC)
	sameInstant := kickoff.In(time.FixedZone("WIB", 7*3600))

	tests := []struct {
		name string
		c    Criteria
		m    Match
		want bool
	}{
		{
			name: "nil date and ids match nil",
			c:    Criteria{Opponent: "Riverside FC", Location: &location},
			m:    Match{Opponent: "Riverside FC", Location: &location},
			want: true,
		},
		{
			name: "nil does not match value",
			c:    Criteria{Opponent: "Riverside FC"},
			m:    Match{Opponent: "Riverside FC", TeamID: &teamID},
			want: false,
		},
		{
			name: "different location",
			c:    Criteria{Opponent: "Riverside FC", Location: &location},
			m:    Match{Opponent: "Riverside FC", Location: &otherLocation},
			want: false,
		},
		{
			name: "same instant in another zone",
			c:    Criteria{Opponent: "Riverside FC", Date: &kickoff},
			m:    Match{Opponent: "Riverside FC", Date: &sameInstant},
			want: true,
		},
		{
			name: "opponent compared exactly",
			c:    Criteria{Opponent: "Riverside FC"},
			m:    Match{Opponent: "riverside fc"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Matches(tt.m); got != tt.want {
				t.Fatalf("Matches()=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestStorageTime_TruncatesToUTCSeconds(t *testing.T) {
	in := time.Date(2026, 4, 11, 17, 30, 15, 999_000_000, time.FixedZone("WIB", 7*3600))

	got := StorageTime(&in)
	if got == nil {
		t.Fatalf("expected non-nil storage time")
	}
	want := time.Date(2026, 4, 11, 10, 30, 15, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("StorageTime()=%s want=%s", got, want)
	}
	if StorageTime(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}
}

func TestPatch_IsEmptyAndApply(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Fatalf("zero patch must be empty")
	}

	location := "Academy Ground"
	base := Match{Opponent: "Old FC", Location: &location, DurationMinutes: 90, TeamGoals: 2}
	patch := Patch{Opponent: Some("New FC"), Location: Some[*string](nil)}
	if patch.IsEmpty() {
		t.Fatalf("patch with fields must not be empty")
	}

	got := patch.Apply(base)
	if got.Opponent != "New FC" {
		t.Fatalf("unexpected opponent: %s", got.Opponent)
	}
	if got.Location != nil {
		t.Fatalf("expected location cleared, got %v", *got.Location)
	}
	if got.DurationMinutes != 90 || got.TeamGoals != 2 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}
