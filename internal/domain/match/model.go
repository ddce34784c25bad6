package match

import (
	"time"
)

const DefaultDurationMinutes = 90

// Match is a scheduled or played fixture of an academy team.
type Match struct {
	ID                int64
	Date              *time.Time
	ScheduledStart    *time.Time
	DurationMinutes   int
	Opponent          string
	Location          *string
	Competition       *string
	TeamGoals         int
	OpponentGoals     int
	TeamID            *int64
	TeamName          *string
	ParticipantHomeID *int64
	ParticipantAwayID *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Criteria is the full identity of a fixture used for duplicate detection.
// Nil fields only match nil fields.
type Criteria struct {
	Date              *time.Time
	Opponent          string
	Location          *string
	Competition       *string
	TeamID            *int64
	TeamName          *string
	ParticipantHomeID *int64
	ParticipantAwayID *int64
}

func (m Match) Criteria() Criteria {
	return Criteria{
		Date:              m.Date,
		Opponent:          m.Opponent,
		Location:          m.Location,
		Competition:       m.Competition,
		TeamID:            m.TeamID,
		TeamName:          m.TeamName,
		ParticipantHomeID: m.ParticipantHomeID,
		ParticipantAwayID: m.ParticipantAwayID,
	}
}

// Matches reports null-safe equality of every criteria field.
func (c Criteria) Matches(m Match) bool {
	return equalTime(c.Date, m.Date) &&
		c.Opponent == m.Opponent &&
		equalPtr(c.Location, m.Location) &&
		equalPtr(c.Competition, m.Competition) &&
		equalPtr(c.TeamID, m.TeamID) &&
		equalPtr(c.TeamName, m.TeamName) &&
		equalPtr(c.ParticipantHomeID, m.ParticipantHomeID) &&
		equalPtr(c.ParticipantAwayID, m.ParticipantAwayID)
}

// ListFilter narrows match listings. Zero values disable a filter.
type ListFilter struct {
	TeamID *int64
	From   *time.Time
	To     *time.Time
}

// StorageTime converts a timestamp to the persisted representation: UTC with
// second precision.
func StorageTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Second)
	return &v
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
