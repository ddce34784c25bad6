package match

import "time"

// Field is an optional patch value. Set distinguishes "absent" from an
// explicit zero or nil.
type Field[T any] struct {
	Set   bool
	Value T
}

func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Patch is a partial update restricted to the mutable match columns.
type Patch struct {
	Date              Field[*time.Time]
	ScheduledStart    Field[*time.Time]
	DurationMinutes   Field[int]
	Opponent          Field[string]
	Location          Field[*string]
	Competition       Field[*string]
	TeamGoals         Field[int]
	OpponentGoals     Field[int]
	TeamID            Field[*int64]
	TeamName          Field[*string]
	ParticipantHomeID Field[*int64]
	ParticipantAwayID Field[*int64]
}

func (p Patch) IsEmpty() bool {
	return !p.Date.Set &&
		!p.ScheduledStart.Set &&
		!p.DurationMinutes.Set &&
		!p.Opponent.Set &&
		!p.Location.Set &&
		!p.Competition.Set &&
		!p.TeamGoals.Set &&
		!p.OpponentGoals.Set &&
		!p.TeamID.Set &&
		!p.TeamName.Set &&
		!p.ParticipantHomeID.Set &&
		!p.ParticipantAwayID.Set
}

// Apply copies every set field onto m.
func (p Patch) Apply(m Match) Match {
	if p.Date.Set {
		m.Date = p.Date.Value
	}
	if p.ScheduledStart.Set {
		m.ScheduledStart = p.ScheduledStart.Value
	}
	if p.DurationMinutes.Set {
		m.DurationMinutes = p.DurationMinutes.Value
	}
	if p.Opponent.Set {
		m.Opponent = p.Opponent.Value
	}
	if p.Location.Set {
		m.Location = p.Location.Value
	}
	if p.Competition.Set {
		m.Competition = p.Competition.Value
	}
	if p.TeamGoals.Set {
		m.TeamGoals = p.TeamGoals.Value
	}
	if p.OpponentGoals.Set {
		m.OpponentGoals = p.OpponentGoals.Value
	}
	if p.TeamID.Set {
		m.TeamID = p.TeamID.Value
	}
	if p.TeamName.Set {
		m.TeamName = p.TeamName.Value
	}
	if p.ParticipantHomeID.Set {
		m.ParticipantHomeID = p.ParticipantHomeID.Value
	}
	if p.ParticipantAwayID.Set {
		m.ParticipantAwayID = p.ParticipantAwayID.Value
	}
	return m
}
