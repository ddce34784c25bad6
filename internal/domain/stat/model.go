package stat

import "fmt"

const (
	MaxMinutesPlayed = 120
)

// Stat is one player's performance record for one match. Rating is always
// derived from the other counters.
type Stat struct {
	ID            int64
	PlayerID      int64
	MatchID       int64
	Goals         int
	Assists       int
	MinutesPlayed int
	Rating        float64
}

// Counters are the caller-supplied values of a stat row.
type Counters struct {
	Goals         int
	Assists       int
	MinutesPlayed int
}

func (c Counters) Validate() error {
	if c.Goals < 0 {
		return fmt.Errorf("goals must be >= 0")
	}
	if c.Assists < 0 {
		return fmt.Errorf("assists must be >= 0")
	}
	if c.MinutesPlayed < 0 || c.MinutesPlayed > MaxMinutesPlayed {
		return fmt.Errorf("minutes_played must be between 0 and %d", MaxMinutesPlayed)
	}
	return nil
}

// Apply sets the counters on s and refreshes its rating.
func (c Counters) Apply(s Stat) Stat {
	s.Goals = c.Goals
	s.Assists = c.Assists
	s.MinutesPlayed = c.MinutesPlayed
	s.Rating = ComputeRating(c.MinutesPlayed, c.Goals, c.Assists)
	return s
}

// SideGoals is the aggregated scoreline of a match.
type SideGoals struct {
	TeamGoals     int
	OpponentGoals int
}
