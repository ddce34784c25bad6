package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID       int64         `db:"id"`
	Name     string        `db:"name"`
	AgeLimit sql.NullInt64 `db:"age_limit"`
}

type clubTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type clubInsertModel struct {
	Name string `db:"name"`
}

type participantTableModel struct {
	ID           int64          `db:"id"`
	ClubID       sql.NullInt64  `db:"club_id"`
	ClubName     sql.NullString `db:"club_name"`
	ExternalName sql.NullString `db:"external_name"`
	ExternalKey  sql.NullString `db:"external_key"`
}

type participantInsertModel struct {
	ClubID       *int64  `db:"club_id"`
	ExternalName *string `db:"external_name"`
	ExternalKey  *string `db:"external_key"`
}

type playerTableModel struct {
	ID     int64         `db:"id"`
	Name   string        `db:"name"`
	TeamID sql.NullInt64 `db:"team_id"`
}

type matchTableModel struct {
	ID                int64          `db:"id"`
	Date              sql.NullTime   `db:"date"`
	ScheduledStart    sql.NullTime   `db:"scheduled_start"`
	DurationMinutes   int            `db:"duration_minutes"`
	Opponent          string         `db:"opponent"`
	Location          sql.NullString `db:"location"`
	Competition       sql.NullString `db:"competition"`
	TeamGoals         int            `db:"team_goals"`
	OpponentGoals     int            `db:"opponent_goals"`
	TeamID            sql.NullInt64  `db:"team_id"`
	TeamName          sql.NullString `db:"team_name"`
	ParticipantHomeID sql.NullInt64  `db:"participant_home_id"`
	ParticipantAwayID sql.NullInt64  `db:"participant_away_id"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	Date              *time.Time `db:"date"`
	ScheduledStart    *time.Time `db:"scheduled_start"`
	DurationMinutes   int        `db:"duration_minutes"`
	Opponent          string     `db:"opponent"`
	Location          *string    `db:"location"`
	Competition       *string    `db:"competition"`
	TeamGoals         int        `db:"team_goals"`
	OpponentGoals     int        `db:"opponent_goals"`
	TeamID            *int64     `db:"team_id"`
	TeamName          *string    `db:"team_name"`
	ParticipantHomeID *int64     `db:"participant_home_id"`
	ParticipantAwayID *int64     `db:"participant_away_id"`
}

type statTableModel struct {
	ID            int64   `db:"id"`
	PlayerID      int64   `db:"player_id"`
	MatchID       int64   `db:"match_id"`
	Goals         int     `db:"goals"`
	Assists       int     `db:"assists"`
	MinutesPlayed int     `db:"minutes_played"`
	Rating        float64 `db:"rating"`
}

type statInsertModel struct {
	PlayerID      int64   `db:"player_id"`
	MatchID       int64   `db:"match_id"`
	Goals         int     `db:"goals"`
	Assists       int     `db:"assists"`
	MinutesPlayed int     `db:"minutes_played"`
	Rating        float64 `db:"rating"`
}

type sideGoalsRow struct {
	TeamGoals     int `db:"team_goals"`
	OpponentGoals int `db:"opponent_goals"`
}
