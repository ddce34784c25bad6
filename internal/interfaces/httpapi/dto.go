package httpapi

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	"github.com/riskibarqy/soccer-academy/internal/domain/stat"
	"github.com/riskibarqy/soccer-academy/internal/usecase"
)

var acceptedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime accepts RFC3339 or one of the zone-less layouts, read as UTC.
func parseTime(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s %q is not a valid date", usecase.ErrInvalidInput, field, raw)
}

func parseOptionalTime(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := parseTime(field, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatTime(*t)
	return &v
}

// optional records whether a JSON key was present. A present null leaves
// Value nil.
type optional[T any] struct {
	Set   bool
	Value *T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := sonic.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func nullableField[T any](o optional[T]) match.Field[*T] {
	if !o.Set {
		return match.Field[*T]{}
	}
	return match.Some(o.Value)
}

func requiredField[T any](name string, o optional[T]) (match.Field[T], error) {
	if !o.Set {
		return match.Field[T]{}, nil
	}
	if o.Value == nil {
		return match.Field[T]{}, fmt.Errorf("%w: %s must not be null", usecase.ErrInvalidInput, name)
	}
	return match.Some(*o.Value), nil
}

func timeField(name string, o optional[string]) (match.Field[*time.Time], error) {
	if !o.Set {
		return match.Field[*time.Time]{}, nil
	}
	t, err := parseOptionalTime(name, o.Value)
	if err != nil {
		return match.Field[*time.Time]{}, err
	}
	return match.Some(t), nil
}

type createMatchRequest struct {
	Date              *string `json:"date"`
	ScheduledStart    *string `json:"scheduled_start"`
	DurationMinutes   *int    `json:"duration_minutes" validate:"omitnil,gt=0"`
	Opponent          string  `json:"opponent" validate:"max=200"`
	Location          *string `json:"location" validate:"omitnil,max=200"`
	Competition       *string `json:"competition" validate:"omitnil,max=200"`
	TeamGoals         *int    `json:"team_goals" validate:"omitnil,gte=0"`
	OpponentGoals     *int    `json:"opponent_goals" validate:"omitnil,gte=0"`
	TeamID            *int64  `json:"team_id" validate:"omitnil,gt=0"`
	TeamName          *string `json:"team_name" validate:"omitnil,max=200"`
	ParticipantHomeID *int64  `json:"participant_home_id" validate:"omitnil,gt=0"`
	ParticipantAwayID *int64  `json:"participant_away_id" validate:"omitnil,gt=0"`
}

func (r createMatchRequest) toInput() (usecase.CreateMatchInput, error) {
	date, err := parseOptionalTime("date", r.Date)
	if err != nil {
		return usecase.CreateMatchInput{}, err
	}
	scheduledStart, err := parseOptionalTime("scheduled_start", r.ScheduledStart)
	if err != nil {
		return usecase.CreateMatchInput{}, err
	}

	return usecase.CreateMatchInput{
		Date:              date,
		ScheduledStart:    scheduledStart,
		DurationMinutes:   r.DurationMinutes,
		Opponent:          r.Opponent,
		Location:          r.Location,
		Competition:       r.Competition,
		TeamGoals:         r.TeamGoals,
		OpponentGoals:     r.OpponentGoals,
		TeamID:            r.TeamID,
		TeamName:          r.TeamName,
		ParticipantHomeID: r.ParticipantHomeID,
		ParticipantAwayID: r.ParticipantAwayID,
	}, nil
}

// updateMatchRequest decodes a partial update. Unknown keys are ignored, so
// a body with no recognized key yields an empty patch.
type updateMatchRequest struct {
	Date              optional[string] `json:"date"`
	ScheduledStart    optional[string] `json:"scheduled_start"`
	DurationMinutes   optional[int]    `json:"duration_minutes"`
	Opponent          optional[string] `json:"opponent"`
	Location          optional[string] `json:"location"`
	Competition       optional[string] `json:"competition"`
	TeamGoals         optional[int]    `json:"team_goals"`
	OpponentGoals     optional[int]    `json:"opponent_goals"`
	TeamID            optional[int64]  `json:"team_id"`
	TeamName          optional[string] `json:"team_name"`
	ParticipantHomeID optional[int64]  `json:"participant_home_id"`
	ParticipantAwayID optional[int64]  `json:"participant_away_id"`
}

func (r updateMatchRequest) toPatch() (match.Patch, error) {
	var (
		patch match.Patch
		err   error
	)

	if patch.Date, err = timeField("date", r.Date); err != nil {
		return match.Patch{}, err
	}
	if patch.ScheduledStart, err = timeField("scheduled_start", r.ScheduledStart); err != nil {
		return match.Patch{}, err
	}
	if patch.DurationMinutes, err = requiredField("duration_minutes", r.DurationMinutes); err != nil {
		return match.Patch{}, err
	}
	if patch.Opponent, err = requiredField("opponent", r.Opponent); err != nil {
		return match.Patch{}, err
	}
	if patch.TeamGoals, err = requiredField("team_goals", r.TeamGoals); err != nil {
		return match.Patch{}, err
	}
	if patch.OpponentGoals, err = requiredField("opponent_goals", r.OpponentGoals); err != nil {
		return match.Patch{}, err
	}
	patch.Location = nullableField(r.Location)
	patch.Competition = nullableField(r.Competition)
	patch.TeamID = nullableField(r.TeamID)
	patch.TeamName = nullableField(r.TeamName)
	patch.ParticipantHomeID = nullableField(r.ParticipantHomeID)
	patch.ParticipantAwayID = nullableField(r.ParticipantAwayID)

	return patch, nil
}

type matchDTO struct {
	ID                int64   `json:"id"`
	Date              *string `json:"date"`
	ScheduledStart    *string `json:"scheduled_start"`
	DurationMinutes   int     `json:"duration_minutes"`
	Opponent          string  `json:"opponent"`
	Location          *string `json:"location"`
	Competition       *string `json:"competition"`
	TeamGoals         int     `json:"team_goals"`
	OpponentGoals     int     `json:"opponent_goals"`
	TeamID            *int64  `json:"team_id"`
	TeamName          *string `json:"team_name"`
	ParticipantHomeID *int64  `json:"participant_home_id"`
	ParticipantAwayID *int64  `json:"participant_away_id"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:                m.ID,
		Date:              formatOptionalTime(m.Date),
		ScheduledStart:    formatOptionalTime(m.ScheduledStart),
		DurationMinutes:   m.DurationMinutes,
		Opponent:          m.Opponent,
		Location:          m.Location,
		Competition:       m.Competition,
		TeamGoals:         m.TeamGoals,
		OpponentGoals:     m.OpponentGoals,
		TeamID:            m.TeamID,
		TeamName:          m.TeamName,
		ParticipantHomeID: m.ParticipantHomeID,
		ParticipantAwayID: m.ParticipantAwayID,
		CreatedAt:         formatTime(m.CreatedAt),
		UpdatedAt:         formatTime(m.UpdatedAt),
	}
}

type recomputeScoresRequest struct {
	MatchIDs []int64 `json:"match_ids" validate:"required,min=1,max=500,dive,gt=0"`
}

type scoreDTO struct {
	MatchID       int64  `json:"match_id"`
	Found         bool   `json:"found"`
	TeamGoals     int    `json:"team_goals"`
	OpponentGoals int    `json:"opponent_goals"`
	Error         string `json:"error,omitempty"`
}

func scoreToDTO(r usecase.ScoreResult) scoreDTO {
	out := scoreDTO{
		MatchID:       r.MatchID,
		Found:         r.Found,
		TeamGoals:     r.TeamGoals,
		OpponentGoals: r.OpponentGoals,
	}
	if r.Err != nil {
		out.Error = "score recompute failed"
	}
	return out
}

type addStatRequest struct {
	PlayerID      int64 `json:"player_id" validate:"required,gt=0"`
	MatchID       int64 `json:"match_id" validate:"required,gt=0"`
	Goals         int   `json:"goals" validate:"gte=0"`
	Assists       int   `json:"assists" validate:"gte=0"`
	MinutesPlayed int   `json:"minutes_played" validate:"gte=0,lte=120"`
}

type updateStatRequest struct {
	Goals         *int `json:"goals" validate:"omitnil,gte=0"`
	Assists       *int `json:"assists" validate:"omitnil,gte=0"`
	MinutesPlayed *int `json:"minutes_played" validate:"omitnil,gte=0,lte=120"`
}

type statDTO struct {
	ID            int64   `json:"id"`
	PlayerID      int64   `json:"player_id"`
	MatchID       int64   `json:"match_id"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	MinutesPlayed int     `json:"minutes_played"`
	Rating        float64 `json:"rating"`
}

func statToDTO(s stat.Stat) statDTO {
	return statDTO{
		ID:            s.ID,
		PlayerID:      s.PlayerID,
		MatchID:       s.MatchID,
		Goals:         s.Goals,
		Assists:       s.Assists,
		MinutesPlayed: s.MinutesPlayed,
		Rating:        s.Rating,
	}
}

type resolveParticipantRequest struct {
	Opponent string `json:"opponent" validate:"required,max=200"`
}

type participantDTO struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name"`
	ClubID       *int64  `json:"club_id"`
	ClubName     *string `json:"club_name"`
	ExternalName *string `json:"external_name"`
	ExternalKey  *string `json:"external_key"`
}

func participantToDTO(p participant.Participant) participantDTO {
	return participantDTO{
		ID:           p.ID,
		Name:         p.Name(),
		ClubID:       p.ClubID,
		ClubName:     p.ClubName,
		ExternalName: p.ExternalName,
		ExternalKey:  p.ExternalKey,
	}
}

type createClubRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type clubDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{ID: c.ID, Name: c.Name}
}
