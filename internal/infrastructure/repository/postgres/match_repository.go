package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	qb "github.com/riskibarqy/soccer-academy/internal/platform/querybuilder"
)

type MatchRepository struct {
	db sqlx.ExtContext
}

func NewMatchRepository(db sqlx.ExtContext) *MatchRepository {
	return &MatchRepository{db: db}
}

func matchSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id",
		"date",
		"scheduled_start",
		"duration_minutes",
		"opponent",
		"location",
		"competition",
		"team_goals",
		"opponent_goals",
		"team_id",
		"team_name",
		"participant_home_id",
		"participant_away_id",
		"created_at",
		"updated_at",
	).From("matches")
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := matchSelectBuilder().
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) FindExisting(ctx context.Context, c match.Criteria) (int64, bool, error) {
	query, args, err := qb.Select("id").From("matches").
		Where(
			qb.NullSafeEq("date", c.Date),
			qb.Eq("opponent", c.Opponent),
			qb.NullSafeEq("location", c.Location),
			qb.NullSafeEq("competition", c.Competition),
			qb.NullSafeEq("team_id", c.TeamID),
			qb.NullSafeEq("team_name", c.TeamName),
			qb.NullSafeEq("participant_home_id", c.ParticipantHomeID),
			qb.NullSafeEq("participant_away_id", c.ParticipantAwayID),
		).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build find existing match query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find existing match: %w", err)
	}
	return id, true, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) (int64, error) {
	query, args, err := qb.InsertModel("matches", matchInsertModel{
		Date:              item.Date,
		ScheduledStart:    item.ScheduledStart,
		DurationMinutes:   item.DurationMinutes,
		Opponent:          item.Opponent,
		Location:          item.Location,
		Competition:       item.Competition,
		TeamGoals:         item.TeamGoals,
		OpponentGoals:     item.OpponentGoals,
		TeamID:            item.TeamID,
		TeamName:          item.TeamName,
		ParticipantHomeID: item.ParticipantHomeID,
		ParticipantAwayID: item.ParticipantAwayID,
	}, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert match query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert match: %w", missingRefOrErr(err))
	}
	return id, nil
}

// Update writes exactly the fields set in patch.
func (r *MatchRepository) Update(ctx context.Context, matchID int64, patch match.Patch) error {
	builder := qb.Update("matches")
	setIf(builder, "date", patch.Date)
	setIf(builder, "scheduled_start", patch.ScheduledStart)
	setIf(builder, "duration_minutes", patch.DurationMinutes)
	setIf(builder, "opponent", patch.Opponent)
	setIf(builder, "location", patch.Location)
	setIf(builder, "competition", patch.Competition)
	setIf(builder, "team_goals", patch.TeamGoals)
	setIf(builder, "opponent_goals", patch.OpponentGoals)
	setIf(builder, "team_id", patch.TeamID)
	setIf(builder, "team_name", patch.TeamName)
	setIf(builder, "participant_home_id", patch.ParticipantHomeID)
	setIf(builder, "participant_away_id", patch.ParticipantAwayID)
	if !builder.HasSets() {
		return nil
	}

	query, args, err := builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match: %w", missingRefOrErr(err))
	}
	return nil
}

func setIf[T any](builder *qb.UpdateBuilder, column string, field match.Field[T]) {
	if field.Set {
		builder.Set(column, field.Value)
	}
}

func (r *MatchRepository) UpdateScore(ctx context.Context, matchID int64, teamGoals, opponentGoals int) error {
	query, args, err := qb.Update("matches").
		Set("team_goals", teamGoals).
		Set("opponent_goals", opponentGoals).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	return nil
}

// Delete removes the match; stats rows go with it through ON DELETE CASCADE.
func (r *MatchRepository) Delete(ctx context.Context, matchID int64) (bool, error) {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete match rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	conds := make([]qb.Condition, 0, 3)
	if filter.TeamID != nil {
		conds = append(conds, qb.Eq("team_id", *filter.TeamID))
	}
	if filter.From != nil {
		conds = append(conds, qb.Gte("date", filter.From.UTC()))
	}
	if filter.To != nil {
		conds = append(conds, qb.Lt("date", filter.To.UTC()))
	}

	query, args, err := matchSelectBuilder().
		Where(conds...).
		OrderBy("date ASC NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:                row.ID,
		Date:              nullTimePtr(row.Date),
		ScheduledStart:    nullTimePtr(row.ScheduledStart),
		DurationMinutes:   row.DurationMinutes,
		Opponent:          row.Opponent,
		Location:          nullStringPtr(row.Location),
		Competition:       nullStringPtr(row.Competition),
		TeamGoals:         row.TeamGoals,
		OpponentGoals:     row.OpponentGoals,
		TeamID:            nullInt64Ptr(row.TeamID),
		TeamName:          nullStringPtr(row.TeamName),
		ParticipantHomeID: nullInt64Ptr(row.ParticipantHomeID),
		ParticipantAwayID: nullInt64Ptr(row.ParticipantAwayID),
		CreatedAt:         row.CreatedAt.UTC(),
		UpdatedAt:         row.UpdatedAt.UTC(),
	}
}
