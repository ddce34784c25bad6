package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccer-academy/internal/domain/stat"
	qb "github.com/riskibarqy/soccer-academy/internal/platform/querybuilder"
)

// sumGoalsBySideQuery attributes every goal not scored by a player of the
// match's team to the opponent, including players without a team.
const sumGoalsBySideQuery = `
SELECT
	COALESCE(SUM(CASE WHEN $2::bigint IS NOT NULL AND p.team_id = $2::bigint THEN s.goals ELSE 0 END), 0) AS team_goals,
	COALESCE(SUM(CASE WHEN $2::bigint IS NOT NULL AND p.team_id = $2::bigint THEN 0 ELSE s.goals END), 0) AS opponent_goals
FROM stats s
JOIN players p ON p.id = s.player_id
WHERE s.match_id = $1`

type StatRepository struct {
	db sqlx.ExtContext
}

func NewStatRepository(db sqlx.ExtContext) *StatRepository {
	return &StatRepository{db: db}
}

func statSelectBuilder() *qb.SelectBuilder {
	return qb.Select("id", "player_id", "match_id", "goals", "assists", "minutes_played", "rating").From("stats")
}

func (r *StatRepository) GetByID(ctx context.Context, statID int64) (stat.Stat, bool, error) {
	query, args, err := statSelectBuilder().
		Where(qb.Eq("id", statID)).
		ToSQL()
	if err != nil {
		return stat.Stat{}, false, fmt.Errorf("build get stat query: %w", err)
	}

	var row statTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stat.Stat{}, false, nil
		}
		return stat.Stat{}, false, fmt.Errorf("get stat: %w", err)
	}
	return statFromRow(row), true, nil
}

func (r *StatRepository) ListByMatch(ctx context.Context, matchID int64) ([]stat.Stat, error) {
	query, args, err := statSelectBuilder().
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stats query: %w", err)
	}

	var rows []statTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stats by match: %w", err)
	}

	out := make([]stat.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, statFromRow(row))
	}
	return out, nil
}

func (r *StatRepository) Insert(ctx context.Context, item stat.Stat) (int64, error) {
	query, args, err := qb.InsertModel("stats", statInsertModel{
		PlayerID:      item.PlayerID,
		MatchID:       item.MatchID,
		Goals:         item.Goals,
		Assists:       item.Assists,
		MinutesPlayed: item.MinutesPlayed,
		Rating:        item.Rating,
	}, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert stat query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert stat: %w", err)
	}
	return id, nil
}

func (r *StatRepository) Update(ctx context.Context, item stat.Stat) error {
	query, args, err := qb.Update("stats").
		Set("goals", item.Goals).
		Set("assists", item.Assists).
		Set("minutes_played", item.MinutesPlayed).
		Set("rating", item.Rating).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update stat query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update stat: %w", err)
	}
	return nil
}

func (r *StatRepository) Delete(ctx context.Context, statID int64) (int64, bool, error) {
	query, args, err := qb.DeleteFrom("stats").
		Where(qb.Eq("id", statID)).
		Suffix("RETURNING match_id").
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build delete stat query: %w", err)
	}

	var matchID int64
	if err := sqlx.GetContext(ctx, r.db, &matchID, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("delete stat: %w", err)
	}
	return matchID, true, nil
}

func (r *StatRepository) SumGoalsBySide(ctx context.Context, matchID int64, teamID *int64) (stat.SideGoals, error) {
	var row sideGoalsRow
	if err := sqlx.GetContext(ctx, r.db, &row, sumGoalsBySideQuery, matchID, teamID); err != nil {
		return stat.SideGoals{}, fmt.Errorf("sum goals by side: %w", err)
	}
	return stat.SideGoals{TeamGoals: row.TeamGoals, OpponentGoals: row.OpponentGoals}, nil
}

func statFromRow(row statTableModel) stat.Stat {
	return stat.Stat{
		ID:            row.ID,
		PlayerID:      row.PlayerID,
		MatchID:       row.MatchID,
		Goals:         row.Goals,
		Assists:       row.Assists,
		MinutesPlayed: row.MinutesPlayed,
		Rating:        row.Rating,
	}
}
