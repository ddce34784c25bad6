package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	"github.com/riskibarqy/soccer-academy/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the default academy into an empty database. Sequences
// are moved past the seeded ids so later inserts do not collide.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := memory.DefaultSeed()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, query string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, t := range seed.Teams {
		if err := exec(fmt.Sprintf("team %d", t.ID), `
INSERT INTO teams (id, name, age_limit)
VALUES (:id, :name, :age_limit)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        t.ID,
			"name":      t.Name,
			"age_limit": t.AgeLimit,
		}); err != nil {
			return err
		}
	}

	for _, c := range seed.Clubs {
		if err := exec(fmt.Sprintf("club %d", c.ID), `
INSERT INTO clubs (id, name)
VALUES (:id, :name)
ON CONFLICT DO NOTHING`, map[string]any{
			"id":   c.ID,
			"name": c.Name,
		}); err != nil {
			return err
		}
	}

	for _, p := range seed.Participants {
		item := participant.New{ClubID: p.ClubID, ExternalName: p.ExternalName}
		if err := exec(fmt.Sprintf("participant %d", p.ID), `
INSERT INTO participants (id, club_id, external_name, external_key)
VALUES (:id, :club_id, :external_name, :external_key)
ON CONFLICT DO NOTHING`, map[string]any{
			"id":            p.ID,
			"club_id":       p.ClubID,
			"external_name": p.ExternalName,
			"external_key":  item.ExternalKey(),
		}); err != nil {
			return err
		}
	}

	for _, p := range seed.Players {
		if err := exec(fmt.Sprintf("player %d", p.ID), `
INSERT INTO players (id, name, team_id)
VALUES (:id, :name, :team_id)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":      p.ID,
			"name":    p.Name,
			"team_id": p.TeamID,
		}); err != nil {
			return err
		}
	}

	for _, table := range []string{"teams", "clubs", "participants", "players"} {
		query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))`, table, table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("advance %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
