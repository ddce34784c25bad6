package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	qb "github.com/riskibarqy/soccer-academy/internal/platform/querybuilder"
)

type ClubRepository struct {
	db sqlx.ExtContext
}

func NewClubRepository(db sqlx.ExtContext) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) FindByLowerName(ctx context.Context, key string) (club.Club, bool, error) {
	return r.getOne(ctx, "find club by name", qb.Eq("lower(name)", key))
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	return r.getOne(ctx, "get club", qb.Eq("id", clubID))
}

func (r *ClubRepository) getOne(ctx context.Context, op string, cond qb.Condition) (club.Club, bool, error) {
	query, args, err := qb.Select("id", "name").From("clubs").
		Where(cond).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row clubTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return club.Club{ID: row.ID, Name: row.Name}, true, nil
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("id", "name").From("clubs").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, club.Club{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (r *ClubRepository) Create(ctx context.Context, name string) (club.Club, error) {
	query, args, err := qb.InsertModel("clubs", clubInsertModel{Name: name}, `ON CONFLICT DO NOTHING
RETURNING id, name`)
	if err != nil {
		return club.Club{}, fmt.Errorf("build insert club query: %w", err)
	}

	var row clubTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return club.Club{}, fmt.Errorf("insert club: %w", conflictOrErr(err, fmt.Sprintf("club %q already exists", name)))
	}
	return club.Club{ID: row.ID, Name: row.Name}, nil
}
