package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	qb "github.com/riskibarqy/soccer-academy/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db sqlx.ExtContext
}

func NewParticipantRepository(db sqlx.ExtContext) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func participantSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"p.id",
		"p.club_id",
		"c.name AS club_name",
		"p.external_name",
		"p.external_key",
	).From("participants p LEFT JOIN clubs c ON c.id = p.club_id")
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID int64) (participant.Participant, bool, error) {
	return r.getOne(ctx, "get participant", qb.Eq("p.id", participantID))
}

func (r *ParticipantRepository) FindByClubID(ctx context.Context, clubID int64) (participant.Participant, bool, error) {
	return r.getOne(ctx, "find participant by club", qb.Eq("p.club_id", clubID))
}

func (r *ParticipantRepository) FindByExternalKey(ctx context.Context, key string) (participant.Participant, bool, error) {
	return r.getOne(ctx, "find participant by external key", qb.Eq("p.external_key", key))
}

func (r *ParticipantRepository) getOne(ctx context.Context, op string, cond qb.Condition) (participant.Participant, bool, error) {
	query, args, err := participantSelectBuilder().
		Where(cond).
		OrderBy("p.id").
		Limit(1).
		ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row participantTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return participant.Participant{
		ID:           row.ID,
		ClubID:       nullInt64Ptr(row.ClubID),
		ClubName:     nullStringPtr(row.ClubName),
		ExternalName: nullStringPtr(row.ExternalName),
		ExternalKey:  nullStringPtr(row.ExternalKey),
	}, true, nil
}

// Insert relies on the unique indexes on club_id and external_key. A clash
// returns no row and is reported as a conflict so the surrounding
// transaction stays usable.
func (r *ParticipantRepository) Insert(ctx context.Context, item participant.New) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}

	query, args, err := qb.InsertModel("participants", participantInsertModel{
		ClubID:       item.ClubID,
		ExternalName: item.ExternalName,
		ExternalKey:  item.ExternalKey(),
	}, `ON CONFLICT DO NOTHING
RETURNING id`)
	if err != nil {
		return 0, fmt.Errorf("build insert participant query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert participant: %w", conflictOrErr(err, "participant already exists"))
	}
	return id, nil
}
