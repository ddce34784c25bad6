package match

import "context"

type Repository interface {
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	// FindExisting returns the first match equal to c under null-safe comparison.
	FindExisting(ctx context.Context, c Criteria) (int64, bool, error)
	Insert(ctx context.Context, item Match) (int64, error)
	Update(ctx context.Context, matchID int64, patch Patch) error
	UpdateScore(ctx context.Context, matchID int64, teamGoals, opponentGoals int) error
	Delete(ctx context.Context, matchID int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Match, error)
}
