package stat

import "context"

type Repository interface {
	GetByID(ctx context.Context, statID int64) (Stat, bool, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Stat, error)
	Insert(ctx context.Context, item Stat) (int64, error)
	Update(ctx context.Context, item Stat) error
	// Delete removes the row and reports the match it belonged to.
	Delete(ctx context.Context, statID int64) (matchID int64, found bool, err error)
	// SumGoalsBySide splits the match's stat goals by whether the scorer's
	// team equals teamID. Goals from players with no team, or when teamID is
	// nil, count for the opponent.
	SumGoalsBySide(ctx context.Context, matchID int64, teamID *int64) (SideGoals, error)
}
