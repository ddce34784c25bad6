package team

import "context"

// Repository describes team lookups needed while reconciling matches.
type Repository interface {
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
}
