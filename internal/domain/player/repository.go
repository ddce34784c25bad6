package player

import "context"

type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
}
