package storage

import (
	"context"

	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	"github.com/riskibarqy/soccer-academy/internal/domain/player"
	"github.com/riskibarqy/soccer-academy/internal/domain/stat"
	"github.com/riskibarqy/soccer-academy/internal/domain/team"
)

// Repositories groups the repositories bound to one storage scope, either
// the shared connection pool or a single transaction.
type Repositories struct {
	Teams        team.Repository
	Clubs        club.Repository
	Participants participant.Repository
	Players      player.Repository
	Matches      match.Repository
	Stats        stat.Repository
}

// TxManager runs fn inside one storage transaction. A nil return commits;
// any error (or panic) rolls back.
type TxManager interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
