package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccer-academy/internal/domain/storage"
)

type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Repositories() storage.Repositories {
	return newRepositories(m.db)
}

// WithinTx commits when fn returns nil. The deferred rollback covers errors
// and panics and is a no-op after commit.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func newRepositories(db sqlx.ExtContext) storage.Repositories {
	return storage.Repositories{
		Teams:        NewTeamRepository(db),
		Clubs:        NewClubRepository(db),
		Participants: NewParticipantRepository(db),
		Players:      NewPlayerRepository(db),
		Matches:      NewMatchRepository(db),
		Stats:        NewStatRepository(db),
	}
}
