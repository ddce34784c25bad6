package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/soccer-academy/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[int64]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[int64]player.Player, len(players))
	for _, item := range players {
		byID[item.ID] = item
	}

	return &PlayerRepository{players: byID}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) Put(item player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.ID] = item
}

func (r *PlayerRepository) teamOf(playerID int64) *int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	if !ok {
		return nil
	}
	return item.TeamID
}
