package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/soccer-academy/internal/domain/stat"
)

type StatRepository struct {
	mu      sync.RWMutex
	nextID  int64
	stats   map[int64]stat.Stat
	players *PlayerRepository
}

func NewStatRepository(players *PlayerRepository) *StatRepository {
	return &StatRepository{
		stats:   make(map[int64]stat.Stat),
		players: players,
	}
}

func (r *StatRepository) GetByID(_ context.Context, statID int64) (stat.Stat, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.stats[statID]
	return item, ok, nil
}

func (r *StatRepository) ListByMatch(_ context.Context, matchID int64) ([]stat.Stat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stat.Stat, 0)
	for _, item := range r.stats {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *StatRepository) Insert(_ context.Context, item stat.Stat) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	r.stats[item.ID] = item
	return item.ID, nil
}

func (r *StatRepository) Update(_ context.Context, item stat.Stat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stats[item.ID]; ok {
		r.stats[item.ID] = item
	}
	return nil
}

func (r *StatRepository) Delete(_ context.Context, statID int64) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.stats[statID]
	if !ok {
		return 0, false, nil
	}
	delete(r.stats, statID)
	return item.MatchID, true, nil
}

func (r *StatRepository) SumGoalsBySide(_ context.Context, matchID int64, teamID *int64) (stat.SideGoals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out stat.SideGoals
	for _, item := range r.stats {
		if item.MatchID != matchID {
			continue
		}
		var playerTeam *int64
		if r.players != nil {
			playerTeam = r.players.teamOf(item.PlayerID)
		}
		if teamID != nil && playerTeam != nil && *playerTeam == *teamID {
			out.TeamGoals += item.Goals
		} else {
			out.OpponentGoals += item.Goals
		}
	}
	return out, nil
}

func (r *StatRepository) deleteByMatch(matchID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.stats {
		if item.MatchID == matchID {
			delete(r.stats, id)
		}
	}
}
