package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/soccer-academy/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[int64]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byID := make(map[int64]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}

	return &TeamRepository{teams: byID}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

// Put stores or replaces a team.
func (r *TeamRepository) Put(item team.Team) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[item.ID] = item
}

// Remove drops a team, leaving matches that reference it dangling.
func (r *TeamRepository) Remove(teamID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.teams, teamID)
}
