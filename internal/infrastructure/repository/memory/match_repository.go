package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/domain/storage"
)

type MatchRepository struct {
	mu      sync.RWMutex
	nextID  int64
	matches map[int64]match.Match
	stats   *StatRepository
	now     func() time.Time

	teams        *TeamRepository
	participants *ParticipantRepository
}

// NewMatchRepository stores matches in memory. Deleting a match also deletes
// its rows in stats when stats is non-nil.
func NewMatchRepository(stats *StatRepository) *MatchRepository {
	return &MatchRepository{
		matches: make(map[int64]match.Match),
		stats:   stats,
		now:     time.Now,
	}
}

// checkRefs mirrors the foreign keys of the postgres schema. Repositories
// built without teams or participants accept any id.
func (r *MatchRepository) checkRefs(ctx context.Context, teamID, homeID, awayID *int64) error {
	if teamID != nil && r.teams != nil {
		if _, ok, _ := r.teams.GetByID(ctx, *teamID); !ok {
			return fmt.Errorf("%w: team_id=%d", storage.ErrMissingReference, *teamID)
		}
	}
	if r.participants == nil {
		return nil
	}
	for _, ref := range []struct {
		field string
		id    *int64
	}{{"participant_home_id", homeID}, {"participant_away_id", awayID}} {
		if ref.id == nil {
			continue
		}
		if _, ok, _ := r.participants.GetByID(ctx, *ref.id); !ok {
			return fmt.Errorf("%w: %s=%d", storage.ErrMissingReference, ref.field, *ref.id)
		}
	}
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) FindExisting(_ context.Context, c match.Criteria) (int64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found int64
		ok    bool
	)
	for id, item := range r.matches {
		if !c.Matches(item) {
			continue
		}
		if !ok || id < found {
			found, ok = id, true
		}
	}
	return found, ok, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) (int64, error) {
	if err := r.checkRefs(ctx, item.TeamID, item.ParticipantHomeID, item.ParticipantAwayID); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.now().UTC()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}
	r.matches[item.ID] = item
	return item.ID, nil
}

func (r *MatchRepository) Update(ctx context.Context, matchID int64, patch match.Patch) error {
	var teamID, homeID, awayID *int64
	if patch.TeamID.Set {
		teamID = patch.TeamID.Value
	}
	if patch.ParticipantHomeID.Set {
		homeID = patch.ParticipantHomeID.Value
	}
	if patch.ParticipantAwayID.Set {
		awayID = patch.ParticipantAwayID.Value
	}
	if err := r.checkRefs(ctx, teamID, homeID, awayID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return nil
	}
	item = patch.Apply(item)
	item.UpdatedAt = r.now().UTC()
	r.matches[matchID] = item
	return nil
}

func (r *MatchRepository) UpdateScore(_ context.Context, matchID int64, teamGoals, opponentGoals int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return nil
	}
	item.TeamGoals = teamGoals
	item.OpponentGoals = opponentGoals
	item.UpdatedAt = r.now().UTC()
	r.matches[matchID] = item
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID int64) (bool, error) {
	r.mu.Lock()
	_, ok := r.matches[matchID]
	delete(r.matches, matchID)
	r.mu.Unlock()

	if ok && r.stats != nil {
		r.stats.deleteByMatch(matchID)
	}
	return ok, nil
}

// List orders by date with undated matches last, then by id.
func (r *MatchRepository) List(_ context.Context, filter match.ListFilter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		if filter.TeamID != nil && (item.TeamID == nil || *item.TeamID != *filter.TeamID) {
			continue
		}
		if filter.From != nil && (item.Date == nil || item.Date.Before(*filter.From)) {
			continue
		}
		if filter.To != nil && (item.Date == nil || !item.Date.Before(*filter.To)) {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Date == nil && b.Date == nil:
			return a.ID < b.ID
		case a.Date == nil:
			return false
		case b.Date == nil:
			return true
		case !a.Date.Equal(*b.Date):
			return a.Date.Before(*b.Date)
		default:
			return a.ID < b.ID
		}
	})
	return out, nil
}
