package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	"github.com/riskibarqy/soccer-academy/internal/platform/resilience"
)

type ClubRepository struct {
	mu     sync.RWMutex
	nextID int64
	clubs  map[int64]club.Club
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	r := &ClubRepository{clubs: make(map[int64]club.Club, len(clubs))}
	for _, item := range clubs {
		r.clubs[item.ID] = item
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
	}
	return r
}

func (r *ClubRepository) FindByLowerName(_ context.Context, key string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findLocked(key)
}

func (r *ClubRepository) findLocked(key string) (club.Club, bool, error) {
	var (
		found club.Club
		ok    bool
	)
	for _, item := range r.clubs {
		if club.LookupKey(item.Name) != key {
			continue
		}
		if !ok || item.ID < found.ID {
			found, ok = item, true
		}
	}
	return found, ok, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID int64) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.clubs[clubID]
	return item, ok, nil
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.clubs))
	for _, item := range r.clubs {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ClubRepository) Create(_ context.Context, name string) (club.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists, _ := r.findLocked(club.LookupKey(name)); exists {
		return club.Club{}, resilience.MarkConflict(fmt.Errorf("club name %q already exists", name))
	}

	r.nextID++
	item := club.Club{ID: r.nextID, Name: name}
	r.clubs[item.ID] = item
	return item, nil
}

func (r *ClubRepository) name(clubID int64) *string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.clubs[clubID]
	if !ok {
		return nil
	}
	name := item.Name
	return &name
}
