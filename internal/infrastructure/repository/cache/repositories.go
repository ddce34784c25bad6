package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	basecache "github.com/riskibarqy/soccer-academy/internal/platform/cache"
)

const clubKeyPrefix = "club:"

// ClubRepository caches club reads. Any successful Create drops every club
// entry.
type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	v, err := r.cache.GetOrLoad(ctx, clubKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]club.Club(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return append([]club.Club(nil), items...), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	key := clubKeyPrefix + "id:" + strconv.FormatInt(clubID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

// FindByLowerName is not cached: it backs the find-or-create path, which
// must observe rows inserted by concurrent writers.
func (r *ClubRepository) FindByLowerName(ctx context.Context, key string) (club.Club, bool, error) {
	return r.next.FindByLowerName(ctx, key)
}

func (r *ClubRepository) Create(ctx context.Context, name string) (club.Club, error) {
	item, err := r.next.Create(ctx, name)
	if err != nil {
		return club.Club{}, err
	}
	r.cache.InvalidatePrefix(ctx, clubKeyPrefix)
	return item, nil
}

type cachedClub struct {
	value  club.Club
	exists bool
}
