package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	"github.com/riskibarqy/soccer-academy/internal/platform/resilience"
)

// ParticipantRepository enforces the same uniqueness on club id and external
// key as the relational schema.
type ParticipantRepository struct {
	mu           sync.RWMutex
	nextID       int64
	participants map[int64]participant.Participant
	clubs        *ClubRepository
}

func NewParticipantRepository(clubs *ClubRepository, participants []participant.Participant) *ParticipantRepository {
	r := &ParticipantRepository{
		participants: make(map[int64]participant.Participant, len(participants)),
		clubs:        clubs,
	}
	for _, item := range participants {
		r.participants[item.ID] = item
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
	}
	return r
}

func (r *ParticipantRepository) GetByID(_ context.Context, participantID int64) (participant.Participant, bool, error) {
	r.mu.RLock()
	item, ok := r.participants[participantID]
	r.mu.RUnlock()
	if !ok {
		return participant.Participant{}, false, nil
	}
	return r.withClubName(item), true, nil
}

func (r *ParticipantRepository) FindByClubID(_ context.Context, clubID int64) (participant.Participant, bool, error) {
	item, ok := r.first(func(p participant.Participant) bool {
		return p.ClubID != nil && *p.ClubID == clubID
	})
	if !ok {
		return participant.Participant{}, false, nil
	}
	return r.withClubName(item), true, nil
}

func (r *ParticipantRepository) FindByExternalKey(_ context.Context, key string) (participant.Participant, bool, error) {
	item, ok := r.first(func(p participant.Participant) bool {
		return p.ExternalKey != nil && *p.ExternalKey == key
	})
	if !ok {
		return participant.Participant{}, false, nil
	}
	return r.withClubName(item), true, nil
}

func (r *ParticipantRepository) Insert(_ context.Context, item participant.New) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	key := item.ExternalKey()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.participants {
		if item.ClubID != nil && existing.ClubID != nil && *existing.ClubID == *item.ClubID {
			return 0, resilience.MarkConflict(fmt.Errorf("participant for club %d already exists", *item.ClubID))
		}
		if key != nil && existing.ExternalKey != nil && *existing.ExternalKey == *key {
			return 0, resilience.MarkConflict(fmt.Errorf("participant with external key %q already exists", *key))
		}
	}

	r.nextID++
	r.participants[r.nextID] = participant.Participant{
		ID:           r.nextID,
		ClubID:       item.ClubID,
		ExternalName: item.ExternalName,
		ExternalKey:  key,
	}
	return r.nextID, nil
}

func (r *ParticipantRepository) first(pred func(participant.Participant) bool) (participant.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found participant.Participant
		ok    bool
	)
	for _, item := range r.participants {
		if !pred(item) {
			continue
		}
		if !ok || item.ID < found.ID {
			found, ok = item, true
		}
	}
	return found, ok
}

func (r *ParticipantRepository) withClubName(item participant.Participant) participant.Participant {
	if item.ClubID != nil && r.clubs != nil {
		item.ClubName = r.clubs.name(*item.ClubID)
	}
	return item
}
