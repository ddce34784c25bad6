package memory

import (
	"context"

	"github.com/riskibarqy/soccer-academy/internal/domain/storage"
)

// TxManager runs callbacks directly against the shared in-memory
// repositories. Writes are not rolled back on error.
type TxManager struct {
	repos storage.Repositories
}

func NewTxManager(repos storage.Repositories) *TxManager {
	return &TxManager{repos: repos}
}

func (m *TxManager) Repositories() storage.Repositories {
	return m.repos
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	return fn(ctx, m.repos)
}

// Store bundles the in-memory repositories so tests and the memory storage
// mode can seed and inspect them.
type Store struct {
	Teams        *TeamRepository
	Clubs        *ClubRepository
	Participants *ParticipantRepository
	Players      *PlayerRepository
	Matches      *MatchRepository
	Stats        *StatRepository
}

func NewStore(seed Seed) *Store {
	clubs := NewClubRepository(seed.Clubs)
	players := NewPlayerRepository(seed.Players)
	stats := NewStatRepository(players)
	teams := NewTeamRepository(seed.Teams)
	participants := NewParticipantRepository(clubs, seed.Participants)

	matches := NewMatchRepository(stats)
	matches.teams = teams
	matches.participants = participants

	return &Store{
		Teams:        teams,
		Clubs:        clubs,
		Participants: participants,
		Players:      players,
		Matches:      matches,
		Stats:        stats,
	}
}

func (s *Store) Repositories() storage.Repositories {
	return storage.Repositories{
		Teams:        s.Teams,
		Clubs:        s.Clubs,
		Participants: s.Participants,
		Players:      s.Players,
		Matches:      s.Matches,
		Stats:        s.Stats,
	}
}

func (s *Store) TxManager() *TxManager {
	return NewTxManager(s.Repositories())
}
