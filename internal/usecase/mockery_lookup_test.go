package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/domain/player"
	"github.com/riskibarqy/soccer-academy/internal/domain/team"
	"github.com/riskibarqy/soccer-academy/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/soccer-academy/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/soccer-academy/internal/mocks/domain/team"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

func TestResolveTeamName_TeamLookupErrorPropagatesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	lookupErr := errors.New("connection reset")

	teamRepo.On("GetByID", ctx, int64(5)).Return(team.Team{}, false, lookupErr).Once()

	resolver := newIdentityResolver(Repositories{Teams: teamRepo})
	if _, err := resolver.resolveTeamName(ctx, ptr(int64(5)), nil, ptr("Provided")); !errors.Is(err, lookupErr) {
		t.Fatalf("expected team lookup error, got %v", err)
	}
}

func TestMatchService_Create_UnknownTeamIsNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	teamRepo := teammock.NewRepository(t)
	repos := store.Repositories()
	repos.Teams = teamRepo

	teamRepo.On("GetByID", mock.Anything, int64(77)).Return(team.Team{}, false, nil).Once()

	service := NewMatchService(memory.NewTxManager(repos), nil, logging.NewNop())
	_, err := service.Create(ctx, CreateMatchInput{Opponent: "Rivals", TeamID: ptr(int64(77)), TeamName: ptr("Typed Name")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
	if !strings.Contains(err.Error(), "team_id=77") {
		t.Fatalf("expected error to name team_id, got %q", err.Error())
	}
	if items, _ := store.Matches.List(ctx, match.ListFilter{}); len(items) != 0 {
		t.Fatalf("expected no match written, got %d", len(items))
	}
}

func TestStatService_Add_UnknownPlayerIsNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	matchID := seedScoringFixture(t, store)
	playerRepo := playermock.NewRepository(t)
	repos := store.Repositories()
	repos.Players = playerRepo

	playerRepo.On("GetByID", mock.Anything, int64(404)).Return(player.Player{}, false, nil).Once()

	tx := memory.NewTxManager(repos)
	service := NewStatService(tx, NewScoreService(tx, nil, logging.NewNop(), 1), logging.NewNop())

	_, err := service.Add(ctx, AddStatInput{PlayerID: 404, MatchID: matchID, MinutesPlayed: 30})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
	if rows, _ := store.Stats.ListByMatch(ctx, matchID); len(rows) != 0 {
		t.Fatalf("expected no stat rows, got %d", len(rows))
	}
}

func TestStatService_Add_PlayerLookupFailureIsInternalUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	matchID := seedScoringFixture(t, store)
	playerRepo := playermock.NewRepository(t)
	repos := store.Repositories()
	repos.Players = playerRepo

	playerRepo.On("GetByID", mock.Anything, int64(50)).Return(player.Player{}, false, errors.New("pq: relation \"players\" does not exist")).Once()

	tx := memory.NewTxManager(repos)
	service := NewStatService(tx, NewScoreService(tx, nil, logging.NewNop(), 1), logging.NewNop())

	_, err := service.Add(ctx, AddStatInput{PlayerID: 50, MatchID: matchID, MinutesPlayed: 30})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if err.Error() != "internal error: add stat" {
		t.Fatalf("storage detail leaked: %q", err.Error())
	}
}
