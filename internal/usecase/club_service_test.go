package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	"github.com/riskibarqy/soccer-academy/internal/infrastructure/repository/memory"
	clubmock "github.com/riskibarqy/soccer-academy/internal/mocks/domain/club"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
	"github.com/riskibarqy/soccer-academy/internal/platform/resilience"
)

func TestClubService_CreateAndDuplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	service := NewClubService(store.Clubs, logging.NewNop())

	created, err := service.Create(ctx, "  Lakeside   Wanderers ")
	if err != nil {
		t.Fatalf("create club: %v", err)
	}
	if created.Name != "Lakeside Wanderers" {
		t.Fatalf("unexpected club name: %q", created.Name)
	}

	_, err = service.Create(ctx, "LAKESIDE WANDERERS")
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dup.ExistingID != created.ID {
		t.Fatalf("expected existing id %d, got %d", created.ID, dup.ExistingID)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate must classify as invalid input")
	}

	if _, err := service.Create(ctx, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	items, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list clubs: %v", err)
	}
	if len(items) != len(memory.DefaultSeed().Clubs)+1 {
		t.Fatalf("unexpected club count: %d", len(items))
	}
}

func TestClubService_CreateLostRaceReportsWinnerUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	winner := club.Club{ID: 42, Name: "Lakeside Wanderers"}

	clubRepo.On("FindByLowerName", ctx, "lakeside wanderers").Return(club.Club{}, false, nil).Once()
	clubRepo.On("Create", ctx, "Lakeside Wanderers").Return(club.Club{}, resilience.MarkConflict(errors.New("duplicate key"))).Once()
	clubRepo.On("FindByLowerName", ctx, "lakeside wanderers").Return(winner, true, nil).Once()

	_, err := NewClubService(clubRepo, logging.NewNop()).Create(ctx, "Lakeside Wanderers")
	var dup *DuplicateError
	if !errors.As(err, &dup) || dup.ExistingID != 42 {
		t.Fatalf("expected DuplicateError for winner 42, got %v", err)
	}
}

func TestClubService_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewClubService(newTestStore(t).Clubs, logging.NewNop())

	got, err := service.Get(ctx, memory.ClubIDHarbour)
	if err != nil {
		t.Fatalf("get club: %v", err)
	}
	if got.Name != "Harbour United" {
		t.Fatalf("unexpected club: %+v", got)
	}

	if _, err := service.Get(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Get(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero id, got %v", err)
	}
}

func TestClubService_GetHidesStorageErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	clubRepo.On("GetByID", ctx, int64(3)).Return(club.Club{}, false, errors.New("pq: connection refused")).Once()

	_, err := NewClubService(clubRepo, logging.NewNop()).Get(ctx, 3)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if err.Error() != "internal error: get club" {
		t.Fatalf("storage detail leaked: %q", err.Error())
	}
}

func TestParticipantService_ResolveAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	service := NewParticipantService(store.TxManager(), logging.NewNop())

	item, found, err := service.ResolveOpponent(ctx, "Riverside  FC")
	if err != nil || !found {
		t.Fatalf("resolve: found=%v err=%v", found, err)
	}
	if item.ExternalName == nil || *item.ExternalName != "Riverside  FC" {
		t.Fatalf("unexpected external name: %v", item.ExternalName)
	}

	got, err := service.Get(ctx, item.ID)
	if err != nil || got.ID != item.ID {
		t.Fatalf("get participant: %+v err=%v", got, err)
	}

	if _, found, err := service.ResolveOpponent(ctx, "  "); err != nil || found {
		t.Fatalf("expected blank opponent to resolve to nothing, found=%v err=%v", found, err)
	}
	if _, err := service.Get(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
