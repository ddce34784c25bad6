package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/domain/storage"
	"github.com/riskibarqy/soccer-academy/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/soccer-academy/internal/mocks/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

func TestMatchService_Create_DanglingReferenceIsNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CreateMatchInput
		field string
	}{
		{name: "team", input: CreateMatchInput{Opponent: "Rivals", TeamID: ptr(int64(77))}, field: "team_id=77"},
		{name: "home participant", input: CreateMatchInput{Opponent: "Rivals", ParticipantHomeID: ptr(int64(77))}, field: "participant_home_id=77"},
		{name: "away participant", input: CreateMatchInput{Opponent: "Rivals", ParticipantAwayID: ptr(int64(77))}, field: "participant_away_id=77"},
		{name: "away participant without opponent", input: CreateMatchInput{ParticipantAwayID: ptr(int64(999))}, field: "participant_away_id=999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newTestStore(t)
			service := newTestMatchService(store)

			_, err := service.Create(ctx, tt.input)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("expected error to name %s, got %q", tt.field, err.Error())
			}
			if items, _ := store.Matches.List(ctx, match.ListFilter{}); len(items) != 0 {
				t.Fatalf("expected no match written, got %d", len(items))
			}
		})
	}
}

func TestMatchService_Update_DanglingReferenceIsNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	service := newTestMatchService(store)

	created, err := service.Create(ctx, CreateMatchInput{Opponent: "Riverside FC", TeamID: ptr(memory.TeamIDUnder13)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := created.Match

	patches := []match.Patch{
		{TeamID: match.Some(ptr(int64(77)))},
		{ParticipantHomeID: match.Some(ptr(int64(77)))},
		{ParticipantAwayID: match.Some(ptr(int64(77))), Opponent: match.Some("Ghost FC")},
	}
	for _, patch := range patches {
		if _, err := service.Update(ctx, before.ID, patch); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %+v, got %v", patch, err)
		}
	}

	after, err := service.Get(ctx, before.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Opponent != before.Opponent || *after.TeamID != *before.TeamID || *after.ParticipantAwayID != *before.ParticipantAwayID {
		t.Fatalf("match changed by rejected update:\nbefore=%+v\nafter=%+v", before, after)
	}

	// Clearing a link is never a dangling reference.
	if _, err := service.Update(ctx, before.ID, match.Patch{TeamID: match.Some[*int64](nil)}); err != nil {
		t.Fatalf("clear team: %v", err)
	}
}

func TestMatchService_Update_UnknownMatchWinsOverEmptyPatch(t *testing.T) {
	t.Parallel()

	service := newTestMatchService(newTestStore(t))
	_, err := service.Update(context.Background(), 999, match.Patch{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_Create_StorageMissingReferenceIsNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	store := newTestStore(t)
	repos := store.Repositories()
	repos.Matches = matchRepo

	// A team deleted by a concurrent writer after the reference check.
	fkErr := fmt.Errorf("%w: matches_team_id_fkey", storage.ErrMissingReference)
	matchRepo.On("FindExisting", mock.Anything, mock.Anything).Return(int64(0), false, nil).Once()
	matchRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(0), fmt.Errorf("insert match: %w", fkErr)).Once()

	service := NewMatchService(memory.NewTxManager(repos), nil, logging.NewNop())
	_, err := service.Create(ctx, CreateMatchInput{Opponent: "Rivals", TeamID: ptr(memory.TeamIDUnder13)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, ErrInternal) || strings.Contains(err.Error(), "fkey") {
		t.Fatalf("storage detail leaked to caller: %v", err)
	}
}
