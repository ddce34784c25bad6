package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	"github.com/riskibarqy/soccer-academy/internal/domain/player"
	"github.com/riskibarqy/soccer-academy/internal/domain/stat"
	"github.com/riskibarqy/soccer-academy/internal/domain/storage"
	"github.com/riskibarqy/soccer-academy/internal/platform/resilience"
)

func ptr[T any](v T) *T { return &v }

func TestParticipantRepository_UniqueClubAndExternalKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(DefaultSeed())

	_, err := store.Participants.Insert(ctx, participant.New{ClubID: ptr(ClubIDAcademy)})
	if !resilience.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate club participant, got %v", err)
	}

	id, err := store.Participants.Insert(ctx, participant.New{ExternalName: ptr("  Rivals   FC ")})
	if err != nil {
		t.Fatalf("insert external participant: %v", err)
	}
	_, err = store.Participants.Insert(ctx, participant.New{ExternalName: ptr("rivals fc")})
	if !resilience.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate external key, got %v", err)
	}

	found, ok, err := store.Participants.FindByExternalKey(ctx, "rivals fc")
	if err != nil || !ok {
		t.Fatalf("find by external key: ok=%v err=%v", ok, err)
	}
	if found.ID != id || found.ExternalName == nil || *found.ExternalName != "  Rivals   FC " {
		t.Fatalf("unexpected participant: %+v", found)
	}
}

func TestParticipantRepository_RejectsInvalidIdentity(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	_, err := store.Participants.Insert(context.Background(), participant.New{
		ClubID:       ptr(ClubIDHarbour),
		ExternalName: ptr("Harbour"),
	})
	if err != participant.ErrInvalidIdentity {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
}

func TestParticipantRepository_ResolvesClubName(t *testing.T) {
	t.Parallel()

	store := NewStore(DefaultSeed())
	got, ok, err := store.Participants.FindByClubID(context.Background(), ClubIDAcademy)
	if err != nil || !ok {
		t.Fatalf("find by club: ok=%v err=%v", ok, err)
	}
	if name := got.Name(); name == nil || *name != "Academy FC" {
		t.Fatalf("expected club name Academy FC, got %v", name)
	}
}

func TestMatchRepository_ListOrdersUndatedLast(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository(nil)

	late := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	early := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	undated, _ := repo.Insert(ctx, match.Match{Opponent: "TBD"})
	lateID, _ := repo.Insert(ctx, match.Match{Opponent: "B", Date: &late, TeamID: ptr(TeamIDUnder13)})
	earlyID, _ := repo.Insert(ctx, match.Match{Opponent: "A", Date: &early, TeamID: ptr(TeamIDUnder15)})

	items, err := repo.List(ctx, match.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{earlyID, lateID, undated}
	if len(items) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, items[i].ID)
		}
	}

	filtered, err := repo.List(ctx, match.ListFilter{TeamID: ptr(TeamIDUnder13)})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != lateID {
		t.Fatalf("unexpected team filter result: %+v", filtered)
	}

	from := early.Add(time.Hour)
	ranged, err := repo.List(ctx, match.ListFilter{From: &from})
	if err != nil {
		t.Fatalf("list ranged: %v", err)
	}
	if len(ranged) != 1 || ranged[0].ID != lateID {
		t.Fatalf("unexpected date filter result: %+v", ranged)
	}
}

func TestMatchRepository_FindExistingIsNullSafe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository(nil)

	id, err := repo.Insert(ctx, match.Match{Opponent: "Harbour United", TeamID: ptr(TeamIDUnder13)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, ok, err := repo.FindExisting(ctx, match.Criteria{Opponent: "Harbour United", TeamID: ptr(TeamIDUnder13)})
	if err != nil || !ok || got != id {
		t.Fatalf("expected existing id %d, got %d ok=%v err=%v", id, got, ok, err)
	}

	_, ok, err = repo.FindExisting(ctx, match.Criteria{Opponent: "Harbour United", TeamID: ptr(TeamIDUnder13), Location: ptr("Home")})
	if err != nil || ok {
		t.Fatalf("expected no match when location differs from null, ok=%v err=%v", ok, err)
	}
}

func TestMatchRepository_RejectsMissingReferences(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(DefaultSeed())

	inserts := []match.Match{
		{Opponent: "Rivals", TeamID: ptr(int64(77))},
		{Opponent: "Rivals", ParticipantHomeID: ptr(int64(77))},
		{Opponent: "Rivals", ParticipantAwayID: ptr(int64(77))},
	}
	for _, item := range inserts {
		if _, err := store.Matches.Insert(ctx, item); !errors.Is(err, storage.ErrMissingReference) {
			t.Fatalf("expected ErrMissingReference for %+v, got %v", item, err)
		}
	}
	if items, _ := store.Matches.List(ctx, match.ListFilter{}); len(items) != 0 {
		t.Fatalf("expected no rows written, got %d", len(items))
	}

	id, err := store.Matches.Insert(ctx, match.Match{Opponent: "Rivals", TeamID: ptr(TeamIDUnder13), ParticipantHomeID: ptr(int64(1))})
	if err != nil {
		t.Fatalf("insert with known references: %v", err)
	}
	err = store.Matches.Update(ctx, id, match.Patch{ParticipantAwayID: match.Some(ptr(int64(77)))})
	if !errors.Is(err, storage.ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference on update, got %v", err)
	}
	if got, _, _ := store.Matches.GetByID(ctx, id); got.ParticipantAwayID != nil {
		t.Fatalf("expected away participant untouched, got %v", *got.ParticipantAwayID)
	}
	if err := store.Matches.Update(ctx, id, match.Patch{TeamID: match.Some[*int64](nil)}); err != nil {
		t.Fatalf("clearing team link: %v", err)
	}
}

func TestMatchRepository_DeleteCascadesStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(DefaultSeed())

	matchID, _ := store.Matches.Insert(ctx, match.Match{Opponent: "Harbour United"})
	otherID, _ := store.Matches.Insert(ctx, match.Match{Opponent: "Rivals"})
	_, _ = store.Stats.Insert(ctx, stat.Stat{MatchID: matchID, PlayerID: 1, Goals: 1})
	_, _ = store.Stats.Insert(ctx, stat.Stat{MatchID: otherID, PlayerID: 2})

	deleted, err := store.Matches.Delete(ctx, matchID)
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	if rows, _ := store.Stats.ListByMatch(ctx, matchID); len(rows) != 0 {
		t.Fatalf("expected stats of deleted match removed, got %d", len(rows))
	}
	if rows, _ := store.Stats.ListByMatch(ctx, otherID); len(rows) != 1 {
		t.Fatalf("expected other match stats kept, got %d", len(rows))
	}

	deleted, err = store.Matches.Delete(ctx, matchID)
	if err != nil || deleted {
		t.Fatalf("expected second delete to report missing, deleted=%v err=%v", deleted, err)
	}
}

func TestStatRepository_SumGoalsBySide(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(DefaultSeed())
	store.Players.Put(player.Player{ID: 10, Name: "Loanee", TeamID: ptr(TeamIDUnder15)})

	const matchID = 7
	rows := []stat.Stat{
		{MatchID: matchID, PlayerID: 1, Goals: 2},
		{MatchID: matchID, PlayerID: 2, Goals: 1},
		{MatchID: matchID, PlayerID: 4, Goals: 1},
		{MatchID: matchID, PlayerID: 10, Goals: 3},
		{MatchID: matchID + 1, PlayerID: 1, Goals: 5},
	}
	for _, row := range rows {
		if _, err := store.Stats.Insert(ctx, row); err != nil {
			t.Fatalf("insert stat: %v", err)
		}
	}

	got, err := store.Stats.SumGoalsBySide(ctx, matchID, ptr(TeamIDUnder13))
	if err != nil {
		t.Fatalf("sum goals: %v", err)
	}
	if got.TeamGoals != 3 || got.OpponentGoals != 4 {
		t.Fatalf("unexpected side goals: %+v", got)
	}

	got, err = store.Stats.SumGoalsBySide(ctx, matchID, nil)
	if err != nil {
		t.Fatalf("sum goals without team: %v", err)
	}
	if got.TeamGoals != 0 || got.OpponentGoals != 7 {
		t.Fatalf("unexpected side goals without team: %+v", got)
	}
}

func TestStatRepository_DeleteReturnsMatchID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStatRepository(nil)

	id, _ := repo.Insert(ctx, stat.Stat{MatchID: 42, PlayerID: 1})
	matchID, ok, err := repo.Delete(ctx, id)
	if err != nil || !ok || matchID != 42 {
		t.Fatalf("unexpected delete result matchID=%d ok=%v err=%v", matchID, ok, err)
	}
	if _, ok, _ := repo.Delete(ctx, id); ok {
		t.Fatalf("expected missing stat on second delete")
	}
}
