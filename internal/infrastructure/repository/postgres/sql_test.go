package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/soccer-academy/internal/domain/storage"
	"github.com/riskibarqy/soccer-academy/internal/platform/resilience"
)

func TestConflictOrErr(t *testing.T) {
	t.Run("empty returning is a conflict", func(t *testing.T) {
		err := conflictOrErr(sql.ErrNoRows, "participant exists")
		if !resilience.IsConflict(err) {
			t.Fatalf("expected conflict for sql.ErrNoRows, got %v", err)
		}
	})

	t.Run("unique violation is a conflict", func(t *testing.T) {
		raw := fmt.Errorf("insert: %w", &pq.Error{Code: pqUniqueViolation, Message: "duplicate key value"})
		if !resilience.IsConflict(conflictOrErr(raw, "club exists")) {
			t.Fatalf("expected conflict for 23505")
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		raw := &pq.Error{Code: "40P01", Message: "deadlock detected"}
		err := conflictOrErr(raw, "club exists")
		if resilience.IsConflict(err) {
			t.Fatalf("deadlock must not be a conflict")
		}
		var pqErr *pq.Error
		if !errors.As(err, &pqErr) {
			t.Fatalf("expected original error, got %v", err)
		}
	})
}

func TestMissingRefOrErr(t *testing.T) {
	t.Run("foreign key violation names the constraint", func(t *testing.T) {
		raw := &pq.Error{Code: pqForeignKeyViolation, Constraint: "matches_team_id_fkey", Message: "violates foreign key constraint"}
		err := fmt.Errorf("insert match: %w", missingRefOrErr(raw))
		if !errors.Is(err, storage.ErrMissingReference) {
			t.Fatalf("expected ErrMissingReference for 23503, got %v", err)
		}
		if err.Error() != "insert match: missing reference: matches_team_id_fkey" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		raw := &pq.Error{Code: pqUniqueViolation}
		if err := missingRefOrErr(raw); errors.Is(err, storage.ErrMissingReference) || err != error(raw) {
			t.Fatalf("expected original error, got %v", err)
		}
	})
}

func TestNullConverters(t *testing.T) {
	if nullInt64Ptr(sql.NullInt64{}) != nil || nullStringPtr(sql.NullString{}) != nil || nullTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("invalid nulls must map to nil")
	}

	local := time.Date(2026, 4, 11, 17, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	got := nullTimePtr(sql.NullTime{Time: local, Valid: true})
	if got == nil || got.Location() != time.UTC || !got.Equal(local) {
		t.Fatalf("expected UTC time, got %v", got)
	}
	if v := nullInt64Ptr(sql.NullInt64{Int64: 7, Valid: true}); v == nil || *v != 7 {
		t.Fatalf("unexpected int64: %v", v)
	}
}
