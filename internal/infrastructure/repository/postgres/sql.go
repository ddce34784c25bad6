package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/soccer-academy/internal/domain/storage"
	"github.com/riskibarqy/soccer-academy/internal/platform/resilience"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// missingRefOrErr maps a foreign key violation to storage.ErrMissingReference
// naming the violated constraint.
func missingRefOrErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return fmt.Errorf("%w: %s", storage.ErrMissingReference, pqErr.Constraint)
	}
	return err
}

// conflictOrErr maps an empty ON CONFLICT DO NOTHING result and raw unique
// violations to a conflict-marked error.
func conflictOrErr(err error, conflict string) error {
	if isNotFound(err) || isUniqueViolation(err) {
		return resilience.MarkConflict(errors.New(conflict))
	}
	return err
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	out := v.String
	return &out
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time.UTC()
	return &out
}
