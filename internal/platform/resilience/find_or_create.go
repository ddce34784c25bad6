package resilience

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

// ErrUniqueConflict marks an insert rejected by a uniqueness constraint.
// Storage adapters attach it with MarkConflict so callers can match it with
// errors.Is regardless of how the error was wrapped.
var ErrUniqueConflict = crerr.New("unique constraint conflict")

// ErrLostRowAfterConflict means the insert conflicted but the winning row
// could not be read back.
var ErrLostRowAfterConflict = crerr.New("conflicting row not found after insert conflict")

func MarkConflict(err error) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(err, ErrUniqueConflict)
}

func IsConflict(err error) bool {
	return crerr.Is(err, ErrUniqueConflict)
}

// FindOrCreate looks a row up, inserts it when missing and, when the insert
// loses a race against a concurrent writer, reads the winner back.
//
// find reports (value, true, nil) for a hit. create must return an error
// marked with MarkConflict when the storage uniqueness constraint rejects it;
// any other create error is returned as is.
func FindOrCreate[T any](
	ctx context.Context,
	find func(context.Context) (T, bool, error),
	create func(context.Context) (T, error),
) (T, error) {
	var zero T

	found, ok, err := find(ctx)
	if err != nil {
		return zero, crerr.Wrap(err, "find before create")
	}
	if ok {
		return found, nil
	}

	created, err := create(ctx)
	if err == nil {
		return created, nil
	}
	if !IsConflict(err) {
		return zero, crerr.Wrap(err, "create")
	}

	winner, ok, findErr := find(ctx)
	if findErr != nil {
		return zero, crerr.Wrap(findErr, "find after conflict")
	}
	if !ok {
		return zero, ErrLostRowAfterConflict
	}
	return winner, nil
}
