package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/soccer-academy/internal/domain/storage"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// isCallerError reports errors that carry a client-visible classification.
func isCallerError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound)
}

// surfaceTxError logs a failed transactional operation and hides storage
// details behind ErrInternal. Caller errors pass through unchanged and a
// dangling reference caught by storage becomes ErrNotFound.
func surfaceTxError(ctx context.Context, logger *logging.Logger, op string, err error, args ...any) error {
	if err == nil {
		return nil
	}
	if isCallerError(err) {
		return err
	}
	if errors.Is(err, storage.ErrMissingReference) {
		logger.WarnContext(ctx, op+" rejected", append(args, "error", err)...)
		return fmt.Errorf("%w: %s references a missing team or participant", ErrNotFound, op)
	}

	logger.ErrorContext(ctx, op+" failed", append(args, "error", err)...)
	return fmt.Errorf("%w: %s", ErrInternal, op)
}
