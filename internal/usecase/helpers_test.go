package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/soccer-academy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.NewStore(memory.DefaultSeed())
}

func newTestMatchService(store *memory.Store) *MatchService {
	return NewMatchService(store.TxManager(), nil, logging.NewNop())
}

func ptr[T any](v T) *T {
	return &v
}

func mustTime(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return &parsed
}
