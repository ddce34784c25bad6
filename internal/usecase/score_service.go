package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/soccer-academy/internal/platform/cache"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

const defaultRecomputeWorkers = 4

// ScoreResult is the outcome of recomputing one match's scoreline.
type ScoreResult struct {
	MatchID       int64
	TeamGoals     int
	OpponentGoals int
	Found         bool
	Err           error
}

// ScoreService derives a match's scoreline from its stat rows.
type ScoreService struct {
	tx      TxManager
	cache   *cache.Store
	logger  *logging.Logger
	workers int
}

func NewScoreService(tx TxManager, listCache *cache.Store, logger *logging.Logger, workers int) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultRecomputeWorkers
	}

	return &ScoreService{
		tx:      tx,
		cache:   listCache,
		logger:  logger,
		workers: workers,
	}
}

// Recompute sums goals of the match's stats by side and persists them. A
// missing match is a no-op reported with Found=false.
func (s *ScoreService) Recompute(ctx context.Context, matchID int64) (ScoreResult, error) {
	ctx, span := startSpan(ctx, "usecase.ScoreService.Recompute", matchAttr(matchID))
	defer span.End()

	if matchID <= 0 {
		return ScoreResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	result := ScoreResult{MatchID: matchID}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		item, exists, err := repos.Matches.GetByID(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return nil
		}

		goals, err := repos.Stats.SumGoalsBySide(ctx, matchID, item.TeamID)
		if err != nil {
			return fmt.Errorf("sum goals: %w", err)
		}
		if err := repos.Matches.UpdateScore(ctx, matchID, goals.TeamGoals, goals.OpponentGoals); err != nil {
			return fmt.Errorf("update match score: %w", err)
		}

		result.Found = true
		result.TeamGoals = goals.TeamGoals
		result.OpponentGoals = goals.OpponentGoals
		return nil
	})
	if err != nil {
		return ScoreResult{}, fmt.Errorf("recompute match score match=%d: %w", matchID, err)
	}

	if result.Found && s.cache != nil {
		s.cache.InvalidatePrefix(ctx, matchCachePrefix)
	}
	return result, nil
}

// RecomputeMany recomputes several matches on a bounded worker pool. Per-match
// failures are reported in the results; the returned error covers only
// scheduling problems.
func (s *ScoreService) RecomputeMany(ctx context.Context, matchIDs []int64) ([]ScoreResult, error) {
	ctx, span := startSpan(ctx, "usecase.ScoreService.RecomputeMany")
	defer span.End()

	ids := uniqueMatchIDs(matchIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: match ids are required", ErrInvalidInput)
	}

	workerCount := s.workers
	if workerCount > len(ids) {
		workerCount = len(ids)
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make([]ScoreResult, len(ids))
	var workers sync.WaitGroup
	for i, matchID := range ids {
		i, matchID := i, matchID
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			res, err := s.Recompute(ctx, matchID)
			if err != nil {
				s.logger.WarnContext(ctx, "recompute match score failed", "match_id", matchID, "error", err)
				res = ScoreResult{MatchID: matchID, Err: err}
			}
			results[i] = res
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchID < results[j].MatchID
	})
	return results, nil
}

// recomputeAfterStatWrite keeps the match scoreline in step with its stats.
// Failures are logged only: the stat write already committed.
func (s *ScoreService) recomputeAfterStatWrite(ctx context.Context, matchIDs ...int64) {
	for _, matchID := range uniqueMatchIDs(matchIDs) {
		if _, err := s.Recompute(ctx, matchID); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.WarnContext(ctx, "recompute match score after stat write failed", "match_id", matchID, "error", err)
		}
	}
}

func uniqueMatchIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

