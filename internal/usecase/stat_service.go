package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/soccer-academy/internal/domain/stat"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

// AddStatInput is the payload for recording one player's match stats.
type AddStatInput struct {
	PlayerID      int64
	MatchID       int64
	Goals         int
	Assists       int
	MinutesPlayed int
}

// UpdateStatInput replaces the counters of an existing stat row. Nil fields
// keep their stored value.
type UpdateStatInput struct {
	Goals         *int
	Assists       *int
	MinutesPlayed *int
}

func (in UpdateStatInput) isEmpty() bool {
	return in.Goals == nil && in.Assists == nil && in.MinutesPlayed == nil
}

type StatService struct {
	tx     TxManager
	scores *ScoreService
	logger *logging.Logger
}

func NewStatService(tx TxManager, scores *ScoreService, logger *logging.Logger) *StatService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatService{
		tx:     tx,
		scores: scores,
		logger: logger,
	}
}

// Add stores a stat row with a freshly computed rating and refreshes the
// match scoreline.
func (s *StatService) Add(ctx context.Context, input AddStatInput) (stat.Stat, error) {
	ctx, span := startSpan(ctx, "usecase.StatService.Add")
	defer span.End()

	if input.PlayerID <= 0 {
		return stat.Stat{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.MatchID <= 0 {
		return stat.Stat{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	counters := stat.Counters{Goals: input.Goals, Assists: input.Assists, MinutesPlayed: input.MinutesPlayed}
	if err := counters.Validate(); err != nil {
		return stat.Stat{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created stat.Stat
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if _, exists, err := repos.Players.GetByID(ctx, input.PlayerID); err != nil {
			return fmt.Errorf("get player: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: player=%d", ErrNotFound, input.PlayerID)
		}
		if _, exists, err := repos.Matches.GetByID(ctx, input.MatchID); err != nil {
			return fmt.Errorf("get match: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: match=%d", ErrNotFound, input.MatchID)
		}

		created = counters.Apply(stat.Stat{PlayerID: input.PlayerID, MatchID: input.MatchID})
		id, err := repos.Stats.Insert(ctx, created)
		if err != nil {
			return fmt.Errorf("insert stat: %w", err)
		}
		created.ID = id
		return nil
	})
	if err != nil {
		return stat.Stat{}, surfaceTxError(ctx, s.logger, "add stat", err, "player_id", input.PlayerID, "match_id", input.MatchID)
	}

	s.scores.recomputeAfterStatWrite(ctx, created.MatchID)
	return created, nil
}

// Update changes the counters of a stat row and recomputes its rating.
func (s *StatService) Update(ctx context.Context, statID int64, input UpdateStatInput) (stat.Stat, error) {
	ctx, span := startSpan(ctx, "usecase.StatService.Update")
	defer span.End()

	if statID <= 0 {
		return stat.Stat{}, fmt.Errorf("%w: stat id is required", ErrInvalidInput)
	}
	if input.isEmpty() {
		return stat.Stat{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var updated stat.Stat
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		existing, exists, err := repos.Stats.GetByID(ctx, statID)
		if err != nil {
			return fmt.Errorf("get stat: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: stat=%d", ErrNotFound, statID)
		}

		counters := stat.Counters{
			Goals:         valueOr(input.Goals, existing.Goals),
			Assists:       valueOr(input.Assists, existing.Assists),
			MinutesPlayed: valueOr(input.MinutesPlayed, existing.MinutesPlayed),
		}
		if err := counters.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		updated = counters.Apply(existing)
		if err := repos.Stats.Update(ctx, updated); err != nil {
			return fmt.Errorf("update stat: %w", err)
		}
		return nil
	})
	if err != nil {
		return stat.Stat{}, surfaceTxError(ctx, s.logger, "update stat", err, "stat_id", statID)
	}

	s.scores.recomputeAfterStatWrite(ctx, updated.MatchID)
	return updated, nil
}

func (s *StatService) Delete(ctx context.Context, statID int64) error {
	ctx, span := startSpan(ctx, "usecase.StatService.Delete")
	defer span.End()

	if statID <= 0 {
		return fmt.Errorf("%w: stat id is required", ErrInvalidInput)
	}

	var matchID int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		id, found, err := repos.Stats.Delete(ctx, statID)
		if err != nil {
			return fmt.Errorf("delete stat: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: stat=%d", ErrNotFound, statID)
		}
		matchID = id
		return nil
	})
	if err != nil {
		return surfaceTxError(ctx, s.logger, "delete stat", err, "stat_id", statID)
	}

	s.scores.recomputeAfterStatWrite(ctx, matchID)
	return nil
}

func (s *StatService) ListByMatch(ctx context.Context, matchID int64) ([]stat.Stat, error) {
	ctx, span := startSpan(ctx, "usecase.StatService.ListByMatch", matchAttr(matchID))
	defer span.End()

	if matchID <= 0 {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	repos := s.tx.Repositories()
	if _, exists, err := repos.Matches.GetByID(ctx, matchID); err != nil {
		return nil, surfaceTxError(ctx, s.logger, "get match", err, "match_id", matchID)
	} else if !exists {
		return nil, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	items, err := repos.Stats.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, surfaceTxError(ctx, s.logger, "list stats", err, "match_id", matchID)
	}
	return items, nil
}
