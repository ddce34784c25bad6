package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

type ParticipantService struct {
	tx     TxManager
	logger *logging.Logger
}

func NewParticipantService(tx TxManager, logger *logging.Logger) *ParticipantService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ParticipantService{tx: tx, logger: logger}
}

// ResolveOpponent returns the participant for free opponent text, creating it
// when needed. Blank text resolves to found=false.
func (s *ParticipantService) ResolveOpponent(ctx context.Context, opponent string) (participant.Participant, bool, error) {
	ctx, span := startSpan(ctx, "usecase.ParticipantService.ResolveOpponent")
	defer span.End()

	if strings.TrimSpace(opponent) == "" {
		return participant.Participant{}, false, nil
	}

	var (
		item   participant.Participant
		exists bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		id, err := newIdentityResolver(repos).resolveOrCreateAwayParticipant(ctx, opponent)
		if err != nil {
			return err
		}
		if id == nil {
			return nil
		}

		item, exists, err = repos.Participants.GetByID(ctx, *id)
		if err != nil {
			return fmt.Errorf("get participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return participant.Participant{}, false, surfaceTxError(ctx, s.logger, "resolve opponent", err, "opponent", opponent)
	}

	return item, exists, nil
}

func (s *ParticipantService) Get(ctx context.Context, participantID int64) (participant.Participant, error) {
	ctx, span := startSpan(ctx, "usecase.ParticipantService.Get")
	defer span.End()

	if participantID <= 0 {
		return participant.Participant{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	item, exists, err := s.tx.Repositories().Participants.GetByID(ctx, participantID)
	if err != nil {
		return participant.Participant{}, surfaceTxError(ctx, s.logger, "get participant", err, "participant_id", participantID)
	}
	if !exists {
		return participant.Participant{}, fmt.Errorf("%w: participant=%d", ErrNotFound, participantID)
	}
	return item, nil
}
