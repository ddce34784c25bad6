package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
	"github.com/riskibarqy/soccer-academy/internal/platform/resilience"
)

// DuplicateError reports a create rejected because an equivalent record
// already exists. It classifies as ErrInvalidInput.
type DuplicateError struct {
	Resource   string
	ExistingID int64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: id=%d", e.Resource, e.ExistingID)
}

func (e *DuplicateError) Unwrap() error {
	return ErrInvalidInput
}

type ClubService struct {
	clubs  club.Repository
	logger *logging.Logger
}

func NewClubService(clubs club.Repository, logger *logging.Logger) *ClubService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ClubService{clubs: clubs, logger: logger}
}

// Create registers a club. Names are unique ignoring case; a duplicate
// returns *DuplicateError carrying the existing id.
func (s *ClubService) Create(ctx context.Context, name string) (club.Club, error) {
	ctx, span := startSpan(ctx, "usecase.ClubService.Create")
	defer span.End()

	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return club.Club{}, fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}
	key := club.LookupKey(name)

	inserted := false
	item, err := resilience.FindOrCreate(ctx,
		func(ctx context.Context) (club.Club, bool, error) {
			return s.clubs.FindByLowerName(ctx, key)
		},
		func(ctx context.Context) (club.Club, error) {
			created, err := s.clubs.Create(ctx, name)
			inserted = err == nil
			return created, err
		},
	)
	if err != nil {
		if errors.Is(err, resilience.ErrLostRowAfterConflict) {
			s.logger.WarnContext(ctx, "club conflict without visible winner", "name", name)
		}
		return club.Club{}, surfaceTxError(ctx, s.logger, "create club", err, "name", name)
	}
	if !inserted {
		return club.Club{}, &DuplicateError{Resource: "club", ExistingID: item.ID}
	}

	s.logger.InfoContext(ctx, "club created", "club_id", item.ID, "name", item.Name)
	return item, nil
}

func (s *ClubService) Get(ctx context.Context, clubID int64) (club.Club, error) {
	ctx, span := startSpan(ctx, "usecase.ClubService.Get")
	defer span.End()

	if clubID <= 0 {
		return club.Club{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	item, exists, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return club.Club{}, surfaceTxError(ctx, s.logger, "get club", err, "club_id", clubID)
	}
	if !exists {
		return club.Club{}, fmt.Errorf("%w: club=%d", ErrNotFound, clubID)
	}
	return item, nil
}

func (s *ClubService) List(ctx context.Context) ([]club.Club, error) {
	ctx, span := startSpan(ctx, "usecase.ClubService.List")
	defer span.End()

	items, err := s.clubs.List(ctx)
	if err != nil {
		return nil, surfaceTxError(ctx, s.logger, "list clubs", err)
	}
	return items, nil
}
