package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/platform/cache"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

const (
	matchCachePrefix      = "match:"
	matchListCachePrefix  = "match:list:"
	defaultCanonicalLimit = 8
)

// CreateMatchInput is the create payload. Nil fields are absent.
type CreateMatchInput struct {
	Date              *time.Time
	ScheduledStart    *time.Time
	DurationMinutes   *int
	Opponent          string
	Location          *string
	Competition       *string
	TeamGoals         *int
	OpponentGoals     *int
	TeamID            *int64
	TeamName          *string
	ParticipantHomeID *int64
	ParticipantAwayID *int64
}

// CreateMatchResult reports whether the match was inserted or an identical
// fixture already existed.
type CreateMatchResult struct {
	Match   match.Match
	Created bool
}

type MatchService struct {
	tx     TxManager
	cache  *cache.Store
	logger *logging.Logger
	now    func() time.Time
}

// NewMatchService builds the match pipeline. listCache may be nil to disable
// list caching.
func NewMatchService(tx TxManager, listCache *cache.Store, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		tx:     tx,
		cache:  listCache,
		logger: logger,
		now:    time.Now,
	}
}

// Create inserts a match unless an identical fixture already exists, in which
// case the existing row is returned with Created=false.
func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (CreateMatchResult, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	input.Opponent = strings.TrimSpace(input.Opponent)
	input.Location = normalizeOptionalText(input.Location)
	input.Competition = normalizeOptionalText(input.Competition)
	input.TeamName = normalizeOptionalText(input.TeamName)

	if err := validateCreateMatchInput(input); err != nil {
		return CreateMatchResult{}, err
	}

	var result CreateMatchResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := checkMatchReferences(ctx, repos, input.TeamID, input.ParticipantHomeID, input.ParticipantAwayID); err != nil {
			return err
		}

		resolver := newIdentityResolver(repos)

		if input.Opponent == "" {
			name, err := awayParticipantName(ctx, repos, *input.ParticipantAwayID)
			if err != nil {
				return err
			}
			input.Opponent = name
		}

		teamName, err := resolver.resolveTeamName(ctx, input.TeamID, input.ParticipantHomeID, input.TeamName)
		if err != nil {
			return err
		}

		homeID := input.ParticipantHomeID
		if homeID == nil && input.TeamID != nil {
			homeID, err = resolver.homeParticipantForTeam(ctx, *input.TeamID)
			if err != nil {
				return err
			}
		}

		awayID := input.ParticipantAwayID
		if awayID == nil {
			awayID, err = resolver.resolveOrCreateAwayParticipant(ctx, input.Opponent)
			if err != nil {
				return err
			}
		}

		item := match.Match{
			Date:              match.StorageTime(input.Date),
			ScheduledStart:    match.StorageTime(input.ScheduledStart),
			DurationMinutes:   valueOr(input.DurationMinutes, match.DefaultDurationMinutes),
			Opponent:          input.Opponent,
			Location:          input.Location,
			Competition:       input.Competition,
			TeamGoals:         valueOr(input.TeamGoals, 0),
			OpponentGoals:     valueOr(input.OpponentGoals, 0),
			TeamID:            input.TeamID,
			TeamName:          teamName,
			ParticipantHomeID: homeID,
			ParticipantAwayID: awayID,
		}

		matchID, exists, err := repos.Matches.FindExisting(ctx, item.Criteria())
		if err != nil {
			return fmt.Errorf("find existing match: %w", err)
		}
		if !exists {
			now := s.now().UTC().Truncate(time.Second)
			item.CreatedAt = now
			item.UpdatedAt = now
			matchID, err = repos.Matches.Insert(ctx, item)
			if err != nil {
				return fmt.Errorf("insert match: %w", err)
			}
		}

		stored, err := loadCanonicalMatch(ctx, repos, matchID)
		if err != nil {
			return err
		}
		result = CreateMatchResult{Match: stored, Created: !exists}
		return nil
	})
	if err != nil {
		return CreateMatchResult{}, surfaceTxError(ctx, s.logger, "create match", err, "opponent", input.Opponent)
	}

	if result.Created {
		s.invalidate(ctx)
		s.logger.InfoContext(ctx, "match created", "match_id", result.Match.ID, "opponent", result.Match.Opponent)
	}
	return result, nil
}

// Update applies a partial update and re-derives team name and participant
// links affected by the changed fields.
func (s *MatchService) Update(ctx context.Context, matchID int64, patch match.Patch) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.Update", matchAttr(matchID))
	defer span.End()

	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if err := validateMatchPatch(&patch); err != nil {
		return match.Match{}, err
	}

	var updated match.Match
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		existing, exists, err := repos.Matches.GetByID(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
		}
		if patch.IsEmpty() {
			return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
		}

		var teamID, homeID, awayID *int64
		if patch.TeamID.Set {
			teamID = patch.TeamID.Value
		}
		if patch.ParticipantHomeID.Set {
			homeID = patch.ParticipantHomeID.Value
		}
		if patch.ParticipantAwayID.Set {
			awayID = patch.ParticipantAwayID.Value
		}
		if err := checkMatchReferences(ctx, repos, teamID, homeID, awayID); err != nil {
			return err
		}

		if patch.Date.Set {
			patch.Date.Value = match.StorageTime(patch.Date.Value)
		}
		if patch.ScheduledStart.Set {
			patch.ScheduledStart.Value = match.StorageTime(patch.ScheduledStart.Value)
		}

		if err := rederiveMatchIdentity(ctx, newIdentityResolver(repos), existing, &patch); err != nil {
			return err
		}

		if err := repos.Matches.Update(ctx, matchID, patch); err != nil {
			return fmt.Errorf("update match: %w", err)
		}

		updated, err = loadCanonicalMatch(ctx, repos, matchID)
		return err
	})
	if err != nil {
		return match.Match{}, surfaceTxError(ctx, s.logger, "update match", err, "match_id", matchID)
	}

	s.invalidate(ctx)
	return updated, nil
}

// rederiveMatchIdentity fills derived fields of patch the caller did not set
// explicitly.
func rederiveMatchIdentity(ctx context.Context, resolver identityResolver, existing match.Match, patch *match.Patch) error {
	switch {
	case patch.TeamID.Set:
		homeID := existing.ParticipantHomeID
		if patch.ParticipantHomeID.Set {
			homeID = patch.ParticipantHomeID.Value
		}
		var provided *string
		if patch.TeamName.Set {
			provided = patch.TeamName.Value
		}

		name, err := resolver.resolveTeamName(ctx, patch.TeamID.Value, homeID, provided)
		if err != nil {
			return err
		}
		patch.TeamName = match.Some(name)

		if !patch.ParticipantHomeID.Set && patch.TeamID.Value != nil {
			derived, err := resolver.homeParticipantForTeam(ctx, *patch.TeamID.Value)
			if err != nil {
				return err
			}
			if derived != nil {
				patch.ParticipantHomeID = match.Some(derived)
			}
		}

	case patch.ParticipantHomeID.Set && !patch.TeamName.Set:
		if patch.ParticipantHomeID.Value == nil {
			patch.TeamName = match.Some[*string](nil)
			break
		}
		name, err := resolver.participantName(ctx, *patch.ParticipantHomeID.Value)
		if err != nil {
			return err
		}
		patch.TeamName = match.Some(name)
	}

	if patch.Opponent.Set && !patch.ParticipantAwayID.Set {
		awayID, err := resolver.resolveOrCreateAwayParticipant(ctx, patch.Opponent.Value)
		if err != nil {
			return err
		}
		if awayID != nil {
			patch.ParticipantAwayID = match.Some(awayID)
		}
	}

	return nil
}

func (s *MatchService) Get(ctx context.Context, matchID int64) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.Get", matchAttr(matchID))
	defer span.End()

	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, err := loadCanonicalMatch(ctx, s.tx.Repositories(), matchID)
	if err != nil {
		return match.Match{}, surfaceTxError(ctx, s.logger, "get match", err, "match_id", matchID)
	}
	return item, nil
}

// List returns canonicalized matches ordered by date. Results are cached per
// filter until the next match write.
func (s *MatchService) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		return s.listCanonical(ctx, filter)
	}

	var (
		value any
		err   error
	)
	if s.cache != nil {
		value, err = s.cache.GetOrLoad(ctx, listCacheKey(filter), load)
	} else {
		value, err = load(ctx)
	}
	if err != nil {
		return nil, surfaceTxError(ctx, s.logger, "list matches", err)
	}

	items, _ := value.([]match.Match)
	out := make([]match.Match, len(items))
	copy(out, items)
	return out, nil
}

func (s *MatchService) listCanonical(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	repos := s.tx.Repositories()
	items, err := repos.Matches.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, len(items))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(defaultCanonicalLimit)
	for i, item := range items {
		i, item := i, item
		p.Go(func(ctx context.Context) error {
			canonical, err := canonicalizeMatch(ctx, repos, item)
			if err != nil {
				return err
			}
			out[i] = canonical
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID int64) error {
	ctx, span := startSpan(ctx, "usecase.MatchService.Delete", matchAttr(matchID))
	defer span.End()

	if matchID <= 0 {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		deleted, err := repos.Matches.Delete(ctx, matchID)
		if err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		if !deleted {
			return fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
		}
		return nil
	})
	if err != nil {
		return surfaceTxError(ctx, s.logger, "delete match", err, "match_id", matchID)
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "match deleted", "match_id", matchID)
	return nil
}

func (s *MatchService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidatePrefix(ctx, matchCachePrefix)
	}
}

func loadCanonicalMatch(ctx context.Context, repos Repositories, matchID int64) (match.Match, error) {
	item, exists, err := repos.Matches.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return canonicalizeMatch(ctx, repos, item)
}

// canonicalizeMatch fills the display team name (stored value, then team
// name, then home participant name) and normalizes timestamps to UTC seconds.
func canonicalizeMatch(ctx context.Context, repos Repositories, item match.Match) (match.Match, error) {
	if item.TeamName == nil || strings.TrimSpace(*item.TeamName) == "" {
		resolver := newIdentityResolver(repos)
		var name *string
		if item.TeamID != nil {
			teamName, err := resolver.resolveTeamName(ctx, item.TeamID, nil, nil)
			if err != nil {
				return match.Match{}, err
			}
			name = teamName
		}
		if name == nil && item.ParticipantHomeID != nil {
			participantName, err := resolver.participantName(ctx, *item.ParticipantHomeID)
			if err != nil {
				return match.Match{}, err
			}
			name = participantName
		}
		item.TeamName = name
	}

	item.Date = match.StorageTime(item.Date)
	item.ScheduledStart = match.StorageTime(item.ScheduledStart)
	item.CreatedAt = item.CreatedAt.UTC().Truncate(time.Second)
	item.UpdatedAt = item.UpdatedAt.UTC().Truncate(time.Second)
	return item, nil
}

// checkMatchReferences rejects team and participant ids that point at no row.
func checkMatchReferences(ctx context.Context, repos Repositories, teamID, homeID, awayID *int64) error {
	if teamID != nil {
		_, exists, err := repos.Teams.GetByID(ctx, *teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team_id=%d", ErrNotFound, *teamID)
		}
	}

	participants := []struct {
		field string
		id    *int64
	}{
		{field: "participant_home_id", id: homeID},
		{field: "participant_away_id", id: awayID},
	}
	for _, ref := range participants {
		if ref.id == nil {
			continue
		}
		_, exists, err := repos.Participants.GetByID(ctx, *ref.id)
		if err != nil {
			return fmt.Errorf("get participant: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s=%d", ErrNotFound, ref.field, *ref.id)
		}
	}
	return nil
}

func awayParticipantName(ctx context.Context, repos Repositories, participantID int64) (string, error) {
	item, exists, err := repos.Participants.GetByID(ctx, participantID)
	if err != nil {
		return "", fmt.Errorf("get away participant: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: participant_away_id=%d", ErrNotFound, participantID)
	}
	name := item.Name()
	if name == nil || strings.TrimSpace(*name) == "" {
		return "", fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}
	return *name, nil
}

func validateCreateMatchInput(input CreateMatchInput) error {
	if input.Opponent == "" && input.ParticipantAwayID == nil {
		return fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}
	if input.DurationMinutes != nil && *input.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration_minutes must be > 0", ErrInvalidInput)
	}
	if input.TeamGoals != nil && *input.TeamGoals < 0 {
		return fmt.Errorf("%w: team_goals must be >= 0", ErrInvalidInput)
	}
	if input.OpponentGoals != nil && *input.OpponentGoals < 0 {
		return fmt.Errorf("%w: opponent_goals must be >= 0", ErrInvalidInput)
	}
	return nil
}

func validateMatchPatch(patch *match.Patch) error {
	if patch.Opponent.Set {
		patch.Opponent.Value = strings.TrimSpace(patch.Opponent.Value)
		if patch.Opponent.Value == "" {
			return fmt.Errorf("%w: opponent must not be empty", ErrInvalidInput)
		}
	}
	if patch.DurationMinutes.Set && patch.DurationMinutes.Value <= 0 {
		return fmt.Errorf("%w: duration_minutes must be > 0", ErrInvalidInput)
	}
	if patch.TeamGoals.Set && patch.TeamGoals.Value < 0 {
		return fmt.Errorf("%w: team_goals must be >= 0", ErrInvalidInput)
	}
	if patch.OpponentGoals.Set && patch.OpponentGoals.Value < 0 {
		return fmt.Errorf("%w: opponent_goals must be >= 0", ErrInvalidInput)
	}
	if patch.Location.Set {
		patch.Location.Value = normalizeOptionalText(patch.Location.Value)
	}
	if patch.Competition.Set {
		patch.Competition.Value = normalizeOptionalText(patch.Competition.Value)
	}
	if patch.TeamName.Set {
		patch.TeamName.Value = normalizeOptionalText(patch.TeamName.Value)
	}
	return nil
}

func listCacheKey(filter match.ListFilter) string {
	var b strings.Builder
	b.WriteString(matchListCachePrefix)
	b.WriteString("team=")
	if filter.TeamID != nil {
		b.WriteString(strconv.FormatInt(*filter.TeamID, 10))
	}
	b.WriteString(":from=")
	if filter.From != nil {
		b.WriteString(filter.From.UTC().Format(time.RFC3339))
	}
	b.WriteString(":to=")
	if filter.To != nil {
		b.WriteString(filter.To.UTC().Format(time.RFC3339))
	}
	return b.String()
}

func normalizeOptionalText(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
