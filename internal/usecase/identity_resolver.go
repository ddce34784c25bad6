package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	"github.com/riskibarqy/soccer-academy/internal/platform/resilience"
)

// identityResolver settles match participant identities against the
// club/participant graph using repositories of a single storage scope.
type identityResolver struct {
	repos Repositories
}

func newIdentityResolver(repos Repositories) identityResolver {
	return identityResolver{repos: repos}
}

// resolveTeamName prefers the team's name, then the home participant's name,
// then providedName. A stale team id yields nil instead of an error.
func (r identityResolver) resolveTeamName(ctx context.Context, teamID, participantHomeID *int64, providedName *string) (*string, error) {
	if teamID != nil {
		item, exists, err := r.repos.Teams.GetByID(ctx, *teamID)
		if err != nil {
			return nil, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return nil, nil
		}
		name := item.Name
		return &name, nil
	}

	if participantHomeID != nil {
		return r.participantName(ctx, *participantHomeID)
	}

	return providedName, nil
}

func (r identityResolver) participantName(ctx context.Context, participantID int64) (*string, error) {
	item, exists, err := r.repos.Participants.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return nil, nil
	}
	return item.Name(), nil
}

// homeParticipantForTeam returns the first participant whose club id equals
// teamID. Academy teams and clubs share the id space for home identities.
func (r identityResolver) homeParticipantForTeam(ctx context.Context, teamID int64) (*int64, error) {
	item, exists, err := r.repos.Participants.FindByClubID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("find participant by club: %w", err)
	}
	if !exists {
		return nil, nil
	}
	id := item.ID
	return &id, nil
}

// resolveOrCreateAwayParticipant maps free opponent text to one participant.
// Known clubs win over free-text identities; new text creates an external
// participant keeping the first-seen casing. Safe under concurrent callers:
// a lost insert race returns the winner's row.
func (r identityResolver) resolveOrCreateAwayParticipant(ctx context.Context, opponentText string) (*int64, error) {
	key := participant.NormalizeKey(opponentText)
	if key == "" {
		return nil, nil
	}

	matchedClub, clubExists, err := r.repos.Clubs.FindByLowerName(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("find club by name: %w", err)
	}

	var item participant.Participant
	if clubExists {
		clubID := matchedClub.ID
		item, err = resilience.FindOrCreate(ctx,
			func(ctx context.Context) (participant.Participant, bool, error) {
				return r.repos.Participants.FindByClubID(ctx, clubID)
			},
			func(ctx context.Context) (participant.Participant, error) {
				id, err := r.repos.Participants.Insert(ctx, participant.New{ClubID: &clubID})
				return participant.Participant{ID: id, ClubID: &clubID}, err
			},
		)
		if err != nil {
			return nil, fmt.Errorf("resolve club participant club=%d: %w", clubID, err)
		}
	} else {
		displayName := strings.TrimSpace(opponentText)
		item, err = resilience.FindOrCreate(ctx,
			func(ctx context.Context) (participant.Participant, bool, error) {
				return r.repos.Participants.FindByExternalKey(ctx, key)
			},
			func(ctx context.Context) (participant.Participant, error) {
				id, err := r.repos.Participants.Insert(ctx, participant.New{ExternalName: &displayName})
				return participant.Participant{ID: id, ExternalName: &displayName, ExternalKey: &key}, err
			},
		)
		if err != nil {
			return nil, fmt.Errorf("resolve external participant key=%q: %w", key, err)
		}
	}

	id := item.ID
	return &id, nil
}
