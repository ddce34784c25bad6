package participant

import "context"

type Repository interface {
	GetByID(ctx context.Context, participantID int64) (Participant, bool, error)
	FindByClubID(ctx context.Context, clubID int64) (Participant, bool, error)
	FindByExternalKey(ctx context.Context, key string) (Participant, bool, error)
	// Insert returns an error marked as a unique conflict when club_id or
	// external_key is already taken.
	Insert(ctx context.Context, item New) (int64, error)
}
