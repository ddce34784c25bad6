package participant

import (
	"errors"
	"strings"
)

var ErrInvalidIdentity = errors.New("participant must have exactly one of club id or external name")

// Participant is one side of a match: a club-linked identity or a free-text
// external opponent.
type Participant struct {
	ID           int64
	ClubID       *int64
	ClubName     *string
	ExternalName *string
	ExternalKey  *string
}

// Name resolves the display name, preferring the linked club.
func (p Participant) Name() *string {
	if p.ClubName != nil {
		return p.ClubName
	}
	return p.ExternalName
}

// New is the insert payload for a participant.
type New struct {
	ClubID       *int64
	ExternalName *string
}

func (n New) Validate() error {
	hasClub := n.ClubID != nil
	hasExternal := n.ExternalName != nil && strings.TrimSpace(*n.ExternalName) != ""
	if hasClub == hasExternal {
		return ErrInvalidIdentity
	}
	return nil
}

// ExternalKey derives the uniqueness key stored alongside an external name.
func (n New) ExternalKey() *string {
	if n.ExternalName == nil {
		return nil
	}
	key := NormalizeKey(*n.ExternalName)
	if key == "" {
		return nil
	}
	return &key
}

// NormalizeKey trims, collapses inner whitespace and lowercases a free-text name.
func NormalizeKey(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
