package memory

import (
	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	"github.com/riskibarqy/soccer-academy/internal/domain/participant"
	"github.com/riskibarqy/soccer-academy/internal/domain/player"
	"github.com/riskibarqy/soccer-academy/internal/domain/team"
)

const (
	TeamIDUnder13 int64 = 1
	TeamIDUnder15 int64 = 2
	ClubIDAcademy int64 = 1
	ClubIDHarbour int64 = 2
)

// Seed is the reference data loaded into a fresh in-memory store.
type Seed struct {
	Teams        []team.Team
	Clubs        []club.Club
	Participants []participant.Participant
	Players      []player.Player
}

// DefaultSeed returns a small academy used by APP_STORAGE=memory.
func DefaultSeed() Seed {
	under13, under15 := 13, 15
	academy, u15 := TeamIDUnder13, TeamIDUnder15
	academyClub := ClubIDAcademy

	return Seed{
		Teams: []team.Team{
			{ID: TeamIDUnder13, Name: "Academy U13", AgeLimit: &under13},
			{ID: TeamIDUnder15, Name: "Academy U15", AgeLimit: &under15},
		},
		Clubs: []club.Club{
			{ID: ClubIDAcademy, Name: "Academy FC"},
			{ID: ClubIDHarbour, Name: "Harbour United"},
		},
		Participants: []participant.Participant{
			{ID: 1, ClubID: &academyClub},
		},
		Players: []player.Player{
			{ID: 1, Name: "Raka Pratama", TeamID: &academy},
			{ID: 2, Name: "Dimas Saputra", TeamID: &academy},
			{ID: 3, Name: "Bagas Nugroho", TeamID: &u15},
			{ID: 4, Name: "Trial Player"},
		},
	}
}
