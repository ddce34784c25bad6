package player

// Player is the minimal player projection the stats core needs.
type Player struct {
	ID     int64
	Name   string
	TeamID *int64
}
