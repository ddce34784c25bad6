package stat

import "math"

const (
	ratingBaseline    = 5.0
	ratingMin         = 0.0
	ratingMax         = 10.0
	fullMatchMinutes  = 90.0
	goalWeight        = 1.5
	assistWeight      = 1.0
	playingTimeWeight = 0.5
)

// ComputeRating derives a player's match rating. Unused substitutes get 0;
// everyone else starts at the baseline and earns credit scaled by minutes
// played, capped at a full match.
func ComputeRating(minutesPlayed, goals, assists int) float64 {
	if minutesPlayed == 0 {
		return 0
	}

	ratio := math.Min(float64(minutesPlayed)/fullMatchMinutes, 1)
	rating := ratingBaseline +
		float64(goals)*goalWeight*ratio +
		float64(assists)*assistWeight*ratio +
		playingTimeWeight*ratio

	rating = math.Max(ratingMin, math.Min(ratingMax, rating))
	return math.Round(rating*10) / 10
}
