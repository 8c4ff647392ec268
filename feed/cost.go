package feed

import "math"

const (
	costBase       = 10
	costMultiplier = 5
)

// PostCost computes the perk cost shown next to a post from its like and
// comment counts. Deterministic given the two counts; no other meaning.
func PostCost(likes, comments int) int {
	score := float64(likes)*0.5 + float64(comments)*0.3
	return costBase + int(math.Round(score*costMultiplier))
}
