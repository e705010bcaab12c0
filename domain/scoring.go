package domain

import "time"

const (
	pointsPerCorrect = 10
	maxTimeBonus     = 5
	bonusDecayWindow = 2 * time.Second
)

// AnswerPoints is the whole scoring arithmetic: a flat award per correct
// answer plus a bonus that decays by one point every two seconds of
// thinking time. Wrong answers score zero, never negative.
func AnswerPoints(correct bool, elapsed time.Duration) int {
	if !correct {
		return 0
	}
	bonus := maxTimeBonus - int(elapsed/bonusDecayWindow)
	if bonus < 0 {
		bonus = 0
	}
	return pointsPerCorrect + bonus
}
