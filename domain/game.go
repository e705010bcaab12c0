package domain

import "time"

type GameID string

// BotProfile is the scripted opponent: it answers correctly with
// probability Accuracy and "thinks" for a random duration up to MaxDelay.
type BotProfile struct {
	Name     string        `json:"name"`
	Accuracy float64       `json:"accuracy"`
	MaxDelay time.Duration `json:"-"`
}

// Game is a solo session against the clock, optionally with a bot opponent.
// It lives only in memory while running; the final result is persisted as a
// score record when the last question is answered.
type Game struct {
	ID         GameID      `json:"id"`
	UserID     string      `json:"userId"`
	Questions  []Question  `json:"-"`
	Index      int         `json:"index"`
	Score      int         `json:"score"`
	BotScore   int         `json:"botScore"`
	Bot        *BotProfile `json:"bot,omitempty"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt *time.Time  `json:"finishedAt,omitempty"`
}

func (g Game) Finished() bool { return g.FinishedAt != nil }

func (g Game) Current() (Question, bool) {
	if g.Index < 0 || g.Index >= len(g.Questions) {
		return Question{}, false
	}
	return g.Questions[g.Index], true
}
