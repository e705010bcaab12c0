package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScoreRepository_SaveAndList(t *testing.T) {
	req := require.New(t)
	repo := NewScoreRepository(newTestDB(t))

	base := time.Now().UTC()
	for i, points := range []int{12, 34, 56} {
		err := repo.SaveScore(Score{
			GameID:     "game-" + string(rune('a'+i)),
			UserID:     "alice",
			Points:     points,
			Questions:  10,
			Correct:    points / 10,
			FinishedAt: base.Add(time.Duration(i) * time.Minute),
		})
		req.NoError(err)
	}
	// Another user's scores must not leak in
	req.NoError(repo.SaveScore(Score{UserID: "bob", Points: 99, FinishedAt: base}))

	scores, err := repo.ListScoresByUser("alice", 0)
	req.NoError(err)
	req.Len(scores, 3)

	// Most recent first
	req.Equal(56, scores[0].Points)
	req.Equal(34, scores[1].Points)
	req.Equal(12, scores[2].Points)
}

func TestScoreRepository_ListLimit(t *testing.T) {
	req := require.New(t)
	repo := NewScoreRepository(newTestDB(t))

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		req.NoError(repo.SaveScore(Score{
			UserID:     "carol",
			Points:     i,
			FinishedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	scores, err := repo.ListScoresByUser("carol", 2)
	req.NoError(err)
	req.Len(scores, 2)
	req.Equal(4, scores[0].Points)
	req.Equal(3, scores[1].Points)
}

func TestScoreRepository_ListEmpty(t *testing.T) {
	req := require.New(t)
	repo := NewScoreRepository(newTestDB(t))

	scores, err := repo.ListScoresByUser("nobody", 10)
	req.NoError(err)
	req.Empty(scores)
}
