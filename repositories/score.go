//go:generate go run go.uber.org/mock/mockgen -source=score.go -destination=../mocks/mock_score_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IScoreRepository interface {
	SaveScore(score Score) error
	ListScoresByUser(userID string, limit int) ([]Score, error)
}

// Score is the persisted outcome of a finished solo game.
type Score struct {
	GameID     string    `json:"gameId"`
	UserID     string    `json:"userId"`
	Points     int       `json:"points"`
	BotPoints  int       `json:"botPoints"`
	Questions  int       `json:"questions"`
	Correct    int       `json:"correct"`
	FinishedAt time.Time `json:"finishedAt"`
}

type ScoreRepository struct {
	db *badger.DB
}

func NewScoreRepository(db *badger.DB) IScoreRepository {
	return &ScoreRepository{db: db}
}

// scoreKey orders entries by finish time under a per-user prefix, so a
// reverse scan yields the most recent games first.
func scoreKey(userID string, finishedAt time.Time) []byte {
	return []byte(fmt.Sprintf("score:%s:%019d", userID, finishedAt.UnixNano()))
}

func scorePrefix(userID string) []byte {
	return []byte("score:" + userID + ":")
}

func (s ScoreRepository) SaveScore(score Score) error {
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(scoreKey(score.UserID, score.FinishedAt), data)
	})
}

func (s ScoreRepository) ListScoresByUser(userID string, limit int) ([]Score, error) {
	var scores []Score

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := scorePrefix(userID)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration needs a seek key past the whole prefix range
		seek := append(append([]byte{}, prefix...), 0xFF)

		for it.Seek(seek); it.Valid(); it.Next() {
			if limit > 0 && len(scores) >= limit {
				break
			}

			var score Score
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &score)
			})
			if err != nil {
				return err
			}
			scores = append(scores, score)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}
