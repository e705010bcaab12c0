//go:generate go run go.uber.org/mock/mockgen -source=question.go -destination=../mocks/mock_question_repository.go -package=mocks
package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"

	"quiz-lab/domain"
	"quiz-lab/errors"
)

type IQuestionRepository interface {
	Store(questions []domain.Question) error
	Search(ctx context.Context, query string, limit int) ([]domain.Question, uint64, error)
}

// QuestionRepository archives every question fetched from the trivia
// provider. BadgerDB holds the full record, Bluge indexes the prompt
// and category for full-text search.
type QuestionRepository struct {
	db     *badger.DB
	writer *bluge.Writer
	log    *slog.Logger
}

func NewQuestionRepository(db *badger.DB, writer *bluge.Writer, log *slog.Logger) IQuestionRepository {
	return &QuestionRepository{db: db, writer: writer, log: log}
}

// questionKey dedupes on the prompt text, the only stable identity a
// trivia provider gives us across fetches.
func questionKey(prompt string) []byte {
	sum := sha256.Sum256([]byte(prompt))
	return []byte("question:" + hex.EncodeToString(sum[:]))
}

func (q QuestionRepository) Store(questions []domain.Question) error {
	batch := bluge.NewBatch()

	err := q.db.Update(func(txn *badger.Txn) error {
		for _, question := range questions {
			key := questionKey(question.Prompt)
			if _, err := txn.Get(key); err == nil {
				continue // already archived
			}

			data, err := json.Marshal(question)
			if err != nil {
				return fmt.Errorf("marshal failed: %w", err)
			}
			if err := txn.Set(key, data); err != nil {
				return err
			}

			doc := bluge.NewDocument(string(key)).
				AddField(bluge.NewTextField("prompt", question.Prompt).StoreValue()).
				AddField(bluge.NewKeywordField("category", question.Category).StoreValue()).
				AddField(bluge.NewKeywordField("difficulty", question.Difficulty).StoreValue())
			batch.Update(doc.ID(), doc)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := q.writer.Batch(batch); err != nil {
		return fmt.Errorf("index batch failed: %w", err)
	}
	return nil
}

func (q QuestionRepository) Search(ctx context.Context, query string, limit int) ([]domain.Question, uint64, error) {
	reader, err := q.writer.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("bluge reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			q.log.Warn("failed to close bluge reader", slog.String("error", err.Error()))
		}
	}()

	match := bluge.NewMatchQuery(query).SetField("prompt")
	request := bluge.NewTopNSearch(limit, match).WithStandardAggregations()

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("bluge search: %w", err)
	}

	var keys [][]byte
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, 0, err
		}
		if next == nil {
			break
		}
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				keys = append(keys, append([]byte{}, value...))
			}
			return true
		})
		if err != nil {
			return nil, 0, err
		}
	}

	questions, err := q.fetchByKeys(keys)
	if err != nil {
		return nil, 0, err
	}
	return questions, iterator.Aggregations().Count(), nil
}

// fetchByKeys resolves index hits back to the full Badger records.
// A hit whose record vanished is skipped, not fatal: the index can
// lag behind a compaction.
func (q QuestionRepository) fetchByKeys(keys [][]byte) ([]domain.Question, error) {
	var questions []domain.Question

	err := q.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get(key)
			if err != nil {
				q.log.Debug("indexed question missing from store",
					slog.String("key", string(key)))
				continue
			}

			var question domain.Question
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &question)
			})
			if err != nil {
				return fmt.Errorf("%w: %s", errors.ErrQuestionFetch, err)
			}
			questions = append(questions, question)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}
