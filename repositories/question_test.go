package repositories

import (
	"context"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"

	"quiz-lab/domain"
)

func newTestIndex(t *testing.T) *bluge.Writer {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })
	return writer
}

func TestQuestionRepository_StoreAndSearch(t *testing.T) {
	req := require.New(t)
	repo := NewQuestionRepository(newTestDB(t), newTestIndex(t), testLogger())

	questions := []domain.Question{
		{
			ID:           "q1",
			Category:     "Science",
			Difficulty:   "easy",
			Prompt:       "What planet is known as the Red Planet?",
			Answers:      []string{"Mars", "Venus", "Jupiter", "Saturn"},
			CorrectIndex: 0,
		},
		{
			ID:           "q2",
			Category:     "History",
			Difficulty:   "medium",
			Prompt:       "In which year did the Berlin Wall fall?",
			Answers:      []string{"1987", "1989", "1991", "1993"},
			CorrectIndex: 1,
		},
	}
	req.NoError(repo.Store(questions))

	results, total, err := repo.Search(context.Background(), "planet", 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(results, 1)
	req.Equal("What planet is known as the Red Planet?", results[0].Prompt)
	req.Equal([]string{"Mars", "Venus", "Jupiter", "Saturn"}, results[0].Answers)
}

func TestQuestionRepository_Store_DedupesOnPrompt(t *testing.T) {
	req := require.New(t)
	repo := NewQuestionRepository(newTestDB(t), newTestIndex(t), testLogger())

	question := domain.Question{
		ID:      "q1",
		Prompt:  "Who wrote Les Misérables?",
		Answers: []string{"Victor Hugo", "Émile Zola"},
	}
	req.NoError(repo.Store([]domain.Question{question}))
	req.NoError(repo.Store([]domain.Question{question}))

	results, total, err := repo.Search(context.Background(), "Misérables", 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(results, 1)
}

func TestQuestionRepository_Search_NoResults(t *testing.T) {
	req := require.New(t)
	repo := NewQuestionRepository(newTestDB(t), newTestIndex(t), testLogger())

	req.NoError(repo.Store([]domain.Question{{ID: "q1", Prompt: "Capital of France?"}}))

	results, total, err := repo.Search(context.Background(), "quantum chromodynamics", 10)
	req.NoError(err)
	req.Equal(uint64(0), total)
	req.Empty(results)
}
