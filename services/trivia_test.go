package services

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quiz-lab/domain"
	"quiz-lab/errors"
	"quiz-lab/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

const providerResponse = `{
	"response_code": 0,
	"results": [{
		"category": "Science &amp; Nature",
		"difficulty": "easy",
		"question": "What is H&sup2;O better known as?",
		"correct_answer": "Water",
		"incorrect_answers": ["Hydrogen", "Oxygen", "Salt"]
	}]
}`

func newArchive(t *testing.T) *mocks.MockIQuestionRepository {
	t.Helper()
	return mocks.NewMockIQuestionRepository(gomock.NewController(t))
}

func TestTriviaClient_Fetch(t *testing.T) {
	req := require.New(t)

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(providerResponse))
	}))
	defer server.Close()

	archive := newArchive(t)
	archive.EXPECT().Store(gomock.Any()).Return(nil)

	client := NewTriviaClient(server.URL, archive, testLogger(), 2, time.Millisecond)
	questions, err := client.Fetch(context.Background(), domain.QuizConfig{
		Amount:     5,
		Category:   "17",
		Difficulty: "easy",
	})
	req.NoError(err)
	req.Len(questions, 1)

	req.Contains(gotQuery, "amount=5")
	req.Contains(gotQuery, "category=17")
	req.Contains(gotQuery, "difficulty=easy")

	question := questions[0]

	// HTML entities are decoded before anything downstream sees them
	req.Equal("Science & Nature", question.Category)
	req.NotContains(question.Prompt, "&sup2;")

	// The correct answer survives the shuffle at the recorded index
	req.Len(question.Answers, 4)
	req.Equal("Water", question.Answers[question.CorrectIndex])
}

func TestTriviaClient_Fetch_RetriesOnRateLimit(t *testing.T) {
	req := require.New(t)

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(providerResponse))
	}))
	defer server.Close()

	archive := newArchive(t)
	archive.EXPECT().Store(gomock.Any()).Return(nil)

	client := NewTriviaClient(server.URL, archive, testLogger(), 3, time.Millisecond)
	questions, err := client.Fetch(context.Background(), domain.QuizConfig{Amount: 1})
	req.NoError(err)
	req.Len(questions, 1)
	req.Equal(3, calls)
}

func TestTriviaClient_Fetch_GivesUpAfterRetries(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewTriviaClient(server.URL, newArchive(t), testLogger(), 1, time.Millisecond)
	_, err := client.Fetch(context.Background(), domain.QuizConfig{Amount: 1})
	req.ErrorIs(err, errors.ErrQuestionFetch)
}

func TestTriviaClient_Fetch_NoRetryOnClientError(t *testing.T) {
	req := require.New(t)

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewTriviaClient(server.URL, newArchive(t), testLogger(), 3, time.Millisecond)
	_, err := client.Fetch(context.Background(), domain.QuizConfig{Amount: 1})
	req.ErrorIs(err, errors.ErrQuestionFetch)
	req.Equal(1, calls)
}

func TestTriviaClient_Fetch_ProviderErrorCode(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code": 1, "results": []}`))
	}))
	defer server.Close()

	client := NewTriviaClient(server.URL, newArchive(t), testLogger(), 0, time.Millisecond)
	_, err := client.Fetch(context.Background(), domain.QuizConfig{Amount: 50})
	req.ErrorIs(err, errors.ErrQuestionFetch)
}

func TestTriviaClient_Fetch_ArchiveFailureIsNotFatal(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(providerResponse))
	}))
	defer server.Close()

	archive := newArchive(t)
	archive.EXPECT().Store(gomock.Any()).Return(errors.ErrQuestionFetch)

	client := NewTriviaClient(server.URL, archive, testLogger(), 0, time.Millisecond)
	questions, err := client.Fetch(context.Background(), domain.QuizConfig{Amount: 1})
	req.NoError(err)
	req.Len(questions, 1)
}
