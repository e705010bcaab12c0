package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quiz-lab/domain"
	"quiz-lab/errors"
	"quiz-lab/mocks"
	"quiz-lab/repositories"
)

var testQuestions = []domain.Question{
	{ID: "q1", Prompt: "2+2?", Answers: []string{"3", "4"}, CorrectIndex: 1},
	{ID: "q2", Prompt: "Capital of France?", Answers: []string{"Paris", "Lyon"}, CorrectIndex: 0},
}

// silentBot never scores, which keeps the assertions deterministic.
var silentBot = domain.BotProfile{Name: "Botty", Accuracy: 0, MaxDelay: time.Nanosecond}

func newGameService(t *testing.T) (*GameService, *mocks.MockIQuestionSource, *mocks.MockIScoreRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIQuestionSource(ctrl)
	scores := mocks.NewMockIScoreRepository(ctrl)
	return NewGameService(source, scores, silentBot, testLogger()), source, scores
}

func TestGameService_StartGame(t *testing.T) {
	req := require.New(t)
	svc, source, _ := newGameService(t)

	source.EXPECT().
		Fetch(gomock.Any(), domain.QuizConfig{Amount: 2}).
		Return(testQuestions, nil)

	view, err := svc.StartGame(context.Background(), "alice", domain.QuizConfig{Amount: 2})
	req.NoError(err)
	req.NotEmpty(view.ID)
	req.Equal("Botty", view.BotName)
	req.False(view.Finished)

	req.NotNil(view.Question)
	req.Equal(0, view.Question.Index)
	req.Equal(2, view.Question.Total)
	req.Equal("2+2?", view.Question.Prompt)
}

func TestGameService_StartGame_EmptyProvider(t *testing.T) {
	req := require.New(t)
	svc, source, _ := newGameService(t)

	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := svc.StartGame(context.Background(), "alice", domain.QuizConfig{})
	req.ErrorIs(err, errors.ErrQuestionFetch)
}

func TestGameService_SubmitAnswer_FullGame(t *testing.T) {
	req := require.New(t)
	svc, source, scores := newGameService(t)

	// Freeze the clock so the time bonus is exact
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(testQuestions, nil)
	view, err := svc.StartGame(context.Background(), "alice", domain.QuizConfig{})
	req.NoError(err)

	t.Run("correct instant answer earns full bonus", func(t *testing.T) {
		result, err := svc.SubmitAnswer(view.ID, "alice", 0, 1)
		req.NoError(err)
		req.True(result.Correct)
		req.Equal(1, result.CorrectIndex)
		req.Equal(15, result.Points) // 10 base + 5 bonus
		req.Equal(0, result.BotPoints)
		req.False(result.Finished)
		req.Equal("Capital of France?", result.Next.Prompt)
	})

	t.Run("wrong answer on the last question finishes and persists", func(t *testing.T) {
		scores.EXPECT().
			SaveScore(gomock.Any()).
			DoAndReturn(func(score repositories.Score) error {
				req.Equal("alice", score.UserID)
				req.Equal(15, score.Points)
				req.Equal(2, score.Questions)
				req.Equal(1, score.Correct)
				return nil
			})

		result, err := svc.SubmitAnswer(view.ID, "alice", 1, 1)
		req.NoError(err)
		req.False(result.Correct)
		req.Equal(0, result.Points)
		req.True(result.Finished)
		req.Nil(result.Next)
		req.Equal(15, result.Score)
	})

	t.Run("finished game is gone", func(t *testing.T) {
		_, err := svc.SubmitAnswer(view.ID, "alice", 2, 0)
		req.ErrorIs(err, errors.ErrGameNotFound)
	})
}

func TestGameService_SubmitAnswer_TimeBonusDecays(t *testing.T) {
	req := require.New(t)
	svc, source, _ := newGameService(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(testQuestions, nil)
	view, err := svc.StartGame(context.Background(), "alice", domain.QuizConfig{})
	req.NoError(err)

	// 6 seconds of thinking costs 3 bonus points
	now = now.Add(6 * time.Second)
	result, err := svc.SubmitAnswer(view.ID, "alice", 0, 1)
	req.NoError(err)
	req.Equal(12, result.Points)
}

func TestGameService_SubmitAnswer_Guards(t *testing.T) {
	req := require.New(t)
	svc, source, _ := newGameService(t)

	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(testQuestions, nil)
	view, err := svc.StartGame(context.Background(), "alice", domain.QuizConfig{})
	req.NoError(err)

	t.Run("unknown game", func(t *testing.T) {
		_, err := svc.SubmitAnswer("ghost", "alice", 0, 0)
		req.ErrorIs(err, errors.ErrGameNotFound)
	})

	t.Run("someone else's game", func(t *testing.T) {
		_, err := svc.SubmitAnswer(view.ID, "mallory", 0, 0)
		req.ErrorIs(err, errors.ErrGameNotFound)
	})

	t.Run("out of sync question index", func(t *testing.T) {
		_, err := svc.SubmitAnswer(view.ID, "alice", 1, 0)
		req.ErrorIs(err, errors.ErrAnswerOutOfSync)
	})
}

func TestGameService_GetGame(t *testing.T) {
	req := require.New(t)
	svc, source, _ := newGameService(t)

	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(testQuestions, nil)
	view, err := svc.StartGame(context.Background(), "alice", domain.QuizConfig{})
	req.NoError(err)

	fetched, err := svc.GetGame(view.ID, "alice")
	req.NoError(err)
	req.Equal(view.ID, fetched.ID)

	_, err = svc.GetGame(view.ID, "bob")
	req.ErrorIs(err, errors.ErrGameNotFound)
}
