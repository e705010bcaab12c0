//go:generate go run go.uber.org/mock/mockgen -source=game_service.go -destination=mock_game_service.go -package=services -self_package=quiz-lab/services
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-lab/domain"
	"quiz-lab/errors"
	"quiz-lab/repositories"
)

type IGameService interface {
	StartGame(ctx context.Context, userID string, config domain.QuizConfig) (GameView, error)
	SubmitAnswer(gameID domain.GameID, userID string, questionIndex, answerIndex int) (AnswerResult, error)
	GetGame(gameID domain.GameID, userID string) (GameView, error)
}

// QuestionView is a question as shown to the player: the correct index
// stays server-side until the answer comes back.
type QuestionView struct {
	Index      int      `json:"index"`
	Total      int      `json:"total"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Prompt     string   `json:"prompt"`
	Answers    []string `json:"answers"`
}

type GameView struct {
	ID       domain.GameID `json:"id"`
	Score    int           `json:"score"`
	BotScore int           `json:"botScore"`
	BotName  string        `json:"botName,omitempty"`
	Finished bool          `json:"finished"`
	Question *QuestionView `json:"question,omitempty"`
}

type AnswerResult struct {
	Correct      bool          `json:"correct"`
	CorrectIndex int           `json:"correctIndex"`
	Points       int           `json:"points"`
	BotPoints    int           `json:"botPoints"`
	Score        int           `json:"score"`
	BotScore     int           `json:"botScore"`
	Finished     bool          `json:"finished"`
	Next         *QuestionView `json:"next,omitempty"`
}

// session pairs the game with the moment its current question was served,
// which is what the time bonus is measured against.
type session struct {
	game    *domain.Game
	askedAt time.Time
	correct int
}

// GameService runs solo games in memory. Questions come from the trivia
// source, results are persisted through the score repository when the
// last answer lands. The map only ever holds running games.
type GameService struct {
	mu       sync.Mutex
	sessions map[domain.GameID]*session

	source IQuestionSource
	scores repositories.IScoreRepository
	bot    domain.BotProfile
	log    *slog.Logger
	now    func() time.Time
}

func NewGameService(source IQuestionSource, scores repositories.IScoreRepository, bot domain.BotProfile, log *slog.Logger) *GameService {
	return &GameService{
		sessions: make(map[domain.GameID]*session),
		source:   source,
		scores:   scores,
		bot:      bot,
		log:      log,
		now:      time.Now,
	}
}

func (s *GameService) StartGame(ctx context.Context, userID string, config domain.QuizConfig) (GameView, error) {
	questions, err := s.source.Fetch(ctx, config)
	if err != nil {
		return GameView{}, err
	}
	if len(questions) == 0 {
		return GameView{}, fmt.Errorf("%w: provider returned no questions", errors.ErrQuestionFetch)
	}

	bot := s.bot
	game := &domain.Game{
		ID:        domain.GameID(uuid.New().String()),
		UserID:    userID,
		Questions: questions,
		Bot:       &bot,
		StartedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.sessions[game.ID] = &session{game: game, askedAt: s.now()}
	s.mu.Unlock()

	s.log.Info("game started",
		slog.String("game_id", string(game.ID)),
		slog.String("user_id", userID),
		slog.Int("questions", len(questions)))

	return s.view(game), nil
}

func (s *GameService) SubmitAnswer(gameID domain.GameID, userID string, questionIndex, answerIndex int) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[gameID]
	if !ok || sess.game.UserID != userID {
		return AnswerResult{}, errors.ErrGameNotFound
	}
	game := sess.game

	if game.Finished() {
		return AnswerResult{}, errors.ErrGameFinished
	}
	// A stale client answering a question that already moved on must not
	// score against the wrong one.
	if questionIndex != game.Index {
		return AnswerResult{}, fmt.Errorf("%w: got %d, current is %d",
			errors.ErrAnswerOutOfSync, questionIndex, game.Index)
	}

	question, ok := game.Current()
	if !ok {
		return AnswerResult{}, errors.ErrGameFinished
	}

	elapsed := s.now().Sub(sess.askedAt)
	correct := answerIndex == question.CorrectIndex
	points := domain.AnswerPoints(correct, elapsed)
	botPoints := s.botAnswer()

	game.Score += points
	game.BotScore += botPoints
	if correct {
		sess.correct++
	}
	game.Index++
	sess.askedAt = s.now()

	result := AnswerResult{
		Correct:      correct,
		CorrectIndex: question.CorrectIndex,
		Points:       points,
		BotPoints:    botPoints,
		Score:        game.Score,
		BotScore:     game.BotScore,
	}

	if game.Index >= len(game.Questions) {
		s.finish(sess)
		result.Finished = true
		return result, nil
	}

	next, _ := game.Current()
	result.Next = questionView(game, next)
	return result, nil
}

func (s *GameService) GetGame(gameID domain.GameID, userID string) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[gameID]
	if !ok || sess.game.UserID != userID {
		return GameView{}, errors.ErrGameNotFound
	}
	return s.view(sess.game), nil
}

// botAnswer simulates the opponent on the question just played: right
// with probability Accuracy, after a random think time up to MaxDelay.
func (s *GameService) botAnswer() int {
	correct := rand.Float64() < s.bot.Accuracy
	delay := time.Duration(rand.Int63n(int64(s.bot.MaxDelay) + 1))
	return domain.AnswerPoints(correct, delay)
}

// finish is called with the mutex held.
func (s *GameService) finish(sess *session) {
	game := sess.game
	finishedAt := s.now().UTC()
	game.FinishedAt = &finishedAt
	delete(s.sessions, game.ID)

	err := s.scores.SaveScore(repositories.Score{
		GameID:     string(game.ID),
		UserID:     game.UserID,
		Points:     game.Score,
		BotPoints:  game.BotScore,
		Questions:  len(game.Questions),
		Correct:    sess.correct,
		FinishedAt: finishedAt,
	})
	if err != nil {
		s.log.Error("failed to persist final score",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()))
	}

	s.log.Info("game finished",
		slog.String("game_id", string(game.ID)),
		slog.String("user_id", game.UserID),
		slog.Int("score", game.Score),
		slog.Int("bot_score", game.BotScore))
}

func (s *GameService) view(game *domain.Game) GameView {
	view := GameView{
		ID:       game.ID,
		Score:    game.Score,
		BotScore: game.BotScore,
		Finished: game.Finished(),
	}
	if game.Bot != nil {
		view.BotName = game.Bot.Name
	}
	if question, ok := game.Current(); ok {
		view.Question = questionView(game, question)
	}
	return view
}

func questionView(game *domain.Game, question domain.Question) *QuestionView {
	return &QuestionView{
		Index:      game.Index,
		Total:      len(game.Questions),
		Category:   question.Category,
		Difficulty: question.Difficulty,
		Prompt:     question.Prompt,
		Answers:    question.Answers,
	}
}
