package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quiz-lab/auth"
	"quiz-lab/domain"
	"quiz-lab/errors"
	"quiz-lab/mocks"
	"quiz-lab/observability"
	"quiz-lab/services"
)

type fixture struct {
	api       *API
	tokens    auth.TokenManager
	games     *services.MockIGameService
	rooms     *mocks.MockIRoomRepository
	questions *mocks.MockIQuestionRepository
	scores    *mocks.MockIScoreRepository
	users     *mocks.MockIUserRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	tokens := auth.NewTokenManager("api-test-secret", time.Hour)
	games := services.NewMockIGameService(ctrl)
	rooms := mocks.NewMockIRoomRepository(ctrl)
	questions := mocks.NewMockIQuestionRepository(ctrl)
	scores := mocks.NewMockIScoreRepository(ctrl)
	users := mocks.NewMockIUserRepository(ctrl)

	log := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	authService := services.NewAuthService(users, tokens)

	return fixture{
		api:       New(log, authService, games, rooms, questions, scores, tokens, observability.NewMonitoring(log)),
		tokens:    tokens,
		games:     games,
		rooms:     rooms,
		questions: questions,
		scores:    scores,
		users:     users,
	}
}

func (f fixture) bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := f.tokens.Generate(userID, []string{"user"})
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, f fixture, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", token)
	}
	recorder := httptest.NewRecorder()
	f.api.Router().ServeHTTP(recorder, request)
	return recorder
}

func TestRegisterEndpoint(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	t.Run("valid registration returns a token", func(t *testing.T) {
		f.users.EXPECT().
			CreateUser("new@example.com", gomock.Any()).
			Return("user-1", nil)

		rec := doRequest(t, f, http.MethodPost, "/api/auth/register", "",
			`{"email":"new@example.com","password":"ComplexPass123!"}`)

		req.Equal(http.StatusCreated, rec.Code)

		var body tokenResponse
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		req.NotEmpty(body.Token)
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		f.users.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			Return("", errors.ErrUserAlreadyExists)

		rec := doRequest(t, f, http.MethodPost, "/api/auth/register", "",
			`{"email":"dup@example.com","password":"ComplexPass123!"}`)

		req.Equal(http.StatusConflict, rec.Code)
	})

	t.Run("weak password maps to 400", func(t *testing.T) {
		rec := doRequest(t, f, http.MethodPost, "/api/auth/register", "",
			`{"email":"weak@example.com","password":"short"}`)

		req.Equal(http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		rec := doRequest(t, f, http.MethodPost, "/api/auth/register", "", `{not json`)
		req.Equal(http.StatusBadRequest, rec.Code)
	})
}

func TestGameEndpoints_Auth(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := doRequest(t, f, http.MethodPost, "/api/games", "", `{"amount":5}`)
		req.Equal(http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		rec := doRequest(t, f, http.MethodPost, "/api/games", "Bearer nope", `{"amount":5}`)
		req.Equal(http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the service with the claimed user", func(t *testing.T) {
		f.games.EXPECT().
			StartGame(gomock.Any(), "alice", domain.QuizConfig{Amount: 5}).
			Return(services.GameView{ID: "game-1"}, nil)

		rec := doRequest(t, f, http.MethodPost, "/api/games", f.bearer(t, "alice"), `{"amount":5}`)
		req.Equal(http.StatusCreated, rec.Code)
	})
}

func TestSubmitAnswerEndpoint(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	t.Run("answers are forwarded to the game", func(t *testing.T) {
		f.games.EXPECT().
			SubmitAnswer(domain.GameID("game-1"), "alice", 0, 2).
			Return(services.AnswerResult{Correct: true, Points: 15, Score: 15}, nil)

		rec := doRequest(t, f, http.MethodPost, "/api/games/game-1/answers",
			f.bearer(t, "alice"), `{"questionIndex":0,"answerIndex":2}`)

		req.Equal(http.StatusOK, rec.Code)

		var result services.AnswerResult
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &result))
		req.True(result.Correct)
		req.Equal(15, result.Points)
	})

	t.Run("unknown game maps to 404", func(t *testing.T) {
		f.games.EXPECT().
			SubmitAnswer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(services.AnswerResult{}, errors.ErrGameNotFound)

		rec := doRequest(t, f, http.MethodPost, "/api/games/ghost/answers",
			f.bearer(t, "alice"), `{"questionIndex":0,"answerIndex":0}`)

		req.Equal(http.StatusNotFound, rec.Code)
	})

	t.Run("out of sync answer maps to 400", func(t *testing.T) {
		f.games.EXPECT().
			SubmitAnswer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(services.AnswerResult{}, errors.ErrAnswerOutOfSync)

		rec := doRequest(t, f, http.MethodPost, "/api/games/game-1/answers",
			f.bearer(t, "alice"), `{"questionIndex":3,"answerIndex":0}`)

		req.Equal(http.StatusBadRequest, rec.Code)
	})
}

func TestSearchQuestionsEndpoint(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	t.Run("returns hits", func(t *testing.T) {
		f.questions.EXPECT().
			Search(gomock.Any(), "planet", 20).
			Return([]domain.Question{{ID: "q1", Prompt: "Red planet?"}}, uint64(1), nil)

		rec := doRequest(t, f, http.MethodGet, "/api/questions/search?q=planet", "", "")
		req.Equal(http.StatusOK, rec.Code)

		var body searchResponse
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		req.Equal(uint64(1), body.Total)
		req.Len(body.Questions, 1)
	})

	t.Run("missing q is rejected", func(t *testing.T) {
		rec := doRequest(t, f, http.MethodGet, "/api/questions/search", "", "")
		req.Equal(http.StatusBadRequest, rec.Code)
	})

	t.Run("limit is capped", func(t *testing.T) {
		f.questions.EXPECT().
			Search(gomock.Any(), "x", maxSearchLimit).
			Return(nil, uint64(0), nil)

		rec := doRequest(t, f, http.MethodGet, "/api/questions/search?q=x&limit=9999", "", "")
		req.Equal(http.StatusOK, rec.Code)
	})
}

func TestListRoomsEndpoint(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.rooms.EXPECT().
		ListWaitingRooms().
		Return([]domain.Room{{ID: "r1", Name: "General", CurrentPlayers: 2, MaxPlayers: 4}}, nil)

	rec := doRequest(t, f, http.MethodGet, "/api/rooms", "", "")
	req.Equal(http.StatusOK, rec.Code)

	var rooms []domain.Room
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &rooms))
	req.Len(rooms, 1)
	req.Equal("General", rooms[0].Name)
}

func TestListScoresEndpoint(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.scores.EXPECT().
		ListScoresByUser("alice", 50).
		Return(nil, nil)

	rec := doRequest(t, f, http.MethodGet, "/api/scores", f.bearer(t, "alice"), "")
	req.Equal(http.StatusOK, rec.Code)
}
