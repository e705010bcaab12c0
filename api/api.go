// Package api exposes the HTTP surface: account management, solo games,
// question search and score history. The realtime room traffic does not
// go through here, it lives on the websocket endpoint.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"quiz-lab/auth"
	"quiz-lab/observability"
	"quiz-lab/repositories"
	"quiz-lab/services"
)

type API struct {
	log        *slog.Logger
	auth       services.IAuthService
	games      services.IGameService
	rooms      repositories.IRoomRepository
	questions  repositories.IQuestionRepository
	scores     repositories.IScoreRepository
	tokens     auth.TokenManager
	monitoring *observability.Monitoring
}

func New(
	log *slog.Logger,
	authService services.IAuthService,
	games services.IGameService,
	rooms repositories.IRoomRepository,
	questions repositories.IQuestionRepository,
	scores repositories.IScoreRepository,
	tokens auth.TokenManager,
	monitoring *observability.Monitoring,
) *API {
	return &API{
		log:        log,
		auth:       authService,
		games:      games,
		rooms:      rooms,
		questions:  questions,
		scores:     scores,
		tokens:     tokens,
		monitoring: monitoring,
	}
}

func (a *API) Router() *mux.Router {
	router := mux.NewRouter()

	public := router.PathPrefix("/api").Subrouter()
	public.HandleFunc("/auth/register", a.handleRegister).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", a.handleLogin).Methods(http.MethodPost)
	public.HandleFunc("/rooms", a.handleListRooms).Methods(http.MethodGet)
	public.HandleFunc("/questions/search", a.handleSearchQuestions).Methods(http.MethodGet)
	public.HandleFunc("/stats", a.handleStats).Methods(http.MethodGet)

	private := router.PathPrefix("/api").Subrouter()
	private.Use(a.requireAuth)
	private.HandleFunc("/games", a.handleStartGame).Methods(http.MethodPost)
	private.HandleFunc("/games/{id}", a.handleGetGame).Methods(http.MethodGet)
	private.HandleFunc("/games/{id}/answers", a.handleSubmitAnswer).Methods(http.MethodPost)
	private.HandleFunc("/scores", a.handleListScores).Methods(http.MethodGet)

	return router
}
