package api

import (
	"net/http"
	"strconv"

	"quiz-lab/domain"
	"quiz-lab/repositories"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type searchResponse struct {
	Total     uint64            `json:"total"`
	Questions []domain.Question `json:"questions"`
}

func (a *API) handleSearchQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing query parameter q"})
		return
	}
	limit := intQueryParam(r, "limit", defaultSearchLimit)
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	questions, total, err := a.questions.Search(r.Context(), query, limit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	a.writeJSON(w, http.StatusOK, searchResponse{Total: total, Questions: questions})
}

func (a *API) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := a.rooms.ListWaitingRooms()
	if err != nil {
		a.writeError(w, err)
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	a.writeJSON(w, http.StatusOK, rooms)
}

func (a *API) handleListScores(w http.ResponseWriter, r *http.Request) {
	limit := intQueryParam(r, "limit", 50)

	scores, err := a.scores.ListScoresByUser(userID(r), limit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if scores == nil {
		scores = []repositories.Score{}
	}
	a.writeJSON(w, http.StatusOK, scores)
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.monitoring.Snapshot())
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
