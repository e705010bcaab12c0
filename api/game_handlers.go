package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"quiz-lab/domain"
)

type startGameRequest struct {
	Amount     int    `json:"amount"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type answerRequest struct {
	QuestionIndex int `json:"questionIndex"`
	AnswerIndex   int `json:"answerIndex"`
}

func (a *API) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var body startGameRequest
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	if body.Amount <= 0 {
		body.Amount = 10
	}

	view, err := a.games.StartGame(r.Context(), userID(r), domain.QuizConfig{
		Amount:     body.Amount,
		Category:   body.Category,
		Difficulty: body.Difficulty,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, view)
}

func (a *API) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID := domain.GameID(mux.Vars(r)["id"])

	view, err := a.games.GetGame(gameID, userID(r))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, view)
}

func (a *API) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	gameID := domain.GameID(mux.Vars(r)["id"])

	var body answerRequest
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, err)
		return
	}

	result, err := a.games.SubmitAnswer(gameID, userID(r), body.QuestionIndex, body.AnswerIndex)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}
