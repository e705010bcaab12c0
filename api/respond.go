package api

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"quiz-lab/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Warn("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError maps sentinel errors onto HTTP statuses. Anything unmapped
// is a 500 with a generic body so internals never leak to clients.
func (a *API) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case stderrors.Is(err, errors.ErrInvalidPassword),
		stderrors.Is(err, errors.ErrInvalidPayload),
		stderrors.Is(err, errors.ErrAnswerOutOfSync):
		status, message = http.StatusBadRequest, err.Error()
	case stderrors.Is(err, errors.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, err.Error()
	case stderrors.Is(err, errors.ErrUserAlreadyExists):
		status, message = http.StatusConflict, err.Error()
	case stderrors.Is(err, errors.ErrGameNotFound),
		stderrors.Is(err, errors.ErrRoomNotFound):
		status, message = http.StatusNotFound, err.Error()
	case stderrors.Is(err, errors.ErrGameFinished):
		status, message = http.StatusConflict, err.Error()
	case stderrors.Is(err, errors.ErrQuestionFetch):
		status, message = http.StatusBadGateway, err.Error()
	default:
		a.log.Error("unhandled API error", slog.String("error", err.Error()))
	}

	a.writeJSON(w, status, errorResponse{Error: message})
}

func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return errors.ErrInvalidPayload
	}
	return nil
}
