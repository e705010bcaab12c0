package api

import (
	"net/http"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, err)
		return
	}

	token, err := a.auth.Register(body.Email, body.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, tokenResponse{Token: string(token)})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, err)
		return
	}

	token, err := a.auth.Login(body.Email, body.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, tokenResponse{Token: string(token)})
}
