package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Protocol errors: the frame itself is wrong. No state change.
	ErrUnknownMessageType = fmt.Errorf("unknown message type")
	ErrInvalidPayload     = fmt.Errorf("invalid payload")

	// Precondition violations: well-formed request against the wrong state.
	ErrRoomNotFound    = fmt.Errorf("room not found")
	ErrRoomFull        = fmt.Errorf("room is full")
	ErrRoomNotJoinable = fmt.Errorf("room is not joinable")
	ErrNotInRoom       = fmt.Errorf("not in a room")
	ErrNotInLobby      = fmt.Errorf("connection is not registered in the lobby")
	ErrAlreadyInRoom   = fmt.Errorf("already in a room")

	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	ErrGameNotFound    = fmt.Errorf("game not found")
	ErrGameFinished    = fmt.Errorf("game already finished")
	ErrQuestionFetch   = fmt.Errorf("question fetch failed")
	ErrAnswerOutOfSync = fmt.Errorf("answer does not match the current question")

	ErrOnlyCensoredFiles = fmt.Errorf("censored directory contains directories")
	ErrEmptyWords        = fmt.Errorf("no words have been found")
)
