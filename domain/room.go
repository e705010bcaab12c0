// Package domain contains core concepts of the quiz system.
// This file defines Room records and the rules applied to them at creation.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"strings"
	"time"
)

type RoomID string

// RoomStatus follows the room lifecycle: waiting -> playing -> finished.
// Only waiting rooms are joinable and listed.
type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

const (
	MinPlayers      = 2
	MaxPlayersLimit = 16
	MaxRoomNameLen  = 64
	DefaultRoomName = "Quiz Room"
)

// QuizConfig is carried opaquely from room creation to game start.
// The coordinator never interprets it.
type QuizConfig struct {
	Amount     int    `json:"amount"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type Room struct {
	ID             RoomID     `json:"id"`
	Name           string     `json:"name"`
	HostID         string     `json:"hostId"`
	Status         RoomStatus `json:"status"`
	MaxPlayers     int        `json:"maxPlayers"`
	CurrentPlayers int        `json:"currentPlayers"`
	Config         QuizConfig `json:"config"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Joinable reports whether a join may be attempted against this room.
// The repository re-checks the same conditions inside its transaction.
func (r Room) Joinable() bool {
	return r.Status == StatusWaiting && r.CurrentPlayers < r.MaxPlayers
}

// NormalizeRoomName trims, substitutes the default for empty, and caps length.
func NormalizeRoomName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultRoomName
	}
	if runes := []rune(name); len(runes) > MaxRoomNameLen {
		return string(runes[:MaxRoomNameLen])
	}
	return name
}

// ClampMaxPlayers forces the capacity into [MinPlayers, MaxPlayersLimit].
// Zero (field absent on the wire) clamps to the minimum.
func ClampMaxPlayers(n int) int {
	if n < MinPlayers {
		return MinPlayers
	}
	if n > MaxPlayersLimit {
		return MaxPlayersLimit
	}
	return n
}
