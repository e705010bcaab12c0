// This file defines Participant entities and related invariants.
package domain

import "time"

// Participant is a durable membership record linking a user to a room.
// At most one row exists per (RoomID, UserID) pair, and a row exists
// exactly when that user is counted in the room's CurrentPlayers.
type Participant struct {
	RoomID   RoomID    `json:"roomId"`
	UserID   string    `json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
}
