// Package event defines the outbound messages the server pushes to clients.
// Every event serializes as a JSON object with a "type" discriminator and
// the variant's own fields inlined next to it.
package event

import "quiz-lab/domain"

type Event interface {
	Type() string
}

// LobbyJoined is the private ack for a join_lobby request.
type LobbyJoined struct {
	UserID string `json:"userId"`
}

func (LobbyJoined) Type() string { return "lobby_joined" }

// RoomCreated is the point-to-point ack to the creator, carrying the full
// room record. The lobby gets a RoomListUpdated hint instead.
type RoomCreated struct {
	Room domain.Room `json:"room"`
}

func (RoomCreated) Type() string { return "room_created" }

type RoomJoined struct {
	Room domain.Room `json:"room"`
}

func (RoomJoined) Type() string { return "room_joined" }

type RoomLeft struct{}

func (RoomLeft) Type() string { return "room_left" }

// PlayerJoined goes to the other occupants of the room, never the joiner.
type PlayerJoined struct {
	UserID string `json:"userId"`
}

func (PlayerJoined) Type() string { return "player_joined" }

type PlayerLeft struct {
	UserID string `json:"userId"`
}

func (PlayerLeft) Type() string { return "player_left" }

type RoomsList struct {
	Rooms []domain.Room `json:"rooms"`
}

func (RoomsList) Type() string { return "rooms_list" }

// RoomListUpdated carries no payload: it only tells lobby clients their
// cached listing is stale and should be re-fetched.
type RoomListUpdated struct{}

func (RoomListUpdated) Type() string { return "room_list_updated" }

type Error struct {
	Message string `json:"message"`
}

func (Error) Type() string { return "error" }
