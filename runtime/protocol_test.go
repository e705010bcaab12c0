package runtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"quiz-lab/domain"
	"quiz-lab/domain/event"
	"quiz-lab/errors"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected domain.Command
	}{
		{
			name:     "join_lobby",
			raw:      `{"type":"join_lobby","userId":"alice"}`,
			expected: domain.JoinLobbyCommand{UserID: "alice"},
		},
		{
			name: "create_room with config",
			raw:  `{"type":"create_room","userId":"alice","roomName":"Science","maxPlayers":4,"config":{"amount":10,"difficulty":"easy"}}`,
			expected: domain.CreateRoomCommand{
				UserID:     "alice",
				RoomName:   "Science",
				MaxPlayers: 4,
				Config:     domain.QuizConfig{Amount: 10, Difficulty: "easy"},
			},
		},
		{
			name:     "join_room",
			raw:      `{"type":"join_room","userId":"bob","roomId":"r-1"}`,
			expected: domain.JoinRoomCommand{UserID: "bob", RoomID: "r-1"},
		},
		{
			name:     "leave_room",
			raw:      `{"type":"leave_room","userId":"bob"}`,
			expected: domain.LeaveRoomCommand{UserID: "bob"},
		},
		{
			name:     "get_rooms",
			raw:      `{"type":"get_rooms"}`,
			expected: domain.GetRoomsCommand{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			cmd, err := DecodeCommand([]byte(tt.raw))
			req.NoError(err)
			req.Equal(tt.expected, cmd)
		})
	}
}

func TestDecodeCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		sentinel error
	}{
		{"not json", `{{{`, errors.ErrInvalidPayload},
		{"unknown type", `{"type":"fly_to_the_moon"}`, errors.ErrUnknownMessageType},
		{"missing required userId", `{"type":"join_lobby"}`, errors.ErrInvalidPayload},
		{"join_room without roomId", `{"type":"join_room","userId":"bob"}`, errors.ErrInvalidPayload},
		{"wrong field type", `{"type":"create_room","userId":"a","maxPlayers":"four"}`, errors.ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := DecodeCommand([]byte(tt.raw))
			req.ErrorIs(err, tt.sentinel)
		})
	}
}

func TestEncodeEvent(t *testing.T) {
	req := require.New(t)

	raw, err := EncodeEvent(event.PlayerJoined{UserID: "alice"})
	req.NoError(err)

	var fields map[string]any
	req.NoError(json.Unmarshal(raw, &fields))

	// The discriminator sits flat next to the payload fields
	req.Equal("player_joined", fields["type"])
	req.Equal("alice", fields["userId"])
}

func TestEncodeEvent_EmptyPayload(t *testing.T) {
	req := require.New(t)

	raw, err := EncodeEvent(event.RoomLeft{})
	req.NoError(err)
	req.JSONEq(`{"type":"room_left"}`, string(raw))
}

func TestEncodeEvent_NestedRoom(t *testing.T) {
	req := require.New(t)

	raw, err := EncodeEvent(event.RoomCreated{Room: domain.Room{
		ID:             "r-1",
		Name:           "Science",
		HostID:         "alice",
		Status:         domain.StatusWaiting,
		MaxPlayers:     4,
		CurrentPlayers: 1,
	}})
	req.NoError(err)

	var decoded struct {
		Type string      `json:"type"`
		Room domain.Room `json:"room"`
	}
	req.NoError(json.Unmarshal(raw, &decoded))
	req.Equal("room_created", decoded.Type)
	req.Equal(domain.RoomID("r-1"), decoded.Room.ID)
	req.Equal(1, decoded.Room.CurrentPlayers)
}
