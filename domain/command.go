package domain

// Command is the closed set of client requests the coordinator accepts.
// Each variant carries exactly the fields its wire message requires;
// decoding and required-field validation happen before a Command is built,
// so the coordinator never sees a half-formed one.
type Command interface {
	Type() string
}

type JoinLobbyCommand struct {
	UserID string `json:"userId" validate:"required"`
}

func (JoinLobbyCommand) Type() string { return "join_lobby" }

type CreateRoomCommand struct {
	UserID     string     `json:"userId" validate:"required"`
	RoomName   string     `json:"roomName"`
	MaxPlayers int        `json:"maxPlayers"`
	Config     QuizConfig `json:"config"`
}

func (CreateRoomCommand) Type() string { return "create_room" }

type JoinRoomCommand struct {
	UserID string `json:"userId" validate:"required"`
	RoomID string `json:"roomId" validate:"required"`
}

func (JoinRoomCommand) Type() string { return "join_room" }

// LeaveRoomCommand intentionally has no RoomID field: the room to leave
// is whatever the registry has recorded for the connection, never a
// client-supplied value.
type LeaveRoomCommand struct {
	UserID string `json:"userId" validate:"required"`
}

func (LeaveRoomCommand) Type() string { return "leave_room" }

type GetRoomsCommand struct{}

func (GetRoomsCommand) Type() string { return "get_rooms" }
