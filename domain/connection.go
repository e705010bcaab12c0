package domain

// Connection is the transient identity of one live transport channel.
// It exists only in process memory: a reconnect is a brand-new Connection
// with no memory of the old one.
type Connection struct {
	ID     string
	UserID string
	// RoomID is nil while the connection sits in the lobby. It is mutated
	// only by the coordinator, never directly from client input.
	RoomID *RoomID
}

func (c Connection) InLobby() bool { return c.RoomID == nil }
