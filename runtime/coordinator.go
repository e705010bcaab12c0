package runtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/abadojack/whatlanggo"

	"quiz-lab/contract"
	"quiz-lab/domain"
	"quiz-lab/domain/event"
	"quiz-lab/errors"
	"quiz-lab/moderation"
	"quiz-lab/observability"
	"quiz-lab/repositories"
)

// Coordinator is the single serialization point for room-membership state.
// Every transport event (decoded command or close) runs to completion under
// one mutex before the next is processed, so registry and room-store updates
// are atomic with respect to each other and broadcasts triggered by one
// event go out before the next event is handled.
//
// The per-connection state machine it owns:
//
//	Disconnected -> LobbyPresent -> InRoom -> LobbyPresent -> ... -> Disconnected
//
// No state survives a transport close.
type Coordinator struct {
	mu         sync.Mutex
	log        *slog.Logger
	registry   contract.IRegistry
	rooms      repositories.IRoomRepository
	router     contract.IRouter
	moderator  *moderation.Moderator
	monitoring *observability.Monitoring
}

func NewCoordinator(
	log *slog.Logger,
	registry contract.IRegistry,
	rooms repositories.IRoomRepository,
	router contract.IRouter,
	moderator *moderation.Moderator,
	monitoring *observability.Monitoring,
) *Coordinator {
	return &Coordinator{
		log:        log,
		registry:   registry,
		rooms:      rooms,
		router:     router,
		moderator:  moderator,
		monitoring: monitoring,
	}
}

// Handle processes one decoded command from connID. The sink is the
// connection's own outbound half, used for direct replies; broadcasts go
// through the router.
func (c *Coordinator) Handle(_ context.Context, connID string, sink contract.EventSink, cmd domain.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch cmd := cmd.(type) {
	case domain.JoinLobbyCommand:
		c.joinLobby(connID, sink, cmd)
	case domain.CreateRoomCommand:
		c.createRoom(connID, sink, cmd)
	case domain.JoinRoomCommand:
		c.joinRoom(connID, sink, cmd)
	case domain.LeaveRoomCommand:
		c.leaveRoom(connID, sink, cmd)
	case domain.GetRoomsCommand:
		c.getRooms(sink)
	default:
		c.reject(sink, errors.ErrUnknownMessageType)
	}
}

// Disconnect runs the close cleanup. The transport guarantees it fires
// exactly once per closed connection; a second call finds the registry
// entry already gone and does nothing.
func (c *Coordinator) Disconnect(_ context.Context, connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, ok := c.registry.Remove(connID)
	if !ok {
		return
	}
	c.log.Debug("connection closed", "conn", connID, "user", conn.UserID)

	if conn.RoomID == nil {
		return
	}

	// A dropped transport retires the participant row exactly as an
	// explicit leave would.
	if _, err := c.rooms.RemoveParticipant(*conn.RoomID, conn.UserID); err != nil {
		c.log.Error("disconnect cleanup failed", "room", *conn.RoomID, "user", conn.UserID, "error", err)
		return
	}
	c.router.ToRoom(*conn.RoomID, event.PlayerLeft{UserID: conn.UserID}, connID)
	c.router.ToLobby(event.RoomListUpdated{})
}

func (c *Coordinator) joinLobby(connID string, sink contract.EventSink, cmd domain.JoinLobbyCommand) {
	// Private to the joining connection; the lobby is not notified.
	c.registry.Register(connID, cmd.UserID, sink)
	c.reply(sink, event.LobbyJoined{UserID: cmd.UserID})
}

func (c *Coordinator) createRoom(connID string, sink contract.EventSink, cmd domain.CreateRoomCommand) {
	if !c.requireLobby(connID, sink, cmd.UserID) {
		return
	}

	name := c.cleanName(domain.NormalizeRoomName(cmd.RoomName))
	room, err := c.rooms.CreateRoom(name, cmd.UserID, domain.ClampMaxPlayers(cmd.MaxPlayers), cmd.Config)
	if err != nil {
		c.reject(sink, err)
		return
	}

	if err = c.registry.SetRoom(connID, room.ID); err != nil {
		c.reject(sink, err)
		return
	}
	c.monitoring.IncrRoomsCreated()

	c.reply(sink, event.RoomCreated{Room: room})
	// The creator is InRoom by now, so it is not part of this fan-out.
	c.router.ToLobby(event.RoomListUpdated{})
}

func (c *Coordinator) joinRoom(connID string, sink contract.EventSink, cmd domain.JoinRoomCommand) {
	if !c.requireLobby(connID, sink, cmd.UserID) {
		return
	}

	roomID := domain.RoomID(cmd.RoomID)
	room, err := c.rooms.GetRoom(roomID)
	if err != nil {
		c.monitoring.IncrJoinsRejected()
		c.reject(sink, err)
		return
	}
	if !room.Joinable() {
		c.monitoring.IncrJoinsRejected()
		if room.CurrentPlayers >= room.MaxPlayers {
			c.reject(sink, errors.ErrRoomFull)
		} else {
			c.reject(sink, errors.ErrRoomNotJoinable)
		}
		return
	}

	// Participant row and counter move together inside the repository
	// transaction; a failure here leaves no partial membership behind.
	room, err = c.rooms.AddParticipant(roomID, cmd.UserID)
	if err != nil {
		c.monitoring.IncrJoinsRejected()
		c.reject(sink, err)
		return
	}

	if err = c.registry.SetRoom(connID, roomID); err != nil {
		c.reject(sink, err)
		return
	}
	c.monitoring.IncrJoinsAccepted()

	c.reply(sink, event.RoomJoined{Room: room})
	c.router.ToRoom(roomID, event.PlayerJoined{UserID: cmd.UserID}, connID)
	c.router.ToLobby(event.RoomListUpdated{})
}

func (c *Coordinator) leaveRoom(connID string, sink contract.EventSink, cmd domain.LeaveRoomCommand) {
	conn, ok := c.registry.Get(connID)
	if !ok {
		c.reject(sink, errors.ErrNotInLobby)
		return
	}
	// The room to leave is whatever the registry recorded, never a
	// client-supplied id: a client cannot "leave" a room it is not in.
	if conn.RoomID == nil {
		c.reject(sink, errors.ErrNotInRoom)
		return
	}
	roomID := *conn.RoomID

	if _, err := c.rooms.RemoveParticipant(roomID, conn.UserID); err != nil {
		c.reject(sink, err)
		return
	}
	if err := c.registry.ClearRoom(connID); err != nil {
		c.reject(sink, err)
		return
	}

	c.reply(sink, event.RoomLeft{})
	c.router.ToRoom(roomID, event.PlayerLeft{UserID: conn.UserID}, connID)
	c.router.ToLobby(event.RoomListUpdated{})
}

func (c *Coordinator) getRooms(sink contract.EventSink) {
	rooms, err := c.rooms.ListWaitingRooms()
	if err != nil {
		c.reject(sink, err)
		return
	}
	c.reply(sink, event.RoomsList{Rooms: rooms})
}

// requireLobby checks that connID is a registered lobby connection whose
// userId matches the command. Any mismatch is a precondition violation
// with no side effects.
func (c *Coordinator) requireLobby(connID string, sink contract.EventSink, userID string) bool {
	conn, ok := c.registry.Get(connID)
	if !ok || conn.UserID != userID {
		c.reject(sink, errors.ErrNotInLobby)
		return false
	}
	if conn.RoomID != nil {
		c.reject(sink, errors.ErrAlreadyInRoom)
		return false
	}
	return true
}

// cleanName runs the room name through the profanity censor.
func (c *Coordinator) cleanName(name string) string {
	if c.moderator == nil {
		return name
	}
	censored, matched := c.moderator.Censor(name)
	if matched {
		info := whatlanggo.Detect(name)
		c.log.Info("room name censored", "lang", info.Lang.Iso6391())
	}
	return censored
}

func (c *Coordinator) reply(sink contract.EventSink, e event.Event) {
	if err := sink.Send(e); err != nil {
		c.log.Debug("direct reply dropped", "event", e.Type())
	}
}

func (c *Coordinator) reject(sink contract.EventSink, err error) {
	c.reply(sink, event.Error{Message: err.Error()})
}
