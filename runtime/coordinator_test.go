package runtime

import (
	"context"
	"fmt"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"quiz-lab/domain"
	"quiz-lab/domain/event"
	"quiz-lab/observability"
	"quiz-lab/repositories"
)

// stack wires a coordinator over a real registry, router and badger-backed
// room store, exactly as the server does, minus the websocket transport.
type stack struct {
	coordinator *Coordinator
	registry    *Registry
	rooms       repositories.IRoomRepository
	monitoring  *observability.Monitoring
	db          *badger.DB
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := testLogger()
	registry := NewRegistry()
	monitoring := observability.NewMonitoring(log)
	rooms := repositories.NewRoomRepository(db, log)
	router := NewRouter(registry, monitoring, log)
	moderator, err := BuildModerator(log, '*')
	require.NoError(t, err)

	return &stack{
		coordinator: NewCoordinator(log, registry, rooms, router, moderator, monitoring),
		registry:    registry,
		rooms:       rooms,
		monitoring:  monitoring,
		db:          db,
	}
}

// player is one simulated connection with its own recording sink.
type player struct {
	connID string
	userID string
	sink   *recordingSink
}

func (s *stack) connect(userID string) *player {
	p := &player{connID: "conn-" + userID, userID: userID, sink: &recordingSink{}}
	s.coordinator.Handle(context.Background(), p.connID, p.sink, domain.JoinLobbyCommand{UserID: userID})
	return p
}

func (s *stack) send(p *player, cmd domain.Command) {
	s.coordinator.Handle(context.Background(), p.connID, p.sink, cmd)
}

func (s *stack) createRoom(t *testing.T, p *player, name string, maxPlayers int) domain.Room {
	t.Helper()
	s.send(p, domain.CreateRoomCommand{UserID: p.userID, RoomName: name, MaxPlayers: maxPlayers})
	created, ok := p.sink.last().(event.RoomCreated)
	require.True(t, ok, "expected room_created, got %v", p.sink.types())
	return created.Room
}

func TestCoordinator_JoinLobby(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	bob := s.connect("bob")

	// The ack is private: bob hears nothing about alice's arrival
	req.Equal([]string{"lobby_joined"}, alice.sink.types())
	req.Equal([]string{"lobby_joined"}, bob.sink.types())
}

func TestCoordinator_CreateRoom(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	bob := s.connect("bob")

	room := s.createRoom(t, alice, "General Knowledge", 4)
	req.Equal("alice", room.HostID)
	req.Equal(1, room.CurrentPlayers)

	// The creator moved InRoom, so only bob's lobby connection gets the hint
	req.Equal([]string{"lobby_joined", "room_created"}, alice.sink.types())
	req.Equal([]string{"lobby_joined", "room_list_updated"}, bob.sink.types())

	conn, _ := s.registry.Get(alice.connID)
	req.Equal(room.ID, *conn.RoomID)
}

func TestCoordinator_CreateRoom_Defaults(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	alice := s.connect("alice")

	room := s.createRoom(t, alice, "   ", 0)
	req.Equal(domain.DefaultRoomName, room.Name)
	req.GreaterOrEqual(room.MaxPlayers, domain.MinPlayers)
}

func TestCoordinator_CreateRoom_CensorsName(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	alice := s.connect("alice")

	room := s.createRoom(t, alice, "stupid room", 4)
	req.NotContains(room.Name, "stupid")
	req.Contains(room.Name, "*")
}

func TestCoordinator_JoinRoom(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	bob := s.connect("bob")
	carol := s.connect("carol")

	room := s.createRoom(t, alice, "Science", 4)
	s.send(bob, domain.JoinRoomCommand{UserID: "bob", RoomID: string(room.ID)})

	// Joiner gets the ack with the updated record
	joined, ok := bob.sink.last().(event.RoomJoined)
	req.True(ok, "expected room_joined, got %v", bob.sink.types())
	req.Equal(2, joined.Room.CurrentPlayers)

	// Occupants get player_joined, the joiner does not hear about itself
	req.Equal([]string{"lobby_joined", "room_created", "player_joined"}, alice.sink.types())
	req.NotContains(bob.sink.types(), "player_joined")

	// The lobby hears the listing changed
	req.Equal([]string{"lobby_joined", "room_list_updated", "room_list_updated"}, carol.sink.types())
}

func TestCoordinator_JoinRoom_Full(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	room := s.createRoom(t, alice, "Tiny", 2)

	bob := s.connect("bob")
	s.send(bob, domain.JoinRoomCommand{UserID: "bob", RoomID: string(room.ID)})
	req.IsType(event.RoomJoined{}, bob.sink.last())

	carol := s.connect("carol")
	s.send(carol, domain.JoinRoomCommand{UserID: "carol", RoomID: string(room.ID)})

	errEvent, ok := carol.sink.last().(event.Error)
	req.True(ok)
	req.Contains(errEvent.Message, "full")

	// Rejection leaves no trace: carol is still in the lobby, count unchanged
	conn, _ := s.registry.Get(carol.connID)
	req.Nil(conn.RoomID)
	fetched, err := s.rooms.GetRoom(room.ID)
	req.NoError(err)
	req.Equal(2, fetched.CurrentPlayers)
	req.Equal(uint64(1), s.monitoring.Snapshot().JoinsRejected)
}

func TestCoordinator_JoinRoom_Unknown(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	alice := s.connect("alice")

	s.send(alice, domain.JoinRoomCommand{UserID: "alice", RoomID: "no-such-room"})

	errEvent, ok := alice.sink.last().(event.Error)
	req.True(ok)
	req.Contains(errEvent.Message, "not found")
}

func TestCoordinator_AtMostOneRoom(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	first := s.createRoom(t, alice, "First", 4)

	// Creating or joining while InRoom is a precondition violation
	s.send(alice, domain.CreateRoomCommand{UserID: "alice", RoomName: "Second", MaxPlayers: 4})
	req.IsType(event.Error{}, alice.sink.last())

	s.send(alice, domain.JoinRoomCommand{UserID: "alice", RoomID: string(first.ID)})
	req.IsType(event.Error{}, alice.sink.last())

	conn, _ := s.registry.Get(alice.connID)
	req.Equal(first.ID, *conn.RoomID)
}

func TestCoordinator_LeaveRoom(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	bob := s.connect("bob")
	room := s.createRoom(t, alice, "Science", 4)
	s.send(bob, domain.JoinRoomCommand{UserID: "bob", RoomID: string(room.ID)})

	s.send(bob, domain.LeaveRoomCommand{UserID: "bob"})

	req.IsType(event.RoomLeft{}, bob.sink.last())
	req.Contains(alice.sink.types(), "player_left")

	fetched, err := s.rooms.GetRoom(room.ID)
	req.NoError(err)
	req.Equal(1, fetched.CurrentPlayers)

	// Bob is back in the lobby and can join again
	s.send(bob, domain.JoinRoomCommand{UserID: "bob", RoomID: string(room.ID)})
	req.IsType(event.RoomJoined{}, bob.sink.last())
}

func TestCoordinator_LeaveRoom_NotInRoom(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	alice := s.connect("alice")

	s.send(alice, domain.LeaveRoomCommand{UserID: "alice"})
	req.IsType(event.Error{}, alice.sink.last())
}

func TestCoordinator_Disconnect(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	bob := s.connect("bob")
	carol := s.connect("carol")
	room := s.createRoom(t, alice, "Science", 4)
	s.send(bob, domain.JoinRoomCommand{UserID: "bob", RoomID: string(room.ID)})

	s.coordinator.Disconnect(context.Background(), bob.connID)

	// A dropped transport behaves exactly like an explicit leave
	req.Contains(alice.sink.types(), "player_left")
	req.Contains(carol.sink.types(), "room_list_updated")

	fetched, err := s.rooms.GetRoom(room.ID)
	req.NoError(err)
	req.Equal(1, fetched.CurrentPlayers)

	_, ok := s.registry.Get(bob.connID)
	req.False(ok)
}

func TestCoordinator_Disconnect_Idempotent(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	bob := s.connect("bob")
	room := s.createRoom(t, alice, "Science", 4)
	s.send(bob, domain.JoinRoomCommand{UserID: "bob", RoomID: string(room.ID)})

	s.coordinator.Disconnect(context.Background(), bob.connID)
	s.coordinator.Disconnect(context.Background(), bob.connID)

	fetched, err := s.rooms.GetRoom(room.ID)
	req.NoError(err)
	req.Equal(1, fetched.CurrentPlayers)

	// Only one player_left reached the room
	count := 0
	for _, typ := range alice.sink.types() {
		if typ == "player_left" {
			count++
		}
	}
	req.Equal(1, count)
}

func TestCoordinator_Disconnect_FromLobby(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	bob := s.connect("bob")

	s.coordinator.Disconnect(context.Background(), alice.connID)

	// Nothing to clean up, nobody notified
	req.Equal([]string{"lobby_joined"}, bob.sink.types())
	_, ok := s.registry.Get(alice.connID)
	req.False(ok)
}

func TestCoordinator_EmptyRoomIsKept(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.connect("alice")
	room := s.createRoom(t, alice, "Lonely", 4)
	s.send(alice, domain.LeaveRoomCommand{UserID: "alice"})

	// Last player gone, room record survives with zero players
	fetched, err := s.rooms.GetRoom(room.ID)
	req.NoError(err)
	req.Equal(0, fetched.CurrentPlayers)

	s.send(alice, domain.GetRoomsCommand{})
	listing, ok := alice.sink.last().(event.RoomsList)
	req.True(ok)
	req.Len(listing.Rooms, 1)
}

func TestCoordinator_GetRooms(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	host := s.connect("host")
	for i := 0; i < 3; i++ {
		h := s.connect(fmt.Sprintf("host-%d", i))
		s.createRoom(t, h, fmt.Sprintf("Room %d", i), 4)
	}

	s.send(host, domain.GetRoomsCommand{})
	listing, ok := host.sink.last().(event.RoomsList)
	req.True(ok)
	req.Len(listing.Rooms, 3)

	// Newest first
	req.Equal("Room 2", listing.Rooms[0].Name)
	req.Equal("Room 0", listing.Rooms[2].Name)
}

func TestCoordinator_CommandsBeforeJoinLobby(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	stranger := &player{connID: "conn-x", userID: "x", sink: &recordingSink{}}
	s.send(stranger, domain.CreateRoomCommand{UserID: "x", RoomName: "Nope", MaxPlayers: 4})
	req.IsType(event.Error{}, stranger.sink.last())

	s.send(stranger, domain.JoinRoomCommand{UserID: "x", RoomID: "whatever"})
	req.IsType(event.Error{}, stranger.sink.last())

	s.send(stranger, domain.LeaveRoomCommand{UserID: "x"})
	req.IsType(event.Error{}, stranger.sink.last())
}

func TestCoordinator_UserIDMismatch(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	alice := s.connect("alice")

	// A command claiming another user on alice's connection is rejected
	s.send(alice, domain.CreateRoomCommand{UserID: "mallory", RoomName: "Spoof", MaxPlayers: 4})
	req.IsType(event.Error{}, alice.sink.last())
}
