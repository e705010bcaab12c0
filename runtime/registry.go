package runtime

import (
	"iter"
	"sync"

	"quiz-lab/contract"
	"quiz-lab/domain"
	"quiz-lab/errors"
)

type entry struct {
	conn domain.Connection
	sink contract.EventSink
}

// Registry is the authoritative in-memory mapping from a connection id to
// its user and current room. It is an explicitly owned instance injected
// into the coordinator, never a process-wide global, so several independent
// coordinators can coexist in one process (tests rely on this).
//
// Nothing is persisted: registry state dies with the process, which is
// acceptable because the connections themselves do not survive a restart.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register inserts or overwrites the entry with no current room.
// Two browser tabs of the same user are two independent entries; the
// registry deliberately puts no constraint on userId uniqueness.
func (r *Registry) Register(connID, userID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[connID] = &entry{
		conn: domain.Connection{ID: connID, UserID: userID},
		sink: sink,
	}
}

// SetRoom records the room a connection now occupies. Unknown connections
// are an error, not an insert.
func (r *Registry) SetRoom(connID string, roomID domain.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[connID]
	if !ok {
		return errors.ErrNotInLobby
	}
	e.conn.RoomID = &roomID
	return nil
}

// ClearRoom puts the connection back into the lobby.
func (r *Registry) ClearRoom(connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[connID]
	if !ok {
		return errors.ErrNotInLobby
	}
	e.conn.RoomID = nil
	return nil
}

// Remove deletes the entry and returns its last known state so the
// coordinator can run disconnect cleanup with the userId and roomId the
// registry held at close time.
func (r *Registry) Remove(connID string) (domain.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[connID]
	if !ok {
		return domain.Connection{}, false
	}
	delete(r.entries, connID)
	return e.conn, true
}

func (r *Registry) Get(connID string) (domain.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[connID]
	if !ok {
		return domain.Connection{}, false
	}
	return e.conn, true
}

// ByRoom yields the connections currently mapped to roomID. The sequence
// is a snapshot taken when iteration starts, so a broadcast can run
// without holding the registry lock; it may be one event behind a racing
// disconnect, which the router tolerates.
func (r *Registry) ByRoom(roomID domain.RoomID) iter.Seq2[domain.Connection, contract.EventSink] {
	return func(yield func(domain.Connection, contract.EventSink) bool) {
		for _, e := range r.snapshot() {
			if e.conn.RoomID == nil || *e.conn.RoomID != roomID {
				continue
			}
			if !yield(e.conn, e.sink) {
				return
			}
		}
	}
}

// Lobby yields the connections with no current room.
func (r *Registry) Lobby() iter.Seq2[domain.Connection, contract.EventSink] {
	return func(yield func(domain.Connection, contract.EventSink) bool) {
		for _, e := range r.snapshot() {
			if e.conn.RoomID != nil {
				continue
			}
			if !yield(e.conn, e.sink) {
				return
			}
		}
	}
}

func (r *Registry) snapshot() []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out
}
