package runtime

import (
	"log/slog"

	"quiz-lab/contract"
	"quiz-lab/domain"
	"quiz-lab/domain/event"
	"quiz-lab/observability"
)

// Router is pure fan-out over a recipient set computed by the registry.
// Delivery is best-effort and at-most-once: a sink whose transport closed
// between the snapshot and the send is skipped silently, and a failure on
// one recipient never aborts the rest of the broadcast.
type Router struct {
	registry   contract.IRegistry
	monitoring *observability.Monitoring
	log        *slog.Logger
}

func NewRouter(registry contract.IRegistry, monitoring *observability.Monitoring, log *slog.Logger) *Router {
	return &Router{registry: registry, monitoring: monitoring, log: log}
}

// ToRoom sends e to every connection currently in roomID, skipping
// excludeConnID when non-empty (a joiner must not be notified of itself).
func (r *Router) ToRoom(roomID domain.RoomID, e event.Event, excludeConnID string) {
	for conn, sink := range r.registry.ByRoom(roomID) {
		if excludeConnID != "" && conn.ID == excludeConnID {
			continue
		}
		r.deliver(conn, sink, e)
	}
}

// ToLobby sends e to every connection currently in no room.
func (r *Router) ToLobby(e event.Event) {
	for conn, sink := range r.registry.Lobby() {
		r.deliver(conn, sink, e)
	}
}

func (r *Router) deliver(conn domain.Connection, sink contract.EventSink, e event.Event) {
	if err := sink.Send(e); err != nil {
		// The registry may be one event behind a just-closed connection.
		r.monitoring.IncrBroadcastSkipped()
		r.log.Debug("skipping closed sink", "conn", conn.ID, "event", e.Type())
		return
	}
	r.monitoring.IncrBroadcastSent()
}
