// Package ws is the websocket transport: one long-lived connection per
// client at a fixed path, carrying UTF-8 JSON text frames in both
// directions. It decodes frames, feeds the coordinator, and guarantees the
// close cleanup fires exactly once per connection.
package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quiz-lab/contract"
	"quiz-lab/domain/event"
	"quiz-lab/observability"
	"quiz-lab/runtime"
)

type Server struct {
	log         *slog.Logger
	coordinator contract.ICoordinator
	monitoring  *observability.Monitoring
	upgrader    websocket.Upgrader
}

func NewServer(log *slog.Logger, coordinator contract.ICoordinator, monitoring *observability.Monitoring) *Server {
	return &Server{
		log:         log,
		coordinator: coordinator,
		monitoring:  monitoring,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checking belongs to the reverse proxy in this setup.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and runs the connection's read loop until
// the transport closes. Events from one connection are handled in arrival
// order; the coordinator serializes across connections.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	socket, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}

	conn := newConn(uuid.New().String(), socket, s.log)
	s.monitoring.IncrConnections()
	s.log.Debug("websocket connected", "conn", conn.id, "remote", r.RemoteAddr)

	go conn.writePump()
	s.readLoop(r, conn)

	// The read loop is the single exit path for a connection, so this
	// disconnect runs exactly once even if the close raced an in-flight
	// message.
	s.coordinator.Disconnect(r.Context(), conn.id)
	conn.close()
	s.monitoring.DecrConnections()
	s.log.Debug("websocket disconnected", "conn", conn.id)
}

func (s *Server) readLoop(r *http.Request, conn *Conn) {
	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("websocket read error", "conn", conn.id, "error", err)
			}
			return
		}

		cmd, err := runtime.DecodeCommand(raw)
		if err != nil {
			// Protocol errors go straight back to the offender; the
			// connection stays open and no state was touched.
			s.monitoring.IncrProtocolErrors()
			_ = conn.Send(event.Error{Message: err.Error()})
			continue
		}

		s.coordinator.Handle(r.Context(), conn.id, conn, cmd)
	}
}
