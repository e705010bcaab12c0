package ws

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"quiz-lab/domain/event"
	"quiz-lab/runtime"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Conn wraps one gorilla connection and is the EventSink the registry and
// router hold for it. Send is non-blocking: the frame goes into a buffered
// channel drained by the write pump, and a closed or saturated connection
// reports an error so the caller can drop the event.
type Conn struct {
	id        string
	ws        *websocket.Conn
	send      chan []byte
	log       *slog.Logger
	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(id string, ws *websocket.Conn, log *slog.Logger) *Conn {
	return &Conn{
		id:     id,
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		log:    log,
		closed: make(chan struct{}),
	}
}

func (c *Conn) ID() string { return c.id }

// Send implements contract.EventSink.
func (c *Conn) Send(e event.Event) error {
	raw, err := runtime.EncodeEvent(e)
	if err != nil {
		return err
	}

	select {
	case <-c.closed:
		return fmt.Errorf("connection %s is closed", c.id)
	default:
	}

	select {
	case c.send <- raw:
		return nil
	default:
		// A client that stopped draining its socket does not get to stall
		// a broadcast; the frame is dropped and reported.
		return fmt.Errorf("send buffer full for connection %s", c.id)
	}
}

// close is idempotent; every exit path of both pumps funnels through it.
func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.ws.Close()
	})
}

// writePump owns all writes to the socket, including pings. One goroutine
// per connection; gorilla allows at most one concurrent writer.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case raw := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}
