//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"iter"
	"reflect"

	"quiz-lab/domain"
	"quiz-lab/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one client's outbound half. Send never blocks the caller:
// a sink whose transport is gone returns an error and the caller drops
// the event (best-effort delivery).
type EventSink interface {
	Send(e event.Event) error
}

// IRegistry is the single authority for "who is online and where".
// Sequences are restartable snapshots; iteration order is unspecified.
type IRegistry interface {
	Register(connID, userID string, sink EventSink)
	SetRoom(connID string, roomID domain.RoomID) error
	ClearRoom(connID string) error
	Remove(connID string) (domain.Connection, bool)
	Get(connID string) (domain.Connection, bool)
	ByRoom(roomID domain.RoomID) iter.Seq2[domain.Connection, EventSink]
	Lobby() iter.Seq2[domain.Connection, EventSink]
}

// IRouter fans typed events out to a computed recipient set.
// No ordering across recipients, no acknowledgment, at-most-once per call.
type IRouter interface {
	ToRoom(roomID domain.RoomID, e event.Event, excludeConnID string)
	ToLobby(e event.Event)
}

// ICoordinator serializes every room-membership transition. A transport
// hands it decoded commands and a close notification; nothing else
// mutates the registry or the room store.
type ICoordinator interface {
	Handle(ctx context.Context, connID string, sink EventSink, cmd domain.Command)
	Disconnect(ctx context.Context, connID string)
}
