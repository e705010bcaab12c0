//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"quiz-lab/domain"
	"quiz-lab/errors"
)

type IRoomRepository interface {
	// CreateRoom writes the room with the creator as sole participant and
	// CurrentPlayers already at 1, as one transaction.
	CreateRoom(name, hostID string, maxPlayers int, config domain.QuizConfig) (domain.Room, error)
	GetRoom(id domain.RoomID) (domain.Room, error)
	// ListWaitingRooms returns rooms with status waiting, newest first.
	ListWaitingRooms() ([]domain.Room, error)
	// AddParticipant re-checks joinability, inserts the participant row and
	// increments the counter in one transaction. Idempotent per
	// (roomID, userID): a second join by the same user changes nothing.
	AddParticipant(roomID domain.RoomID, userID string) (domain.Room, error)
	// RemoveParticipant deletes the row if present and decrements the
	// counter, floored at zero. Removing an absent participant is a no-op.
	RemoveParticipant(roomID domain.RoomID, userID string) (domain.Room, error)
}

// RoomRepository persists rooms and participant rows in BadgerDB.
//
// Key design:
//   - "room:{timestamp_padded}:{uuid}" holds the room record. The 19-digit
//     zero-padded creation timestamp makes a reverse prefix scan yield
//     newest-first order with no sorting step.
//   - "roomid:{uuid}" points at the main key for O(1) lookup by id.
//   - "part:{room_uuid}:{user_id}" is one participant row.
//
// Both halves of a membership change (participant row + counter) live in
// the same badger transaction, so a crash or a concurrent read can never
// observe a half-applied join or leave.
type RoomRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRoomRepository(db *badger.DB, log *slog.Logger) RoomRepository {
	return RoomRepository{db: db, log: log}
}

const roomPrefix = "room:"

func roomKey(createdAt time.Time, id domain.RoomID) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", roomPrefix, createdAt.UnixNano(), id))
}

func roomIndexKey(id domain.RoomID) []byte {
	return []byte("roomid:" + string(id))
}

func participantKey(roomID domain.RoomID, userID string) []byte {
	return []byte(fmt.Sprintf("part:%s:%s", roomID, userID))
}

func (r RoomRepository) CreateRoom(name, hostID string, maxPlayers int, config domain.QuizConfig) (domain.Room, error) {
	room := domain.Room{
		ID:             domain.RoomID(uuid.New().String()),
		Name:           name,
		HostID:         hostID,
		Status:         domain.StatusWaiting,
		MaxPlayers:     maxPlayers,
		CurrentPlayers: 1,
		Config:         config,
		CreatedAt:      time.Now().UTC(),
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		key := roomKey(room.CreatedAt, room.ID)
		if err := setJSON(txn, key, room); err != nil {
			return err
		}
		if err := txn.Set(roomIndexKey(room.ID), key); err != nil {
			return err
		}
		return setJSON(txn, participantKey(room.ID, hostID), domain.Participant{
			RoomID:   room.ID,
			UserID:   hostID,
			JoinedAt: room.CreatedAt,
		})
	})
	if err != nil {
		return domain.Room{}, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

func (r RoomRepository) GetRoom(id domain.RoomID) (domain.Room, error) {
	var room domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		room, _, err = getRoom(txn, id)
		return err
	})
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (r RoomRepository) ListWaitingRooms() ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse scan starts just past the last possible room key.
		seekKey := append([]byte(roomPrefix), 0xFF)
		prefix := []byte(roomPrefix)

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var room domain.Room
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &room)
			})
			if err != nil {
				return err
			}
			if room.Status == domain.StatusWaiting {
				rooms = append(rooms, room)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list waiting rooms: %w", err)
	}
	return rooms, nil
}

func (r RoomRepository) AddParticipant(roomID domain.RoomID, userID string) (domain.Room, error) {
	var room domain.Room
	err := r.db.Update(func(txn *badger.Txn) error {
		var key []byte
		var err error
		room, key, err = getRoom(txn, roomID)
		if err != nil {
			return err
		}

		// The room may have left the waiting state between the caller's
		// check and this transaction; re-check here where it is atomic.
		if room.Status != domain.StatusWaiting {
			return errors.ErrRoomNotJoinable
		}
		if room.CurrentPlayers >= room.MaxPlayers {
			return errors.ErrRoomFull
		}

		pKey := participantKey(roomID, userID)
		if _, err = txn.Get(pKey); err == nil {
			return nil // already a member, accounting unchanged
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		if err = setJSON(txn, pKey, domain.Participant{
			RoomID:   roomID,
			UserID:   userID,
			JoinedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		room.CurrentPlayers++
		return setJSON(txn, key, room)
	})
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (r RoomRepository) RemoveParticipant(roomID domain.RoomID, userID string) (domain.Room, error) {
	var room domain.Room
	err := r.db.Update(func(txn *badger.Txn) error {
		var key []byte
		var err error
		room, key, err = getRoom(txn, roomID)
		if err != nil {
			return err
		}

		pKey := participantKey(roomID, userID)
		if _, err = txn.Get(pKey); err == badger.ErrKeyNotFound {
			return nil // double leave, nothing to retire
		} else if err != nil {
			return err
		}

		if err = txn.Delete(pKey); err != nil {
			return err
		}
		if room.CurrentPlayers > 0 {
			room.CurrentPlayers--
		}
		return setJSON(txn, key, room)
	})
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

// getRoom resolves the id indirection and returns the record plus its main
// key so callers inside a transaction can write the record back.
func getRoom(txn *badger.Txn, id domain.RoomID) (domain.Room, []byte, error) {
	item, err := txn.Get(roomIndexKey(id))
	if err == badger.ErrKeyNotFound {
		return domain.Room{}, nil, errors.ErrRoomNotFound
	} else if err != nil {
		return domain.Room{}, nil, err
	}

	var key []byte
	if err = item.Value(func(val []byte) error {
		key = append([]byte(nil), val...)
		return nil
	}); err != nil {
		return domain.Room{}, nil, err
	}

	item, err = txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return domain.Room{}, nil, errors.ErrRoomNotFound
	} else if err != nil {
		return domain.Room{}, nil, err
	}

	var room domain.Room
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &room)
	})
	return room, key, err
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return txn.Set(key, bytes)
}
