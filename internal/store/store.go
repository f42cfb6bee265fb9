package store

import (
	"context"
	"errors"

	"github.com/tshephomotlhale/Family-Feud-Web/internal/room"
)

var ErrNotFound = errors.New("room not found")

// Snapshot is a full copy of the room document delivered to a subscriber on
// every change. Exists is false when the document was removed; that state is
// terminal for the subscriber.
type Snapshot struct {
	Room   room.Room
	Exists bool
}

// Store is the keyed document store the game runs against. Update merges a
// partial field set with last-write-wins semantics per field and no
// multi-field atomicity beyond the single call. Apply is the conditional
// write primitive: the callback runs at the store's serialization point
// against the current document, so read-modify-write updates issued through
// it cannot lose each other. Fields whose next value depends on their
// previous one (reveal flags, scores, strikes, the buzzer) must go through
// Apply; blind Update is for client-authoritative fields like navigation.
type Store interface {
	Create(ctx context.Context, r room.Room) (id string, err error)
	Get(ctx context.Context, id string) (room.Room, error)
	Update(ctx context.Context, id string, p room.Patch) error
	Apply(ctx context.Context, id string, fn func(room.Room) (room.Patch, error)) error
	Subscribe(id string, onSnapshot func(Snapshot)) (unsubscribe func())
	Delete(ctx context.Context, id string) error
}
