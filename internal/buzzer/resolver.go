package buzzer

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/room"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/store"
)

var (
	ErrAlreadyBuzzed = errors.New("someone already buzzed")
	ErrNotStarted    = errors.New("game has not started")
	ErrEmptyPlayer   = errors.New("player name required")
)

// Resolver decides which of N racing buzz attempts is recorded as first.
// A plain last-write-wins field update is not a correct first-to-buzz
// resolver: two simultaneous writes produce a coin-flip winner. Buzz
// therefore goes through the store's conditional write primitive and only
// records when the buzzer field is still unset, so exactly one attempt wins
// and it is the first to reach the store's serialization point.
type Resolver struct {
	st    store.Store
	clock clockwork.Clock
}

func NewResolver(st store.Store, clock clockwork.Clock) *Resolver {
	return &Resolver{st: st, clock: clock}
}

// Buzz attempts to record player as first responder for the room's current
// question. Losers get ErrAlreadyBuzzed.
func (r *Resolver) Buzz(ctx context.Context, roomID, player string) (*room.BuzzEvent, error) {
	if player == "" {
		return nil, ErrEmptyPlayer
	}
	var ev *room.BuzzEvent
	err := r.st.Apply(ctx, roomID, func(cur room.Room) (room.Patch, error) {
		if cur.Status != room.StatusStarted {
			return nil, ErrNotStarted
		}
		if cur.Buzzer != nil {
			return nil, ErrAlreadyBuzzed
		}
		ev = &room.BuzzEvent{
			Player:    player,
			Timestamp: r.clock.Now().UTC().Format(time.RFC3339Nano),
		}
		return room.Patch{"buzzer": ev}, nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}
