package live

import (
	"context"
	"sync"

	"github.com/tshephomotlhale/Family-Feud-Web/internal/room"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/store"
)

// Adapter bridges one client's view of a room to the shared store. It keeps
// the last two applied snapshots so cues can be edge-detected, and every
// outbound write is derived from the latest observed state rather than a
// copy captured earlier in the action's call chain. Writes are
// fire-and-forget: nothing is rolled back on failure, the next inbound
// snapshot is authoritative.
type Adapter struct {
	st     store.Store
	roomID string

	mu       sync.Mutex
	previous room.Room
	latest   room.Room
	hasState bool
	gone     bool

	unsub func()
}

// Subscribe attaches an adapter to a room. onSnapshot receives every applied
// snapshot together with the cues that fired on the transition; the initial
// snapshot carries no cues. onGone is invoked at most once, when the room
// document disappears; the adapter then rejects all further mutations.
func Subscribe(st store.Store, roomID string, onSnapshot func(room.Room, []Cue), onGone func()) *Adapter {
	a := &Adapter{st: st, roomID: roomID}
	a.unsub = st.Subscribe(roomID, func(snap store.Snapshot) {
		a.mu.Lock()
		if a.gone {
			a.mu.Unlock()
			return
		}
		if !snap.Exists {
			a.gone = true
			a.mu.Unlock()
			if onGone != nil {
				onGone()
			}
			return
		}
		var cues []Cue
		if a.hasState {
			cues = Cues(a.latest, snap.Room)
		}
		a.previous = a.latest
		a.latest = snap.Room
		a.hasState = true
		a.mu.Unlock()
		if onSnapshot != nil {
			onSnapshot(snap.Room, cues)
		}
	})
	return a
}

// Latest returns the last applied snapshot. ok is false before the first
// snapshot and after the room is gone.
func (a *Adapter) Latest() (room.Room, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gone || !a.hasState {
		return room.Room{}, false
	}
	return a.latest, true
}

// Gone reports whether the room document has been removed.
func (a *Adapter) Gone() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gone
}

// Dispatch runs a reducer against the latest observed snapshot and writes
// the resulting partial state blindly (last-write-wins). A nil patch from
// the reducer is a no-op. Use for client-authoritative fields such as
// navigation; races on those are tolerated by design.
func (a *Adapter) Dispatch(ctx context.Context, fn func(room.Room) (room.Patch, error)) error {
	a.mu.Lock()
	if a.gone || !a.hasState {
		a.mu.Unlock()
		return store.ErrNotFound
	}
	cur := a.latest
	a.mu.Unlock()

	p, err := fn(cur)
	if err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return a.st.Update(ctx, a.roomID, p)
}

// Apply runs a reducer at the store's serialization point. Required for any
// field whose next value depends on its previous one: reveal flags, scores,
// strikes, the buzzer.
func (a *Adapter) Apply(ctx context.Context, fn func(room.Room) (room.Patch, error)) error {
	if a.Gone() {
		return store.ErrNotFound
	}
	return a.st.Apply(ctx, a.roomID, fn)
}

func (a *Adapter) Close() {
	a.mu.Lock()
	a.gone = true
	a.mu.Unlock()
	if a.unsub != nil {
		a.unsub()
	}
}
