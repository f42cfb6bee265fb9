package buzzer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/room"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/store"
)

func startedRoom() room.Room {
	r := room.New("Test Room", []room.Question{
		{Text: "Q1", Answers: []room.Answer{{Text: "Alpha", Points: 40}}},
	})
	r.Status = room.StatusStarted
	return r
}

func TestFirstBuzzWins(t *testing.T) {
	m := store.NewMemory(5)
	clock := clockwork.NewFakeClock()
	resolver := NewResolver(m, clock)
	ctx := context.Background()
	id, _ := m.Create(ctx, startedRoom())

	ev, err := resolver.Buzz(ctx, id, "Alice")
	if err != nil {
		t.Fatalf("first buzz failed: %v", err)
	}
	if ev.Player != "Alice" {
		t.Fatalf("expected Alice recorded, got %q", ev.Player)
	}

	clock.Advance(time.Millisecond)
	if _, err := resolver.Buzz(ctx, id, "Bob"); err != ErrAlreadyBuzzed {
		t.Fatalf("expected ErrAlreadyBuzzed for the later attempt, got %v", err)
	}

	rm, _ := m.Get(ctx, id)
	if rm.Buzzer == nil || rm.Buzzer.Player != "Alice" {
		t.Fatalf("recorded buzz must be the first attempt, got %+v", rm.Buzzer)
	}
}

// Many racing attempts must produce exactly one recorded winner, every run.
func TestConcurrentBuzzRace(t *testing.T) {
	players := []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank", "Grace", "Heidi"}

	for run := 0; run < 25; run++ {
		m := store.NewMemory(5)
		resolver := NewResolver(m, clockwork.NewFakeClock())
		ctx := context.Background()
		id, _ := m.Create(ctx, startedRoom())

		var mu sync.Mutex
		winners := []string{}
		losers := 0

		var wg sync.WaitGroup
		for _, p := range players {
			wg.Add(1)
			go func(player string) {
				defer wg.Done()
				ev, err := resolver.Buzz(ctx, id, player)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					winners = append(winners, ev.Player)
				case errors.Is(err, ErrAlreadyBuzzed):
					losers++
				default:
					t.Errorf("unexpected buzz error: %v", err)
				}
			}(p)
		}
		wg.Wait()

		if len(winners) != 1 {
			t.Fatalf("run %d: expected exactly one winner, got %d", run, len(winners))
		}
		if losers != len(players)-1 {
			t.Fatalf("run %d: expected %d losers, got %d", run, len(players)-1, losers)
		}

		rm, _ := m.Get(ctx, id)
		if rm.Buzzer == nil || rm.Buzzer.Player != winners[0] {
			t.Fatalf("run %d: recorded buzz %+v does not match winner %q", run, rm.Buzzer, winners[0])
		}
	}
}

// A blind last-write-wins field update is not a valid buzzer resolver: the
// later write silently replaces the earlier one. This pins down why Buzz
// must go through the store's conditional write.
func TestBlindWriteOverwritesFirstBuzz(t *testing.T) {
	m := store.NewMemory(5)
	ctx := context.Background()
	id, _ := m.Create(ctx, startedRoom())

	first := &room.BuzzEvent{Player: "Alice", Timestamp: "2026-01-01T00:00:00.000Z"}
	second := &room.BuzzEvent{Player: "Bob", Timestamp: "2026-01-01T00:00:00.001Z"}

	if err := m.Update(ctx, id, room.Patch{"buzzer": first}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := m.Update(ctx, id, room.Patch{"buzzer": second}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rm, _ := m.Get(ctx, id)
	if rm.Buzzer.Player != "Bob" {
		t.Fatalf("expected the blind path to lose the first buzz, got %+v", rm.Buzzer)
	}
}

func TestBuzzGuards(t *testing.T) {
	m := store.NewMemory(5)
	resolver := NewResolver(m, clockwork.NewFakeClock())
	ctx := context.Background()

	if _, err := resolver.Buzz(ctx, "NOPE1", "Alice"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing room, got %v", err)
	}

	waiting, _ := m.Create(ctx, room.New("Waiting Room", room.DefaultQuestions()))
	if _, err := resolver.Buzz(ctx, waiting, "Alice"); err != ErrNotStarted {
		t.Fatalf("expected ErrNotStarted before the game starts, got %v", err)
	}

	started, _ := m.Create(ctx, startedRoom())
	if _, err := resolver.Buzz(ctx, started, ""); err != ErrEmptyPlayer {
		t.Fatalf("expected ErrEmptyPlayer, got %v", err)
	}
}

// Clearing the buzzer rearms the race for the next face-off.
func TestBuzzAfterClear(t *testing.T) {
	m := store.NewMemory(5)
	resolver := NewResolver(m, clockwork.NewFakeClock())
	ctx := context.Background()
	id, _ := m.Create(ctx, startedRoom())

	if _, err := resolver.Buzz(ctx, id, "Alice"); err != nil {
		t.Fatalf("buzz failed: %v", err)
	}
	if err := m.Apply(ctx, id, func(cur room.Room) (room.Patch, error) {
		return room.ClearBuzzer(cur)
	}); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	ev, err := resolver.Buzz(ctx, id, "Bob")
	if err != nil {
		t.Fatalf("buzz after clear failed: %v", err)
	}
	if ev.Player != "Bob" {
		t.Fatalf("expected Bob recorded after rearm, got %q", ev.Player)
	}
}
