package store

import (
	"context"
	"math/rand"
	"sync"

	"github.com/tshephomotlhale/Family-Feud-Web/internal/room"
)

// Memory is an in-process Store. Documents are keyed by short join codes;
// every committed write fans the full document out to all subscribers of
// that key, in commit order. Subscriber callbacks run under the store lock
// and must not call back into the store.
type Memory struct {
	mu      sync.Mutex
	docs    map[string]*room.Room
	subs    map[string]map[int]func(Snapshot)
	nextSub int
	codeLen int
}

func NewMemory(codeLen int) *Memory {
	if codeLen <= 0 {
		codeLen = 5
	}
	return &Memory{
		docs:    make(map[string]*room.Room),
		subs:    make(map[string]map[int]func(Snapshot)),
		codeLen: codeLen,
	}
}

func (m *Memory) Create(_ context.Context, r room.Room) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := randomCode(m.codeLen)
	for m.docs[id] != nil {
		id = randomCode(m.codeLen)
	}
	doc := r.Clone()
	m.docs[id] = &doc
	return id, nil
}

func (m *Memory) Get(_ context.Context, id string) (room.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.docs[id]
	if doc == nil {
		return room.Room{}, ErrNotFound
	}
	return doc.Clone(), nil
}

func (m *Memory) Update(_ context.Context, id string, p room.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.docs[id]
	if doc == nil {
		return ErrNotFound
	}
	room.ApplyPatch(doc, p)
	m.fanout(id, Snapshot{Room: doc.Clone(), Exists: true})
	return nil
}

func (m *Memory) Apply(_ context.Context, id string, fn func(room.Room) (room.Patch, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.docs[id]
	if doc == nil {
		return ErrNotFound
	}
	p, err := fn(doc.Clone())
	if err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	room.ApplyPatch(doc, p)
	m.fanout(id, Snapshot{Room: doc.Clone(), Exists: true})
	return nil
}

// Subscribe registers a snapshot callback and immediately delivers the
// current state so the subscriber has a baseline.
func (m *Memory) Subscribe(id string, onSnapshot func(Snapshot)) func() {
	m.mu.Lock()
	if m.subs[id] == nil {
		m.subs[id] = make(map[int]func(Snapshot))
	}
	key := m.nextSub
	m.nextSub++
	m.subs[id][key] = onSnapshot

	initial := Snapshot{}
	if doc := m.docs[id]; doc != nil {
		initial = Snapshot{Room: doc.Clone(), Exists: true}
	}
	onSnapshot(initial)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs[id], key)
		if len(m.subs[id]) == 0 {
			delete(m.subs, id)
		}
		m.mu.Unlock()
	}
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[id] == nil {
		return ErrNotFound
	}
	delete(m.docs, id)
	m.fanout(id, Snapshot{Exists: false})
	return nil
}

func (m *Memory) fanout(id string, snap Snapshot) {
	for _, cb := range m.subs[id] {
		cb(snap)
	}
}

func randomCode(n int) string {
	letters := []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
