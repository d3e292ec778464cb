package store

import (
	"context"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

type memoryEntry struct {
	snapshot model.Snapshot
	expires  time.Time
}

// MemoryStore keeps workspaces in process. Expired entries are dropped when
// they are next touched.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return model.Snapshot{}, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, id)
		return model.Snapshot{}, nil
	}
	return copySnapshot(e.snapshot), nil
}

func (m *MemoryStore) Save(_ context.Context, id string, snapshot model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{
		snapshot: copySnapshot(snapshot),
		expires:  m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Sweep removes every expired workspace and reports how many were dropped.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for id, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

func copySnapshot(s model.Snapshot) model.Snapshot {
	return model.Snapshot{
		Subjects:  append([]model.Subject(nil), s.Subjects...),
		Timetable: s.Timetable.Clone(),
	}
}
