package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/storage"
)

var errBroken = errors.New("disk on fire")

// memStore is an in-memory storage.Store whose reads and writes can be
// made to fail.
type memStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	readErr  error
	writeErr error
	writes   int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) Location(key string) string { return "mem://" + key }

func docs(raw ...string) []core.Document {
	out := make([]core.Document, len(raw))
	for i, r := range raw {
		out[i] = core.Document(r)
	}
	return out
}

func names(records []core.Document) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}
