package media

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryHost is an in-memory implementation of Host. It keeps all assets in
// a map, making it useful for development and tests. Safe for concurrent use.
type MemoryHost struct {
	mu     sync.RWMutex
	assets map[string][]byte

	// Deleted records ids passed to Delete, in order. Tests assert on it.
	Deleted []string
}

// NewMemoryHost creates an empty in-memory media host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{assets: make(map[string][]byte)}
}

func (m *MemoryHost) Upload(_ context.Context, data []byte, _, kind string) (Asset, error) {
	id := fmt.Sprintf("%s/%s", kind, uuid.NewString())

	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.assets[id] = buf

	return Asset{
		URL:      "memory://" + id,
		PublicID: id,
	}, nil
}

func (m *MemoryHost) Delete(_ context.Context, publicID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deleted = append(m.Deleted, publicID)
	if _, ok := m.assets[publicID]; !ok {
		return false, nil
	}
	delete(m.assets, publicID)
	return true, nil
}

// Get returns a stored asset's bytes, for tests.
func (m *MemoryHost) Get(publicID string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.assets[publicID]
	return data, ok
}

// Len reports the number of stored assets.
func (m *MemoryHost) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assets)
}
