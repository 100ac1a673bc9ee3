package kvdb

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

// MemoryStore 인메모리 저장소
type MemoryStore struct {
	mu       sync.RWMutex
	datasets map[string][]int32
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{datasets: make(map[string][]int32)}
}

func (m *MemoryStore) Kind() Kind { return KindMemory }

func (m *MemoryStore) Save(name string, values []int32) error {
	if err := checkName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[name] = slices.Clone(values)
	return nil
}

func (m *MemoryStore) Load(name string) ([]int32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	values, ok := m.datasets[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "memory: %s", name)
	}
	return slices.Clone(values), nil
}

func (m *MemoryStore) Size() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, values := range m.datasets {
		n += int64(len(values)) * valueSize
	}
	return n, nil
}

func (m *MemoryStore) Close() error { return nil }
