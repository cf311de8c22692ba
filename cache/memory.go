package cache

import (
	"context"
	"sync"
)

type Memory struct {
	mu      sync.RWMutex
	columns map[string]int
}

func NewMemory() *Memory {
	return &Memory{columns: make(map[string]int)}
}

func (m *Memory) Get(ctx context.Context, key string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	column, ok := m.columns[key]
	return column, ok, nil
}

func (m *Memory) Set(ctx context.Context, key string, column int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.columns[key] = column
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.columns)
}
