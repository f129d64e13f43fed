package navstore

import (
	"context"
	"sync"
)

// Memory is a Store kept in process memory. States are stored in encoded
// form, so loaded values have the same shape as those read from disk.
type Memory struct {
	mu     sync.RWMutex
	states map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{states: make(map[string][]byte)}
}

// Load implements Store.
func (m *Memory) Load(ctx context.Context, id string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	data, ok := m.states[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return decodeState(data)
}

// Save implements Store.
func (m *Memory) Save(ctx context.Context, id string, state map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validID(id); err != nil {
		return err
	}

	data, err := encodeState(state)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.states[id] = data
	m.mu.Unlock()

	return nil
}

// Delete implements Store. Deleting a missing id is not an error.
func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.states, id)
	m.mu.Unlock()

	return nil
}

// Len returns the number of stored states.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}
