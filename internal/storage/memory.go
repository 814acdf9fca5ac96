package storage

import (
	"encoding/json"
	"sort"
	"sync"
)

// Memory is an in-process Storage backed by a map. Values are kept in
// their encoded form, so mutating a value after Set is not observable.
// The zero value is an empty store ready to use.
type Memory struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]json.RawMessage)}
}

func (m *Memory) Get(key string) (json.RawMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok || !json.Valid(v) {
		return nil, false
	}

	return v, true
}

func (m *Memory) Set(key string, value any) error {
	b, err := encode(key, value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(key, b)

	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)

	return nil
}

func (m *Memory) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)

	return nil
}

// Update holds the store lock for the whole read-modify-write.
func (m *Memory) Update(key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.values[key]
	if ok && !json.Valid(cur) {
		cur, ok = nil, false
	}

	next, err := fn(cur, ok)
	if err != nil {
		return err
	}

	b, err := encode(key, next)
	if err != nil {
		return err
	}
	m.put(key, b)

	return nil
}

// put requires m.mu to be held.
func (m *Memory) put(key string, b json.RawMessage) {
	if m.values == nil {
		m.values = make(map[string]json.RawMessage)
	}
	m.values[key] = b
}

// SetRaw stores b verbatim, bypassing encoding. Tests use it to plant
// values that do not match the shape a feature expects.
func (m *Memory) SetRaw(key string, b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(key, append(json.RawMessage(nil), b...))
}
