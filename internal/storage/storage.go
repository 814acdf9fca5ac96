// Package storage defines the per-script key/value store that features
// persist their state in, along with an in-memory and a SQLite backend.
package storage

import (
	"encoding/json"
	"fmt"
)

// Storage is a scoped key/value store holding JSON-encoded values.
//
// Get never fails: a missing key or a value the backend cannot decode is
// reported as absent.
type Storage interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value any) error
	Delete(key string) error
	List() ([]string, error)
	Clear() error
}

// UpdateFunc receives the current raw value (ok is false when absent) and
// returns the value to write back.
type UpdateFunc func(current json.RawMessage, ok bool) (any, error)

// Updater is implemented by stores that can run a read-modify-write on a
// single key without losing concurrent updates.
type Updater interface {
	Update(key string, fn UpdateFunc) error
}

// GetOr decodes the value under key into T, returning def when the key is
// absent or the stored shape does not decode into T.
func GetOr[T any](s Storage, key string, def T) T {
	raw, ok := s.Get(key)
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}

	return v
}

// Update runs fn against the value under key and writes the result back.
// Stores implementing Updater do this atomically; others fall back to a
// plain Get followed by Set.
func Update(s Storage, key string, fn UpdateFunc) error {
	if u, ok := s.(Updater); ok {
		return u.Update(key, fn)
	}

	cur, ok := s.Get(key)
	next, err := fn(cur, ok)
	if err != nil {
		return err
	}

	return s.Set(key, next)
}

func encode(key string, value any) (json.RawMessage, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", key, err)
	}

	return b, nil
}
