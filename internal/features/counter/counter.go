// Package counter keeps a single non-negative integer in storage, along
// with the helpers the widget uses to decide which buttons are enabled.
package counter

import (
	"encoding/json"
	"fmt"

	"github.com/brogergvhs/scriptbox/internal/clock"
	"github.com/brogergvhs/scriptbox/internal/storage"
)

const StorageKey = "example_counter"

// MaxSafeInteger is the largest value increment is considered valid for.
const MaxSafeInteger = 1<<53 - 1

type Record struct {
	Value       int    `json:"value"`
	LastUpdated string `json:"lastUpdated"`
}

type Operation string

const (
	OpIncrement Operation = "increment"
	OpDecrement Operation = "decrement"
	OpReset     Operation = "reset"
)

// Get returns the stored value, or 0 when no usable record exists.
func Get(s storage.Storage) int {
	raw, ok := s.Get(StorageKey)
	return decodeRecord(raw, ok).Value
}

// decodeRecord treats a missing record, a shape mismatch and a value
// outside [0, MaxSafeInteger] alike: as the zero Record.
func decodeRecord(raw json.RawMessage, ok bool) Record {
	var rec Record
	if !ok || json.Unmarshal(raw, &rec) != nil {
		return Record{}
	}
	if rec.Value < 0 || rec.Value > MaxSafeInteger {
		return Record{}
	}

	return rec
}

func Increment(s storage.Storage) (int, error) {
	return apply(s, func(v int) int { return v + 1 })
}

// Decrement floors at zero. A record is written even when the value
// does not change.
func Decrement(s storage.Storage) (int, error) {
	return apply(s, func(v int) int { return max(0, v-1) })
}

// Reset removes the record entirely; Get then reports 0 through the
// default path.
func Reset(s storage.Storage) error {
	if err := s.Delete(StorageKey); err != nil {
		return fmt.Errorf("reset counter: %w", err)
	}
	return nil
}

func apply(s storage.Storage, next func(int) int) (int, error) {
	var out int

	err := storage.Update(s, StorageKey, func(cur json.RawMessage, ok bool) (any, error) {
		out = next(decodeRecord(cur, ok).Value)
		return Record{Value: out, LastUpdated: clock.Stamp()}, nil
	})
	if err != nil {
		return 0, fmt.Errorf("write counter: %w", err)
	}

	return out, nil
}

// IsValidOperation reports whether op makes sense at value. The write
// functions do not consult it.
func IsValidOperation(op Operation, value int) bool {
	switch op {
	case OpIncrement:
		return value < MaxSafeInteger
	case OpDecrement:
		return value > 0
	case OpReset:
		return value != 0
	}

	return false
}

func FormatDisplay(value int) string {
	if value == 0 {
		return "Counter: 0 (click + to start)"
	}

	return fmt.Sprintf("Counter: %d", value)
}
