package storage

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Value int    `json:"value"`
	Note  string `json:"note"`
}

func backends(t *testing.T) map[string]Storage {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Storage{
		"memory": NewMemory(),
		"sqlite": db.Scope("test@example.com"),
	}
}

func TestStorage_GetMissingReturnsDefault(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := s.Get("missing")
			assert.False(t, ok)

			got := GetOr(s, "missing", record{Value: 7})
			assert.Equal(t, record{Value: 7}, got)

			assert.Nil(t, GetOr[[]string](s, "missing", nil))
		})
	}
}

func TestStorage_SetThenGet(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("rec", record{Value: 3, Note: "x"}))

			got := GetOr(s, "rec", record{})
			assert.Equal(t, record{Value: 3, Note: "x"}, got)

			require.NoError(t, s.Set("rec", record{Value: 4}))
			assert.Equal(t, 4, GetOr(s, "rec", record{}).Value)
		})
	}
}

func TestStorage_ShapeMismatchFallsBackToDefault(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("rec", "not a record"))

			got := GetOr(s, "rec", record{Value: 1})
			assert.Equal(t, record{Value: 1}, got)
		})
	}
}

func TestStorage_SetRejectsUnencodableValue(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Set("bad", make(chan int))
			require.Error(t, err)

			_, ok := s.Get("bad")
			assert.False(t, ok)
		})
	}
}

func TestStorage_DeleteIsIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("k", 1))
			require.NoError(t, s.Delete("k"))
			require.NoError(t, s.Delete("k"))
			require.NoError(t, s.Delete("never-set"))

			_, ok := s.Get("k")
			assert.False(t, ok)
		})
	}
}

func TestStorage_ListAndClear(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			keys, err := s.List()
			require.NoError(t, err)
			assert.Empty(t, keys)

			require.NoError(t, s.Set("b", 2))
			require.NoError(t, s.Set("a", 1))

			keys, err = s.List()
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"a", "b"}, keys)

			require.NoError(t, s.Clear())

			keys, err = s.List()
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestStorage_UpdateDoesNotLoseWrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			const n = 50

			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := Update(s, "count", func(cur json.RawMessage, ok bool) (any, error) {
						v := 0
						if ok {
							if err := json.Unmarshal(cur, &v); err != nil {
								return nil, err
							}
						}
						return v + 1, nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			assert.Equal(t, n, GetOr(s, "count", 0))
		})
	}
}

type plainStore struct{ *Memory }

func (plainStore) Update() {}

func TestUpdate_FallsBackToGetSet(t *testing.T) {
	s := plainStore{NewMemory()}

	_, isUpdater := any(s).(Updater)
	require.False(t, isUpdater)

	for i := 0; i < 3; i++ {
		err := Update(s, "n", func(cur json.RawMessage, ok bool) (any, error) {
			v := 0
			if ok {
				require.NoError(t, json.Unmarshal(cur, &v))
			}
			return v + 1, nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, GetOr(s, "n", 0))
}

func TestMemory_ValuesAreCopiedOnSet(t *testing.T) {
	m := NewMemory()
	list := []string{"a"}
	require.NoError(t, m.Set("list", list))

	list[0] = "changed"

	assert.Equal(t, []string{"a"}, GetOr[[]string](m, "list", nil))
}

func TestMemory_InvalidRawValueReadsAsAbsent(t *testing.T) {
	m := NewMemory()
	m.SetRaw("broken", []byte("{not json"))

	_, ok := m.Get("broken")
	assert.False(t, ok)
	assert.Equal(t, 5, GetOr(m, "broken", 5))
}

func TestMemory_ZeroValueIsUsable(t *testing.T) {
	var m Memory

	assert.Equal(t, 7, GetOr(&m, "missing", 7))

	keys, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, m.Set("a", record{Value: 1}))
	assert.Equal(t, record{Value: 1}, GetOr(&m, "a", record{}))

	require.NoError(t, Update(&m, "b", func(json.RawMessage, bool) (any, error) {
		return 2, nil
	}))
	assert.Equal(t, 2, GetOr(&m, "b", 0))

	require.NoError(t, m.Clear())
	require.NoError(t, m.Delete("a"))
}
