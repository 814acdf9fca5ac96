package counter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/scriptbox/internal/clock"
	"github.com/brogergvhs/scriptbox/internal/storage"
)

func fixedClock(t *testing.T) {
	t.Helper()

	orig := clock.Now
	clock.Now = func() time.Time { return time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { clock.Now = orig })
}

func TestGet_DefaultsToZero(t *testing.T) {
	assert.Equal(t, 0, Get(storage.NewMemory()))
}

func TestIncrement_CountsFromFreshStore(t *testing.T) {
	for _, n := range []int{0, 1, 5, 20} {
		s := storage.NewMemory()
		for i := 0; i < n; i++ {
			_, err := Increment(s)
			require.NoError(t, err)
		}
		assert.Equal(t, n, Get(s), "after %d increments", n)
	}
}

func TestIncrement_WritesRecord(t *testing.T) {
	fixedClock(t)
	s := storage.NewMemory()

	v, err := Increment(s)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	rec := storage.GetOr(s, StorageKey, Record{})
	assert.Equal(t, Record{Value: 1, LastUpdated: "2024-03-09T12:30:00.000Z"}, rec)
}

func TestDecrement_NeverNegative(t *testing.T) {
	s := storage.NewMemory()

	v, err := Decrement(s)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, _ = Increment(s)
	_, _ = Increment(s)

	for _, want := range []int{1, 0, 0, 0} {
		v, err := Decrement(s)
		require.NoError(t, err)
		assert.Equal(t, want, v)
		assert.GreaterOrEqual(t, Get(s), 0)
	}
}

func TestDecrement_AtZeroStillWrites(t *testing.T) {
	s := storage.NewMemory()
	require.False(t, IsValidOperation(OpDecrement, Get(s)))

	_, err := Decrement(s)
	require.NoError(t, err)

	_, ok := s.Get(StorageKey)
	assert.True(t, ok, "decrement at zero should still store a record")
	assert.Equal(t, 0, storage.GetOr(s, StorageKey, Record{Value: -1}).Value)
}

func TestReset_RemovesKey(t *testing.T) {
	s := storage.NewMemory()
	for i := 0; i < 3; i++ {
		_, _ = Increment(s)
	}
	require.NoError(t, s.Set("other", 1))

	require.NoError(t, Reset(s))
	assert.Equal(t, 0, Get(s))

	keys, err := s.List()
	require.NoError(t, err)
	assert.NotContains(t, keys, StorageKey)
	assert.Contains(t, keys, "other")

	require.NoError(t, Reset(s))
}

func TestGet_CorruptRecordReadsAsZero(t *testing.T) {
	s := storage.NewMemory()
	s.SetRaw(StorageKey, []byte(`"seven"`))
	assert.Equal(t, 0, Get(s))

	v, err := Increment(s)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestGet_OutOfRangeRecordReadsAsZero(t *testing.T) {
	for _, raw := range []string{
		`{"value":-5}`,
		`{"value":9007199254740992}`,
		`{"value":9223372036854775807}`,
	} {
		s := storage.NewMemory()
		s.SetRaw(StorageKey, []byte(raw))

		assert.Equal(t, 0, Get(s), raw)
		assert.Equal(t, "Counter: 0 (click + to start)", FormatDisplay(Get(s)), raw)

		v, err := Increment(s)
		require.NoError(t, err)
		assert.Equal(t, 1, v, raw)
	}
}

func TestDecrement_OutOfRangeRecordStaysAtZero(t *testing.T) {
	s := storage.NewMemory()
	s.SetRaw(StorageKey, []byte(`{"value":-5}`))

	v, err := Decrement(s)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestIsValidOperation(t *testing.T) {
	tests := []struct {
		op    Operation
		value int
		want  bool
	}{
		{OpIncrement, 0, true},
		{OpIncrement, MaxSafeInteger - 1, true},
		{OpIncrement, MaxSafeInteger, false},
		{OpDecrement, 0, false},
		{OpDecrement, 1, true},
		{OpReset, 0, false},
		{OpReset, 3, true},
		{Operation("double"), 3, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidOperation(tt.op, tt.value), "%s at %d", tt.op, tt.value)
	}
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "Counter: 0 (click + to start)", FormatDisplay(0))
	assert.Equal(t, "Counter: 5", FormatDisplay(5))
}
