package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOk(t *testing.T) {
	r := Ok(42)

	assert.True(t, r.OK())
	assert.Equal(t, 42, r.Data())
	assert.NoError(t, r.Err())
}

func TestErr(t *testing.T) {
	boom := errors.New("boom")
	r := Err[string](boom)

	assert.False(t, r.OK())
	assert.Empty(t, r.Data())

	v, err := r.Unwrap()
	assert.Empty(t, v)
	assert.ErrorIs(t, err, boom)
}
