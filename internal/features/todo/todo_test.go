package todo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/scriptbox/internal/httpclient"
)

func TestFetch_RejectsNonPositiveID(t *testing.T) {
	m := httpclient.NewMock()

	for _, id := range []int{0, -3} {
		r := Fetch(context.Background(), m, "", id)
		assert.False(t, r.OK())
		assert.ErrorIs(t, r.Err(), ErrInvalidID)
	}
	assert.Empty(t, m.Calls(), "no request for invalid ids")
}

func TestFetch_DecodesItem(t *testing.T) {
	m := httpclient.NewMock()
	m.Respond(&httpclient.Response{
		Data:   []byte(`{"id":3,"title":"fugiat veniam minus","completed":false}`),
		Status: 200,
	})

	r := Fetch(context.Background(), m, "", 3)
	require.True(t, r.OK())
	assert.Equal(t, Item{ID: 3, Title: "fugiat veniam minus"}, r.Data())

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://jsonplaceholder.typicode.com/todos/3", calls[0].URL)
}

func TestFetch_TransportFailure(t *testing.T) {
	m := httpclient.NewMock()
	m.Fail(errors.New("Request failed: Network error"))

	r := Fetch(context.Background(), m, "https://api.example/", 1)
	assert.False(t, r.OK())
	assert.EqualError(t, r.Err(), "Request failed: Network error")
	assert.Equal(t, "https://api.example/todos/1", m.Calls()[0].URL)
}

func TestFetch_AgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/todos/7" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"title":"done","completed":true}`))
	}))
	defer srv.Close()

	c := httpclient.New(srv.Client())

	ok := Fetch(context.Background(), c, srv.URL, 7)
	require.True(t, ok.OK())
	assert.True(t, ok.Data().Completed)

	missing := Fetch(context.Background(), c, srv.URL, 8)
	require.False(t, missing.OK())
	assert.EqualError(t, missing.Err(), "HTTP 404: Not Found")
}

func TestFetch_BadPayload(t *testing.T) {
	m := httpclient.NewMock()
	m.Respond(&httpclient.Response{Data: []byte(`<html>`), Status: 200})

	r := Fetch(context.Background(), m, "", 1)
	assert.False(t, r.OK())
}
