package httpclient

import (
	"context"
	"net/http"
	"sync"
)

type Call struct {
	Method  string
	URL     string
	Body    any
	Options *Options
}

// Mock is a Client that records every call and answers with a canned
// response or error. By default it returns an empty 200 JSON object.
type Mock struct {
	mu    sync.Mutex
	calls []Call
	resp  *Response
	err   error
}

func NewMock() *Mock {
	return &Mock{}
}

// Respond sets the response returned by every subsequent call.
func (m *Mock) Respond(r *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resp = r
}

// Fail makes every subsequent call return err.
func (m *Mock) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

func (m *Mock) Get(_ context.Context, url string, opts *Options) (*Response, error) {
	return m.record(http.MethodGet, url, nil, opts)
}

func (m *Mock) Post(_ context.Context, url string, body any, opts *Options) (*Response, error) {
	return m.record(http.MethodPost, url, body, opts)
}

func (m *Mock) Put(_ context.Context, url string, body any, opts *Options) (*Response, error) {
	return m.record(http.MethodPut, url, body, opts)
}

func (m *Mock) Delete(_ context.Context, url string, opts *Options) (*Response, error) {
	return m.record(http.MethodDelete, url, nil, opts)
}

func (m *Mock) record(method, url string, body any, opts *Options) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Method: method, URL: url, Body: body, Options: opts})
	if m.err != nil {
		return nil, m.err
	}
	if m.resp != nil {
		return m.resp, nil
	}

	return &Response{
		Data:       []byte("{}"),
		Status:     http.StatusOK,
		StatusText: "OK",
		Headers:    map[string]string{},
	}, nil
}
