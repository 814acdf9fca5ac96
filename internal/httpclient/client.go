// Package httpclient is the request adapter features use for cross-origin
// calls: one request per call, no retries, and every non-2xx status or
// transport failure surfaced as an error.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var ErrTimeout = errors.New("request timed out")

type Options struct {
	Headers map[string]string
	Timeout time.Duration
}

type Response struct {
	Data       []byte
	Status     int
	StatusText string
	Headers    map[string]string
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Status     int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.StatusText)
}

type Client interface {
	Get(ctx context.Context, url string, opts *Options) (*Response, error)
	Post(ctx context.Context, url string, body any, opts *Options) (*Response, error)
	Put(ctx context.Context, url string, body any, opts *Options) (*Response, error)
	Delete(ctx context.Context, url string, opts *Options) (*Response, error)
}

// HTTP implements Client over a *http.Client.
type HTTP struct {
	c *http.Client
}

func New(c *http.Client) *HTTP {
	if c == nil {
		c = http.DefaultClient
	}
	return &HTTP{c: c}
}

func (h *HTTP) Get(ctx context.Context, url string, opts *Options) (*Response, error) {
	return h.do(ctx, http.MethodGet, url, nil, opts)
}

func (h *HTTP) Post(ctx context.Context, url string, body any, opts *Options) (*Response, error) {
	return h.do(ctx, http.MethodPost, url, body, withJSONContentType(opts))
}

func (h *HTTP) Put(ctx context.Context, url string, body any, opts *Options) (*Response, error) {
	return h.do(ctx, http.MethodPut, url, body, withJSONContentType(opts))
}

func (h *HTTP) Delete(ctx context.Context, url string, opts *Options) (*Response, error) {
	return h.do(ctx, http.MethodDelete, url, nil, opts)
}

// withJSONContentType returns a copy of opts whose headers default
// Content-Type to application/json; caller headers win.
func withJSONContentType(opts *Options) *Options {
	out := &Options{Headers: map[string]string{"Content-Type": "application/json"}}
	if opts == nil {
		return out
	}

	out.Timeout = opts.Timeout
	for k, v := range opts.Headers {
		if strings.EqualFold(k, "Content-Type") {
			delete(out.Headers, "Content-Type")
		}
		out.Headers[k] = v
	}

	return out
}

func (h *HTTP) do(ctx context.Context, method, url string, body any, opts *Options) (*Response, error) {
	if opts == nil {
		opts = &Options{}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.c.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("read response: %w", err)
	}

	text := statusText(resp)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, StatusText: text}
	}

	return &Response{
		Data:       data,
		Status:     resp.StatusCode,
		StatusText: text,
		Headers:    flattenHeaders(resp.Header),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// statusText strips the numeric code from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}
