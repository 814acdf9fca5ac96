// Package todo is the example consumer of the HTTP client: it looks up a
// single todo item by numeric id.
package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brogergvhs/scriptbox/internal/httpclient"
	"github.com/brogergvhs/scriptbox/internal/result"
)

const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

var ErrInvalidID = errors.New("ID must be positive")

type Item struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Fetch never returns a Go error; failures are carried in the result.
func Fetch(ctx context.Context, c httpclient.Client, baseURL string, id int) result.Result[Item] {
	if id <= 0 {
		return result.Err[Item](ErrInvalidID)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	url := fmt.Sprintf("%s/todos/%d", strings.TrimRight(baseURL, "/"), id)
	resp, err := c.Get(ctx, url, nil)
	if err != nil {
		return result.Err[Item](err)
	}

	var item Item
	if err := resp.JSON(&item); err != nil {
		return result.Err[Item](err)
	}

	return result.Ok(item)
}
