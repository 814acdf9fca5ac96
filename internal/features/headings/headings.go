// Package headings captures the first <h1> of visited pages into an
// append-only log kept in storage.
package headings

import (
	"encoding/json"
	"fmt"

	"github.com/brogergvhs/scriptbox/internal/clock"
	"github.com/brogergvhs/scriptbox/internal/storage"
)

const StorageKey = "captured_h1s"

type Captured struct {
	Text       string `json:"text"`
	URL        string `json:"url"`
	CapturedAt string `json:"capturedAt"`
}

// Save appends a capture stamped with the current time.
func Save(s storage.Storage, text, url string) error {
	entry := Captured{Text: text, URL: url, CapturedAt: clock.Stamp()}

	err := storage.Update(s, StorageKey, func(cur json.RawMessage, ok bool) (any, error) {
		var list []Captured
		if ok && json.Unmarshal(cur, &list) != nil {
			list = nil
		}
		return append(list, entry), nil
	})
	if err != nil {
		return fmt.Errorf("save heading: %w", err)
	}

	return nil
}

// List returns every stored capture in insertion order.
func List(s storage.Storage) []Captured {
	list := storage.GetOr[[]Captured](s, StorageKey, nil)
	if list == nil {
		return []Captured{}
	}
	return list
}
