package headings

import (
	"bytes"
	"context"

	"github.com/brogergvhs/scriptbox/internal/httpclient"
	"github.com/brogergvhs/scriptbox/internal/storage"
)

type Logger interface {
	Infof(format string, args ...any)
}

// Outcome describes one run of the page-load hook.
type Outcome struct {
	URL   string
	Text  string
	Found bool
	All   []Captured
}

// CapturePage fetches pageURL and runs CaptureDocument on its body.
func CapturePage(ctx context.Context, s storage.Storage, c httpclient.Client, log Logger, pageURL string) (Outcome, error) {
	resp, err := c.Get(ctx, pageURL, &httpclient.Options{
		Headers: map[string]string{"Accept": "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"},
	})
	if err != nil {
		return Outcome{URL: pageURL}, err
	}

	return CaptureDocument(s, log, resp.Data, pageURL)
}

// CaptureDocument extracts the first heading from a full HTML document
// and appends it to the log when present.
func CaptureDocument(s storage.Storage, log Logger, doc []byte, pageURL string) (Outcome, error) {
	out := Outcome{URL: pageURL}

	body, err := BodyMarkup(bytes.NewReader(doc))
	if err != nil {
		return out, err
	}

	out.Text, out.Found = ExtractText(body)
	if out.Found {
		if err := Save(s, out.Text, pageURL); err != nil {
			return out, err
		}
		log.Infof("[H1 Capture] Saved: %q (%s)\n", out.Text, pageURL)
	} else {
		log.Infof("[H1 Capture] No h1 found on %s\n", pageURL)
	}

	out.All = List(s)
	log.Infof("[H1 Capture] %d stored h1s\n", len(out.All))

	return out, nil
}
