// Package app wires storage, the HTTP client and logging into the context
// every feature receives, and runs the page-load hooks.
package app

import (
	"context"
	"sync"

	"github.com/brogergvhs/scriptbox/internal/config"
	"github.com/brogergvhs/scriptbox/internal/features/counter"
	"github.com/brogergvhs/scriptbox/internal/features/headings"
	"github.com/brogergvhs/scriptbox/internal/httpclient"
	"github.com/brogergvhs/scriptbox/internal/storage"
	"github.com/brogergvhs/scriptbox/internal/ui"
	"github.com/brogergvhs/scriptbox/internal/util"
)

// Context is built once per run and handed to each feature.
type Context struct {
	Storage storage.Storage
	HTTP    httpclient.Client
	Log     *ui.Logger
	Config  *config.Config
}

// Runtime owns the resources behind a Context.
type Runtime struct {
	*Context
	DB *storage.DB
}

// Open creates the data directory, opens the store scope named by cfg and
// builds the shared HTTP client.
func Open(cfg *config.Config, log *ui.Logger) (*Runtime, error) {
	if err := util.EnsureParentDir(cfg.DataFile); err != nil {
		return nil, err
	}

	db, err := storage.OpenSQLite(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	log.Debugf("Opened store %s (scope %s)\n", cfg.DataFile, cfg.ScopeName())

	hc := httpclient.NewHTTPClient(httpclient.TransportOptions{
		Timeout:    cfg.Timeout,
		UserAgent:  cfg.UserAgent,
		Cookie:     cfg.Cookie,
		CookieFile: cfg.CookieFile,
		Cloudflare: cfg.Cloudflare,
		Log:        log,
	})

	return &Runtime{
		Context: &Context{
			Storage: db.Scope(cfg.ScopeName()),
			HTTP:    httpclient.New(hc),
			Log:     log,
			Config:  cfg,
		},
		DB: db,
	}, nil
}

func (r *Runtime) Close() error {
	return r.DB.Close()
}

// Initialize is the page-load entry point: it reports the counter the
// widget would show and captures the page's first heading.
func Initialize(ctx context.Context, c *Context, pageURL string) (headings.Outcome, error) {
	c.Log.Infof("[Counter] %s\n", counter.FormatDisplay(counter.Get(c.Storage)))

	out, err := headings.CapturePage(ctx, c.Storage, c.HTTP, c.Log, pageURL)
	if err != nil {
		return out, err
	}

	c.Log.Infof("[scriptbox] Initialized\n")
	return out, nil
}

// CaptureAll runs the capture hook for every URL with at most workers
// pages in flight. Results are returned in input order. URLs not yet
// handed to a worker when ctx is cancelled are skipped and left as zero
// Outcomes; pages already fetched still have their headings saved.
func CaptureAll(ctx context.Context, c *Context, urls []string, workers int, progress *ui.ProgressHandle) ([]headings.Outcome, *ui.CaptureStats) {
	stats := &ui.CaptureStats{}
	outcomes := make([]headings.Outcome, len(urls))

	if workers < 1 {
		workers = 1
	}
	if workers > len(urls) && len(urls) > 0 {
		workers = len(urls)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			u := urls[i]

			out, err := headings.CapturePage(ctx, c.Storage, c.HTTP, c.Log, u)
			outcomes[i] = out

			switch {
			case err != nil:
				c.Log.Errorf("Capture %s failed: %v\n", u, err)
				stats.Failed.Add(1)
			case out.Found:
				stats.Saved.Add(1)
			default:
				stats.Missing.Add(1)
			}

			if progress != nil {
				progress.Step(out.Found)
			}
		}
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}

feed:
	for i := range urls {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	if progress != nil {
		progress.MarkDone()
	}

	return outcomes, stats
}
