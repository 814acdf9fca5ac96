package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/brogergvhs/scriptbox/internal/app"
	"github.com/brogergvhs/scriptbox/internal/config"
	"github.com/brogergvhs/scriptbox/internal/features/headings"
	"github.com/brogergvhs/scriptbox/internal/ui"
	"github.com/brogergvhs/scriptbox/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagCaptureFile  string
	flagCaptureStdin bool
	flagCaptureURL   string
	flagWorkers      int
	flagTimeout      time.Duration
	flagUserAgent    string
	flagCookie       string
	flagCookieFile   string
	flagCloudflare   bool
)

func init() {
	captureCmd := &cobra.Command{
		Use:   "capture [url...]",
		Short: "Capture the first <h1> of each page into the heading log",
		RunE:  runCapture,
	}

	captureCmd.Flags().StringVar(&flagCaptureFile, "file", "", "read the document from a local HTML file")
	captureCmd.Flags().BoolVar(&flagCaptureStdin, "stdin", false, "read the document from standard input")
	captureCmd.Flags().StringVar(&flagCaptureURL, "url", "", "URL to record for --file/--stdin documents")
	captureCmd.Flags().IntVar(&flagWorkers, "workers", 0, "pages fetched in parallel")
	addHTTPFlags(captureCmd)

	visitCmd := &cobra.Command{
		Use:   "visit <url>",
		Short: "Run the page-load hooks against a single page",
		Args:  cobra.ExactArgs(1),
		RunE:  runVisit,
	}
	addHTTPFlags(visitCmd)

	rootCmd.AddCommand(captureCmd, visitCmd)
}

func addHTTPFlags(c *cobra.Command) {
	c.Flags().DurationVar(&flagTimeout, "timeout", 0, "HTTP timeout (e.g. 10s)")
	c.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	c.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	c.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	c.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "route requests through the Cloudflare bypass transport")
}

func runCapture(cmd *cobra.Command, args []string) error {
	opts := baseOptions()
	opts.Workers = flagWorkers
	opts.Timeout = flagTimeout
	opts.UserAgent = flagUserAgent
	opts.Cookie = flagCookie
	opts.CookieFile = flagCookieFile
	opts.Cloudflare = flagCloudflare

	if flagCaptureFile != "" || flagCaptureStdin {
		if len(args) > 0 {
			return fmt.Errorf("URLs cannot be combined with --file or --stdin")
		}
		return captureLocal(cmd, opts)
	}
	if len(args) == 0 {
		return fmt.Errorf("no pages given: pass URLs, --file or --stdin")
	}

	rt, err := openRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := util.WithInterrupt(cmd.Context())
	defer stop()

	pm := ui.NewProgressManager(cmd.ErrOrStderr())
	bar := pm.Register("capture", len(args))

	start := time.Now()
	outcomes, stats := app.CaptureAll(ctx, rt.Context, args, rt.Config.Workers, bar)
	pm.Close()

	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		if o.Found {
			fmt.Fprintf(out, "%s\n    %s\n", o.Text, o.URL)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Capture Summary:")
	fmt.Fprintf(out, "Saved:    %d\n", stats.Saved.Load())
	fmt.Fprintf(out, "No h1:    %d\n", stats.Missing.Load())
	fmt.Fprintf(out, "Failed:   %d\n", stats.Failed.Load())
	skipped := int64(len(args)) - stats.Saved.Load() - stats.Missing.Load() - stats.Failed.Load()
	if skipped > 0 {
		fmt.Fprintf(out, "Skipped:  %d\n", skipped)
	}
	fmt.Fprintf(out, "Stored:   %d\n", len(headings.List(rt.Storage)))
	fmt.Fprintf(out, "Time:     %s\n", time.Since(start).Round(time.Millisecond))

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("capture interrupted: %w", err)
	}
	if stats.Failed.Load() > 0 {
		return fmt.Errorf("%d of %d pages failed", stats.Failed.Load(), len(args))
	}
	return nil
}

func captureLocal(cmd *cobra.Command, opts config.Options) error {
	var (
		doc []byte
		err error
	)
	if flagCaptureStdin {
		doc, err = io.ReadAll(cmd.InOrStdin())
	} else {
		doc, err = os.ReadFile(flagCaptureFile)
	}
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	pageURL := flagCaptureURL
	if pageURL == "" && flagCaptureFile != "" {
		pageURL = "file://" + flagCaptureFile
	}

	rt, err := openRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	o, err := headings.CaptureDocument(rt.Storage, rt.Log, doc, pageURL)
	if err != nil {
		return err
	}
	if !o.Found {
		fmt.Fprintln(cmd.OutOrStdout(), "No h1 found.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), o.Text)
	return nil
}

func runVisit(cmd *cobra.Command, args []string) error {
	opts := baseOptions()
	opts.Timeout = flagTimeout
	opts.UserAgent = flagUserAgent
	opts.Cookie = flagCookie
	opts.CookieFile = flagCookieFile
	opts.Cloudflare = flagCloudflare

	rt, err := openRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	o, err := app.Initialize(cmd.Context(), rt.Context, args[0])
	if err != nil {
		return err
	}

	return headings.WriteTable(cmd.OutOrStdout(), o.All)
}
