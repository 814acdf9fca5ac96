package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/scriptbox/internal/app"
	"github.com/brogergvhs/scriptbox/internal/config"
	"github.com/brogergvhs/scriptbox/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagDataFile     string
	flagScript       string
	flagSite         string
)

var rootCmd = &cobra.Command{
	Use:           "scriptbox",
	Short:         "Userscript-style features with a persistent per-site key/value store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVar(&flagDataFile, "data-file", "", "path to the SQLite store")
	rootCmd.PersistentFlags().StringVar(&flagScript, "script", "", "script name half of the storage scope")
	rootCmd.PersistentFlags().StringVar(&flagSite, "site", "", "site half of the storage scope")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func baseOptions() config.Options {
	return config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		DataFile:     flagDataFile,
		Script:       flagScript,
		Site:         flagSite,
	}
}

// openRuntime loads the merged config and opens the store it points at.
func openRuntime(opts config.Options) (*app.Runtime, error) {
	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	log := ui.NewLogger(cfg.Debug)
	log.Debugf("Config: %s\n", used)

	return app.Open(cfg, log)
}
