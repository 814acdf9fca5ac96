package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/scriptbox/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path := config.ConfigPathByLabel(config.DefaultLabel)

		if _, err := os.Stat(path); err != nil {
			fmt.Fprintln(out, "Default configuration:")
			config.DefaultConfig().Print(out)
			fmt.Fprintln(out)

			if !confirm(cmd, fmt.Sprintf("Create Default config at %s?", path)) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		path, err := config.InitDefaultConfig()
		if errors.Is(err, os.ErrExist) {
			fmt.Fprintln(out, "Configuration already exists at:")
			fmt.Fprintln(out, "  ", path)
			fmt.Fprintln(out, "Use `scriptbox config reset` to recreate it.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Fprintln(out, "Config created at:", path)
		fmt.Fprintln(out, "This config is now active (label: Default).")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
