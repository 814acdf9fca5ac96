package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brogergvhs/scriptbox/internal/app"

	"github.com/spf13/cobra"
)

var flagForceClear bool

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and edit the raw key/value store for the current scope",
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keys in the current scope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *app.Runtime) error {
			keys, err := rt.Storage.List()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the JSON value stored under a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *app.Runtime) error {
			raw, ok := rt.Storage.Get(args[0])
			if !ok {
				return fmt.Errorf("key %q not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		})
	},
}

var storeSetCmd = &cobra.Command{
	Use:   "set <key> <json>",
	Short: "Store a JSON value under a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var v any
		if err := json.Unmarshal([]byte(args[1]), &v); err != nil {
			return fmt.Errorf("value is not valid JSON: %w", err)
		}

		return withRuntime(func(rt *app.Runtime) error {
			return rt.Storage.Set(args[0], v)
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a key (no error if absent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *app.Runtime) error {
			return rt.Storage.Delete(args[0])
		})
	},
}

var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every key in the current scope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *app.Runtime) error {
			if !flagForceClear && !confirm(cmd, fmt.Sprintf("Clear every key in %s?", rt.Config.ScopeName())) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			return rt.Storage.Clear()
		})
	},
}

var storeScopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "List every scope with stored keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *app.Runtime) error {
			scopes, err := rt.DB.Scopes()
			if err != nil {
				return err
			}
			current := rt.Config.ScopeName()
			for _, s := range scopes {
				mark := ""
				if s == current {
					mark = "  (current)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), s+mark)
			}
			return nil
		})
	},
}

func init() {
	storeClearCmd.Flags().BoolVar(&flagForceClear, "yes", false, "do not ask for confirmation")

	storeCmd.AddCommand(storeListCmd, storeGetCmd, storeSetCmd, storeDeleteCmd, storeClearCmd, storeScopesCmd)
	rootCmd.AddCommand(storeCmd)
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)

	var resp string
	_, _ = fmt.Fscanln(cmd.InOrStdin(), &resp)
	resp = strings.TrimSpace(strings.ToLower(resp))

	return resp == "y" || resp == "yes"
}
