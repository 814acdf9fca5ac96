package cmd

import (
	"encoding/json"

	"github.com/brogergvhs/scriptbox/internal/app"
	"github.com/brogergvhs/scriptbox/internal/features/headings"

	"github.com/spf13/cobra"
)

var flagHeadingsJSON bool

var headingsCmd = &cobra.Command{
	Use:   "headings",
	Short: "List captured headings, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *app.Runtime) error {
			list := headings.List(rt.Storage)

			if flagHeadingsJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			return headings.WriteTable(cmd.OutOrStdout(), list)
		})
	},
}

func init() {
	headingsCmd.Flags().BoolVar(&flagHeadingsJSON, "json", false, "print the stored log as JSON")
	rootCmd.AddCommand(headingsCmd)
}
