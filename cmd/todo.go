package cmd

import (
	"fmt"
	"strconv"

	"github.com/brogergvhs/scriptbox/internal/app"
	"github.com/brogergvhs/scriptbox/internal/features/todo"

	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo <id>",
	Short: "Fetch an example todo item by numeric id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("id %q is not a number", args[0])
		}

		return withRuntime(func(rt *app.Runtime) error {
			r := todo.Fetch(cmd.Context(), rt.HTTP, rt.Config.TodoBaseURL, id)
			if !r.OK() {
				return r.Err()
			}

			item := r.Data()
			mark := " "
			if item.Completed {
				mark = "x"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] #%d %s\n", mark, item.ID, item.Title)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todoCmd)
}
