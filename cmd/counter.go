package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/scriptbox/internal/app"
	"github.com/brogergvhs/scriptbox/internal/features/counter"
	"github.com/brogergvhs/scriptbox/internal/ui"

	"github.com/spf13/cobra"
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Show the stored counter",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *app.Runtime) error {
			fmt.Fprintln(cmd.OutOrStdout(), counter.FormatDisplay(counter.Get(rt.Storage)))
			return nil
		})
	},
}

func counterOpCmd(use, short string, op counter.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(rt *app.Runtime) error {
				before := counter.Get(rt.Storage)
				if !counter.IsValidOperation(op, before) {
					rt.Log.Infof("%s has no effect at %d\n", op, before)
				}

				value, err := ui.Press(rt.Storage, op)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), counter.FormatDisplay(value))
				return nil
			})
		},
	}
}

var counterWidgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Interactive counter with -, + and reset buttons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *app.Runtime) error {
			w := &ui.CounterWidget{
				Storage: rt.Storage,
				Stdin:   os.Stdin,
				Stdout:  os.Stdout,
				Log:     rt.Log,
			}
			return w.Run()
		})
	},
}

func init() {
	counterCmd.AddCommand(counterOpCmd("inc", "Increment the counter", counter.OpIncrement))
	counterCmd.AddCommand(counterOpCmd("dec", "Decrement the counter (floors at zero)", counter.OpDecrement))
	counterCmd.AddCommand(counterOpCmd("reset", "Remove the stored counter", counter.OpReset))
	counterCmd.AddCommand(counterWidgetCmd)

	rootCmd.AddCommand(counterCmd)
}

func withRuntime(fn func(rt *app.Runtime) error) error {
	rt, err := openRuntime(baseOptions())
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(rt)
}
