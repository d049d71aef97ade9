package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

func newExecuteCommand(opts *RootOptions) *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "execute <event>",
		Short: "Fire one event and print the resulting marking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGraph(opts); err != nil {
				return err
			}
			g, err := loadGraph(opts.Graph)
			if err != nil {
				return err
			}

			e := dcr.Event(args[0])
			if !g.Events.Has(e) {
				return WrapExitError(ExitCommandError, "unknown event", fmt.Errorf("%q", e))
			}
			if !dcr.IsEnabled(g, e) {
				return WrapExitError(ExitCommandError, "event is not enabled", fmt.Errorf("%q", e))
			}
			dcr.Execute(g, e)

			if save != "" {
				data, err := json.MarshalIndent(g, "", "  ")
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to encode graph", err)
				}
				if err := os.WriteFile(save, data, 0o644); err != nil {
					return WrapExitError(ExitCommandError, "failed to write graph", err)
				}
			}

			return render(cmd, opts, g.Marking, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "executed: %v\nincluded: %v\npending:  %v\n",
					g.Marking.Executed.Sorted(), g.Marking.Included.Sorted(), g.Marking.Pending.Sorted())
			})
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "write the post-execution graph to this path instead of discarding it")
	return cmd
}
