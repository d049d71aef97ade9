package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

func newReplayCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace.json>",
		Short: "Report whether a role-trace corresponds to an accepting run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGraph(opts); err != nil {
				return err
			}
			g, err := loadGraph(opts.Graph)
			if err != nil {
				return err
			}
			trace, err := loadRoleTrace(args[0])
			if err != nil {
				return err
			}

			accepted := dcr.ReplayTrace(g, trace)
			return render(cmd, opts, map[string]any{"accepted": accepted}, func() {
				fmt.Fprintln(cmd.OutOrStdout(), accepted)
			})
		},
	}
	return cmd
}
