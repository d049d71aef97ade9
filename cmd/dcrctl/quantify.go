package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

func newQuantifyCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quantify <trace.json>",
		Short: "Score a role-trace's violations against the graph",
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

			result := dcr.QuantifyViolations(g, trace)
			return render(cmd, opts, result, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "total violations: %v\n", result.TotalViolations)
			})
		},
	}
	return cmd
}
