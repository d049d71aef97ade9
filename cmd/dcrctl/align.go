package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

func newAlignCommand(opts *RootOptions) *cobra.Command {
	var (
		depthLimit int
		pruning    bool
	)

	cmd := &cobra.Command{
		Use:   "align <trace.json>",
		Short: "Compute a minimum-cost alignment of a trace against the graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGraph(opts); err != nil {
				return err
			}
			g, err := loadGraph(opts.Graph)
			if err != nil {
				return err
			}
			trace, err := loadTrace(args[0])
			if err != nil {
				return err
			}

			alignment := dcr.Align(g, trace, dcr.UnitCostFunc, dcr.AlignOptions{
				DepthLimit: depthLimit,
				Pruning:    pruning,
				Logger:     opts.Logger,
			})
			return render(cmd, opts, alignment, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "cost: %v\ntrace: %v\n", alignment.Cost, alignment.Trace)
			})
		},
	}

	cmd.Flags().IntVar(&depthLimit, "depth-limit", 0, "cap the number of moves the search may take (0 means unbounded)")
	cmd.Flags().BoolVar(&pruning, "pruning", true, "enable the reachability oracle while no finite bound has been found")
	return cmd
}
