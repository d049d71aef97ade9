package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

func newEnabledCommand(opts *RootOptions) *cobra.Command {
	var event string

	cmd := &cobra.Command{
		Use:   "enabled",
		Short: "List enabled events, or test a single one",
		Long: `Without --event, prints every event enabled in the graph's current
marking. With --event, reports whether that one event is enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGraph(opts); err != nil {
				return err
			}
			g, err := loadGraph(opts.Graph)
			if err != nil {
				return err
			}

			if event != "" {
				result := map[string]any{"event": event, "enabled": dcr.IsEnabled(g, dcr.Event(event))}
				return render(cmd, opts, result, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s enabled: %v\n", event, result["enabled"])
				})
			}

			enabled := dcr.GetEnabled(g)
			return render(cmd, opts, map[string]any{"enabled": enabled}, func() {
				for _, e := range enabled {
					fmt.Fprintln(cmd.OutOrStdout(), e)
				}
			})
		},
	}

	cmd.Flags().StringVar(&event, "event", "", "check a single event instead of listing all enabled events")
	return cmd
}
