package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newNewEventCommand mints event identifiers for hand-authored graph files.
// Events only need to be unique within their graph (§3 "Event"), but a
// random UUID sidesteps naming collisions when a graph is assembled by
// merging pieces authored separately.
func newNewEventCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "new-event",
		Short: "Print fresh, collision-free event identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), uuid.NewString())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many identifiers to print")
	return cmd
}
