package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

// RootOptions holds the flags every dcrctl subcommand shares: which graph
// file to operate on and how to render results.
type RootOptions struct {
	Graph   string
	Format  string
	Verbose bool
	Logger  *zerolog.Logger
}

// NewRootCommand assembles the dcrctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	root := &cobra.Command{
		Use:           "dcrctl",
		Short:         "Inspect and replay DCR graphs",
		Long:          "dcrctl loads a canonical-JSON DCR graph and drives it through the enabledness, execution, replay, conformance, and alignment operations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Verbose {
				logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
				opts.Logger = &logger
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.Graph, "graph", "g", "", "path to a canonical-JSON graph file (required)")
	root.PersistentFlags().StringVarP(&opts.Format, "format", "f", "text", "output format: text or json")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log each move of the align search to stderr")

	root.AddCommand(
		newEnabledCommand(opts),
		newExecuteCommand(opts),
		newReplayCommand(opts),
		newQuantifyCommand(opts),
		newAlignCommand(opts),
		newNewEventCommand(),
	)

	return root
}

// requireGraph fails fast when -g/--graph was not given, the way
// cmd.MarkFlagRequired does for a single flag, except enforced at Run time
// so subcommands can decide whether they need a graph at all.
func requireGraph(opts *RootOptions) error {
	if opts.Graph == "" {
		return &ExitError{Code: ExitUsageError, Err: fmt.Errorf("--graph is required")}
	}
	return nil
}

func loadGraph(path string) (*dcr.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read graph file", err)
	}
	var g dcr.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, WrapExitError(ExitGraphRejected, "failed to decode graph", err)
	}
	return &g, nil
}
