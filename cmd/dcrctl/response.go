package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// CLIResponse is the envelope every dcrctl subcommand writes to stdout in
// -format json mode: a status tag plus the command's own result payload.
type CLIResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Status: "ok", Data: data})
}

// render dispatches to writeJSON or textFn depending on opts.Format, so each
// subcommand writes its text rendering exactly once and gets JSON for free.
func render(cmd *cobra.Command, opts *RootOptions, data any, textFn func()) error {
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), data)
	}
	textFn()
	return nil
}
