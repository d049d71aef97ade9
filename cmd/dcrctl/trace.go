package main

import (
	"encoding/json"
	"os"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

// loadRoleTrace reads a JSON array of {"Role":"...","Activity":"..."}
// objects — dcrctl's own on-disk shape for a dcr.RoleTrace, separate from
// the canonical graph/alignment mapping.
func loadRoleTrace(path string) (dcr.RoleTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read trace file", err)
	}
	var trace dcr.RoleTrace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to decode trace file", err)
	}
	return trace, nil
}

// loadTrace reads a JSON array of activity labels for Align, which is
// role-agnostic.
func loadTrace(path string) (dcr.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read trace file", err)
	}
	var trace dcr.Trace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to decode trace file", err)
	}
	return trace, nil
}
