package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

func writeTempGraph(t *testing.T) string {
	t.Helper()
	g, err := dcr.NewGraph(
		dcr.NewEventSet("A", "B"),
		map[dcr.Event]dcr.Label{"A": "A", "B": "B"},
		map[dcr.Event]dcr.Role{"A": "", "B": ""},
		dcr.EventMap{"B": dcr.NewEventSet("A")},
		nil, nil, nil, nil,
		dcr.NewMarking(nil, dcr.NewEventSet("A", "B"), nil),
		nil,
	)
	require.NoError(t, err)

	data, err := json.Marshal(g)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEnabledCommandText(t *testing.T) {
	graphPath := writeTempGraph(t)

	out, err := runCLI(t, "enabled", "--graph", graphPath)
	require.NoError(t, err)
	assert.Equal(t, "A\n", out)
}

func TestEnabledCommandSingleEvent(t *testing.T) {
	graphPath := writeTempGraph(t)

	out, err := runCLI(t, "enabled", "--graph", graphPath, "--event", "B", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestExecuteCommandRejectsDisabledEvent(t *testing.T) {
	graphPath := writeTempGraph(t)

	_, err := runCLI(t, "execute", "--graph", graphPath, "B")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, exitCode(err))
}

func TestExecuteCommandFiresEnabledEvent(t *testing.T) {
	graphPath := writeTempGraph(t)

	out, err := runCLI(t, "execute", "--graph", graphPath, "A")
	require.NoError(t, err)
	assert.Contains(t, out, "executed: [A]")
}

func TestNewEventCommandPrintsRequestedCount(t *testing.T) {
	out, err := runCLI(t, "new-event", "--count", "3")
	require.NoError(t, err)
	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n")), 3)
}

func TestAlignCommandTraceSkip(t *testing.T) {
	graphPath := writeTempGraph(t)

	tracePath := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(tracePath, []byte(`["X","A"]`), 0o644))

	out, err := runCLI(t, "align", "--graph", graphPath, tracePath, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Cost  float64  `json:"cost"`
			Trace []string `json:"trace"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, float64(2), resp.Data.Cost)
	assert.Equal(t, []string{"A"}, resp.Data.Trace)
}
