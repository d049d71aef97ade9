package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

func mustBatchTestGraph(t *testing.T) *dcr.Graph {
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
	return g
}

func TestReplayAllPreservesOrderAndIsolatesGraphs(t *testing.T) {
	g := mustBatchTestGraph(t)
	jobs := []ReplayJob{
		{Graph: g, Trace: dcr.RoleTrace{{Activity: "A"}, {Activity: "B"}}},
		{Graph: g, Trace: dcr.RoleTrace{{Activity: "B"}}},
		{Graph: g, Trace: dcr.RoleTrace{{Activity: "A"}}},
	}

	results := ReplayAll(context.Background(), jobs, 2)

	require.Len(t, results, 3)
	assert.True(t, results[0].Accepted)
	assert.False(t, results[1].Accepted)
	assert.True(t, results[2].Accepted)

	// The shared graph's own marking must be untouched by any worker.
	assert.False(t, g.Marking.Executed.Has("A"))
	assert.False(t, g.Marking.Executed.Has("B"))
}

func TestQuantifyAllPreservesOrder(t *testing.T) {
	g := mustBatchTestGraph(t)
	jobs := []QuantifyJob{
		{Graph: g, Trace: dcr.RoleTrace{{Activity: "B"}}},
		{Graph: g, Trace: dcr.RoleTrace{{Activity: "A"}, {Activity: "B"}}},
	}

	results := QuantifyAll(context.Background(), jobs, 0)

	require.Len(t, results, 2)
	assert.Equal(t, float64(1), results[0].Result.TotalViolations)
	assert.Zero(t, results[1].Result.TotalViolations)
}

func TestReplayAllHonoursCancellation(t *testing.T) {
	g := mustBatchTestGraph(t)
	jobs := make([]ReplayJob, 50)
	for i := range jobs {
		jobs[i] = ReplayJob{Graph: g, Trace: dcr.RoleTrace{{Activity: "A"}}}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ReplayAll(ctx, jobs, 4)
	assert.Len(t, results, len(jobs))
}
