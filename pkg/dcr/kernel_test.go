package dcr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTestGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(
		NewEventSet("A", "B", "C"),
		map[Event]Label{"A": "A", "B": "B", "C": "C"},
		map[Event]Role{"A": "r", "B": "r", "C": "r"},
		EventMap{"B": NewEventSet("A")},
		nil,
		EventMap{"A": NewEventSet("B")},
		nil,
		nil,
		NewMarking(nil, NewEventSet("A", "B", "C"), nil),
		nil,
	)
	require.NoError(t, err)
	return g
}

func TestIsEnabledMatchesGetEnabled(t *testing.T) {
	g := mustTestGraph(t)
	enabled := make(map[Event]bool)
	for _, e := range GetEnabled(g) {
		enabled[e] = true
	}
	for _, e := range g.Events.Sorted() {
		assert.Equal(t, enabled[e], IsEnabled(g, e), "event %s", e)
	}
}

func TestExecutePreservesSubsetInvariant(t *testing.T) {
	g := mustTestGraph(t)
	Execute(g, "A")
	assert.Subset(t, mapKeys(g.Events), mapKeys(g.Marking.Executed))
	assert.Subset(t, mapKeys(g.Events), mapKeys(g.Marking.Included))
	assert.Subset(t, mapKeys(g.Events), mapKeys(g.Marking.Pending))
}

func TestExecuteSetsPendingFromResponse(t *testing.T) {
	g := mustTestGraph(t)
	Execute(g, "A")
	assert.False(t, g.Marking.Pending.Has("A"))
	assert.True(t, g.Marking.Pending.Has("B"))
}

func TestExecuteAppliesExcludesBeforeIncludes(t *testing.T) {
	g, err := NewGraph(
		NewEventSet("A"),
		map[Event]Label{"A": "A"},
		map[Event]Role{"A": "r"},
		nil, nil, nil,
		EventMap{"A": NewEventSet("A")},
		EventMap{"A": NewEventSet("A")},
		NewMarking(nil, NewEventSet("A"), nil),
		nil,
	)
	require.NoError(t, err)
	Execute(g, "A")
	assert.True(t, g.Marking.Included.Has("A"))
}

func TestWithScratchMarkingRestoresOnNormalReturn(t *testing.T) {
	g := mustTestGraph(t)
	before := g.Marking.Clone()

	result := withScratchMarking(g, func(scratch *Marking) int {
		Execute(g, "A")
		return 42
	})

	assert.Equal(t, 42, result)
	assert.True(t, before.Equal(g.Marking))
}

func TestWithScratchMarkingRestoresOnPanic(t *testing.T) {
	g := mustTestGraph(t)
	before := g.Marking.Clone()

	func() {
		defer func() { recover() }()
		withScratchMarking(g, func(scratch *Marking) int {
			Execute(g, "A")
			panic("boom")
		})
	}()

	assert.True(t, before.Equal(g.Marking))
}

func TestReplayTraceEmptyMatchesIsAccepting(t *testing.T) {
	g := mustTestGraph(t)
	assert.Equal(t, IsAccepting(g), ReplayTrace(g, nil))

	Execute(g, "A")
	assert.Equal(t, IsAccepting(g), ReplayTrace(g, nil))
}

func TestReplayTraceAcceptedImpliesNoViolations(t *testing.T) {
	g := mustTestGraph(t)
	trace := RoleTrace{{Role: "r", Activity: "A"}, {Role: "r", Activity: "B"}}
	require.True(t, ReplayTrace(g, trace))

	result := QuantifyViolations(g, trace)
	assert.Zero(t, result.TotalViolations)
}

func mapKeys(s EventSet) []any {
	out := make([]any, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	return out
}
