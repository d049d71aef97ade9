package dcr

import (
	"fmt"
	"testing"
)

// ExampleReplayTrace_minimalResponse walks through the seed scenario from
// §8: a single response relation, where firing A obligates B.
func ExampleReplayTrace_minimalResponse() {
	g, err := NewGraph(
		NewEventSet("A", "B"),
		map[Event]Label{"A": "A", "B": "B"},
		map[Event]Role{"A": "", "B": ""},
		nil, nil,
		EventMap{"A": NewEventSet("B")},
		nil, nil,
		NewMarking(nil, NewEventSet("A", "B"), nil),
		nil,
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(ReplayTrace(g, RoleTrace{{Activity: "A"}}))
	fmt.Println(ReplayTrace(g, RoleTrace{{Activity: "A"}, {Activity: "B"}}))

	// Output:
	// false
	// true
}

// ExampleIsEnabled_condition walks through the condition seed scenario: B
// requires A to have executed first.
func ExampleIsEnabled_condition() {
	g, err := NewGraph(
		NewEventSet("A", "B"),
		map[Event]Label{"A": "A", "B": "B"},
		map[Event]Role{"A": "", "B": ""},
		EventMap{"B": NewEventSet("A")},
		nil, nil, nil, nil,
		NewMarking(nil, NewEventSet("A", "B"), nil),
		nil,
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(IsEnabled(g, "B"))
	Execute(g, "A")
	fmt.Println(IsEnabled(g, "B"))

	// Output:
	// false
	// true
}

// ExampleIsEnabled_milestone walks through the milestone seed scenario: A is
// blocked while B is both included and pending, until something removes B
// from included.
func ExampleIsEnabled_milestone() {
	g, err := NewGraph(
		NewEventSet("A", "B", "C"),
		map[Event]Label{"A": "A", "B": "B", "C": "C"},
		map[Event]Role{"A": "", "B": "", "C": ""},
		nil,
		EventMap{"A": NewEventSet("B")},
		nil,
		EventMap{"C": NewEventSet("B")},
		nil,
		NewMarking(nil, NewEventSet("A", "B", "C"), NewEventSet("B")),
		nil,
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(IsEnabled(g, "A"))
	Execute(g, "C")
	fmt.Println(IsEnabled(g, "A"))

	// Output:
	// false
	// true
}

// ExampleExecute_excludeIncludeSelfLoop walks through the self-loop seed
// scenario: A excludes and includes itself, and the include step runs last
// so A ends up included.
func ExampleExecute_excludeIncludeSelfLoop() {
	g, err := NewGraph(
		NewEventSet("A"),
		map[Event]Label{"A": "A"},
		map[Event]Role{"A": ""},
		nil, nil, nil,
		EventMap{"A": NewEventSet("A")},
		EventMap{"A": NewEventSet("A")},
		NewMarking(nil, NewEventSet("A"), nil),
		nil,
	)
	if err != nil {
		panic(err)
	}

	Execute(g, "A")
	fmt.Println(g.Marking.Included.Has("A"))

	// Output:
	// true
}

// ExampleAlign_traceSkip walks through the trace-skip seed scenario: the
// graph only has A, so the unknown label "X" must be dropped.
func ExampleAlign_traceSkip() {
	g, err := NewGraph(
		NewEventSet("A"),
		map[Event]Label{"A": "A"},
		map[Event]Role{"A": ""},
		nil, nil, nil, nil, nil,
		NewMarking(nil, NewEventSet("A"), nil),
		nil,
	)
	if err != nil {
		panic(err)
	}

	a := Align(g, Trace{"X", "A"}, UnitCostFunc, AlignOptions{})
	fmt.Println(a.Cost, a.Trace)

	// Output:
	// 2 [A]
}

// ExampleAlign_modelSkip walks through the model-skip seed scenario: B is
// owed (pending) but needs A to have executed first, so the aligner must
// fire A without consuming a trace token before it can consume B.
func ExampleAlign_modelSkip() {
	g, err := NewGraph(
		NewEventSet("A", "B"),
		map[Event]Label{"A": "A", "B": "B"},
		map[Event]Role{"A": "", "B": ""},
		EventMap{"B": NewEventSet("A")},
		nil, nil, nil, nil,
		NewMarking(nil, NewEventSet("A", "B"), NewEventSet("B")),
		nil,
	)
	if err != nil {
		panic(err)
	}

	a := Align(g, Trace{"B"}, UnitCostFunc, AlignOptions{})
	fmt.Println(a.Cost, a.Trace)

	// Output:
	// 2 [A B]
}

// ExampleQuantifyViolations_condition walks through the violation-counting
// seed scenario: B fires despite its condition A never having executed.
func ExampleQuantifyViolations_condition() {
	g, err := NewGraph(
		NewEventSet("A", "B"),
		map[Event]Label{"A": "A", "B": "B"},
		map[Event]Role{"A": "r", "B": "r"},
		EventMap{"B": NewEventSet("A")},
		nil, nil, nil, nil,
		NewMarking(nil, NewEventSet("A", "B"), nil),
		nil,
	)
	if err != nil {
		panic(err)
	}

	result := QuantifyViolations(g, RoleTrace{{Role: "r", Activity: "B"}})
	fmt.Println(result.TotalViolations, result.Violations.ConditionsFor.Get("B", "A"))

	// Output:
	// 1 1
}

// TestSeedScenarios runs every seed-scenario example directly, the way a
// reader expects testable examples to also be exercised as plain tests.
func TestSeedScenarios(t *testing.T) {
	ExampleReplayTrace_minimalResponse()
	ExampleIsEnabled_condition()
	ExampleIsEnabled_milestone()
	ExampleExecute_excludeIncludeSelfLoop()
	ExampleAlign_traceSkip()
	ExampleAlign_modelSkip()
	ExampleQuantifyViolations_condition()
}
