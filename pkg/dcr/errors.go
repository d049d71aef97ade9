package dcr

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownEvent is wrapped into every per-violation message GraphError
// joins together; callers can test for it with errors.Is.
var ErrUnknownEvent = errors.New("dcr: relation references event not in graph")

// ErrMalformedCost is returned when an Alignment's "cost" field is neither a
// JSON number nor the literal string "Infinity".
var ErrMalformedCost = errors.New("dcr: alignment cost must be a number or \"Infinity\"")

// GraphError reports every structural inconsistency found while
// constructing a Graph: a relation, the role map, the label map, or the
// marking referencing an event that is not a member of Graph.Events (§3
// invariants, §7 "Graph structural inconsistency: ... implementations must
// detect at graph construction time and refuse to proceed").
type GraphError struct {
	Violations []error
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("dcr: invalid graph (%d violation(s)): %v", len(e.Violations), errors.Join(e.Violations...))
}

// Unwrap exposes the joined violations to errors.Is/errors.As.
func (e *GraphError) Unwrap() []error {
	return e.Violations
}

// validate checks every invariant in spec §3: every event referenced from
// any relation, role map, label map, or marking must be a member of
// g.Events.
func (g *Graph) validate() error {
	var violations []error

	checkEvent := func(context string, e Event) {
		if !g.Events.Has(e) {
			violations = append(violations, fmt.Errorf("%s: %w: %q", context, ErrUnknownEvent, e))
		}
	}

	checkRelation := func(name string, rel EventMap) {
		for src := range rel {
			checkEvent(fmt.Sprintf("%s source", name), src)
		}
		for src, targets := range rel {
			for t := range targets {
				checkEvent(fmt.Sprintf("%s[%s] target", name, src), t)
			}
		}
	}

	checkRelation("conditionsFor", g.ConditionsFor)
	checkRelation("milestonesFor", g.MilestonesFor)
	checkRelation("responseTo", g.ResponseTo)
	checkRelation("excludesTo", g.ExcludesTo)
	checkRelation("includesTo", g.IncludesTo)

	for e := range g.LabelMap {
		checkEvent("labelMap", e)
	}
	for e := range g.RoleMap {
		checkEvent("roleMap", e)
	}

	if g.Marking != nil {
		for e := range g.Marking.Executed {
			checkEvent("marking.executed", e)
		}
		for e := range g.Marking.Included {
			checkEvent("marking.included", e)
		}
		for e := range g.Marking.Pending {
			checkEvent("marking.pending", e)
		}
	}

	if len(violations) == 0 {
		return nil
	}

	sort.Slice(violations, func(i, j int) bool { return violations[i].Error() < violations[j].Error() })
	return &GraphError{Violations: violations}
}
