package dcr

// ReplayTrace reports whether trace corresponds to some accepting run of g
// (§4.2). It recurses with marking-snapshot backtracking: an unknown
// activity is silently skipped (the open-world principle — §7, §9), and a
// known activity is tried against every matching, enabled event in turn,
// the results OR'd together. The search is free to short-circuit on the
// first accepting branch; the reference semantics is a disjunction, not an
// enumeration (§4.2).
func ReplayTrace(g *Graph, trace RoleTrace) bool {
	if len(trace) == 0 {
		return IsAccepting(g)
	}

	step := trace[0]
	rest := trace[1:]

	candidates := candidatesForActivity(g, step.Activity)
	if len(candidates) == 0 {
		// Open-world principle (§4.2, §7, §9): an activity unknown
		// anywhere in g's sub-process tree is ignored, not rejected.
		return ReplayTrace(g, rest)
	}

	for _, c := range candidates {
		if c.scope.RoleMap[c.event] != step.Role {
			continue
		}
		if !IsEnabled(c.scope, c.event) {
			continue
		}

		accepted := withScratchMarking(c.scope, func(*Marking) bool {
			Execute(c.scope, c.event)
			return ReplayTrace(g, rest)
		})
		if accepted {
			return true
		}
	}

	return false
}
