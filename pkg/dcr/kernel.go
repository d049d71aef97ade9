package dcr

// IsEnabled reports whether e can fire in g's current marking (§4.1):
//
//  1. e is included.
//  2. every condition of e is either not included, or already executed.
//  3. every milestone of e is either not included, or not pending.
//
// Callers evaluating an event scoped to a sub-process must pass the
// sub-process's own *Graph (and therefore its own Marking) — IsEnabled
// always checks against g.Marking, the scope parameter is simply "which
// graph you call this with".
func IsEnabled(g *Graph, e Event) bool {
	if !g.Marking.Included.Has(e) {
		return false
	}

	for _, c := range g.ConditionsFor.Get(e).Sorted() {
		if g.Marking.Included.Has(c) && !g.Marking.Executed.Has(c) {
			return false
		}
	}

	for _, m := range g.MilestonesFor.Get(e).Sorted() {
		if g.Marking.Included.Has(m) && g.Marking.Pending.Has(m) {
			return false
		}
	}

	return true
}

// GetEnabled returns every event enabled in g's current marking, in stable
// ascending order.
func GetEnabled(g *Graph) []Event {
	var enabled []Event
	for _, e := range g.Events.Sorted() {
		if IsEnabled(g, e) {
			enabled = append(enabled, e)
		}
	}
	return enabled
}

// Execute fires e against g's current marking (§4.1). The five steps run in
// the order the spec fixes, so that for e ∈ excludesTo[e] ∩ includesTo[e]
// the include step runs last and wins:
//
//  1. if e conditions anything, mark it executed (the conditions-set
//     optimisation: an event nothing ever conditions on never needs to be
//     tracked as executed).
//  2. remove e from pending.
//  3. add every response target to pending.
//  4. remove every exclude target from included.
//  5. add every include target to included.
func Execute(g *Graph, e Event) {
	m := g.Marking

	if g.conditions.Has(e) {
		m.Executed.Add(e)
	}

	m.Pending.Remove(e)

	for _, r := range g.ResponseTo.Get(e).Sorted() {
		m.Pending.Add(r)
	}

	for _, x := range g.ExcludesTo.Get(e).Sorted() {
		m.Included.Remove(x)
	}

	for _, i := range g.IncludesTo.Get(e).Sorted() {
		m.Included.Add(i)
	}
}

// IsAccepting reports whether g's current marking has no included event
// still pending (§4.1, §3 "Accepting marking").
func IsAccepting(g *Graph) bool {
	for e := range g.Marking.Pending {
		if g.Marking.Included.Has(e) {
			return false
		}
	}
	return true
}
