package dcr

// reachability answers the two questions the aligner's pruning step needs
// on a graph's *current* marking (§4.4.1): can an event still fire, and can
// it either fire or be excluded. It is an over-approximation: it may answer
// "reachable" when no run actually gets there, but it must never falsely
// prune a branch that does lead somewhere.
//
// context is the set of labels the caller is already in the middle of
// resolving; a sub-query that loops back to one of them (other than as the
// original query event) is refused rather than chased forever. excl, exec,
// and incl are the three in-progress sets threaded through the mutual
// recursion to guard against the relation graph's own cycles.
type reachability struct {
	g        *Graph
	context  map[Label]struct{}
	original Event
}

func newReachability(g *Graph, context map[Label]struct{}) *reachability {
	return &reachability{g: g, context: context}
}

// canBeExecuted reports whether some future execution sequence, avoiding
// re-firing any event whose label is in context, ends with e firing.
func (r *reachability) canBeExecuted(e Event) bool {
	r.original = e
	return r.canBeExecutedRecur(e, make(EventSet), make(EventSet), make(EventSet))
}

// canBeExecutedOrExcluded reports whether e can, in the future, either fire
// or be removed from included.
func (r *reachability) canBeExecutedOrExcluded(e Event) bool {
	r.original = e
	if r.canBeExecutedRecur(e, make(EventSet), make(EventSet), make(EventSet)) {
		return true
	}
	return r.canBeExcludedRecur(e, make(EventSet), make(EventSet), make(EventSet))
}

// canBeExecutedRecur implements the canBeExecuted sub-oracle (§4.4.1). Only
// r.original — the event the outermost query was asked about, fixed for the
// whole call tree — is exempt from the context-label cutoff. exec guards
// against revisiting an event already being chased by this same sub-oracle.
func (r *reachability) canBeExecutedRecur(e Event, excl, exec, incl EventSet) bool {
	if _, blocked := r.context[r.g.LabelMap[e]]; blocked && e != r.original {
		return false
	}
	if exec.Has(e) {
		return false
	}
	exec = exec.Clone()
	exec.Add(e)

	if IsEnabled(r.g, e) {
		return true
	}

	m := r.g.Marking
	for _, c := range r.g.ConditionsFor.Get(e).Sorted() {
		if m.Included.Has(c) && !m.Executed.Has(c) {
			if r.canBeExecutedRecur(c, excl, exec, incl) || r.canBeExcludedRecur(c, excl, exec, incl) {
				continue
			}
			return false
		}
	}

	for _, ms := range r.g.MilestonesFor.Get(e).Sorted() {
		if m.Included.Has(ms) && m.Pending.Has(ms) {
			if r.canBeExecutedRecur(ms, excl, exec, incl) || r.canBeExcludedRecur(ms, excl, exec, incl) {
				continue
			}
			return false
		}
	}

	if !m.Included.Has(e) {
		return r.canBeIncludedRecur(e, excl, exec, incl)
	}

	return true
}

// canBeExcludedRecur implements the canBeExcluded sub-oracle: e can be
// excluded if some x that excludes e can itself be executed.
func (r *reachability) canBeExcludedRecur(e Event, excl, exec, incl EventSet) bool {
	if excl.Has(e) {
		return false
	}
	excl = excl.Clone()
	excl.Add(e)

	for _, x := range r.g.excludesFor.Get(e).Sorted() {
		if r.canBeExecutedRecur(x, excl, exec, incl) {
			return true
		}
	}
	return false
}

// canBeIncludedRecur implements the canBeIncluded sub-oracle: e can be
// included if some i that includes e can itself be executed.
func (r *reachability) canBeIncludedRecur(e Event, excl, exec, incl EventSet) bool {
	if incl.Has(e) {
		return false
	}
	incl = incl.Clone()
	incl.Add(e)

	for _, i := range r.g.includesFor.Get(e).Sorted() {
		if r.canBeExecutedRecur(i, excl, exec, incl) {
			return true
		}
	}
	return false
}

// pruneBeforeConsume reports whether the current marking, together with the
// next trace label, can be pruned: true means no event that could produce
// this label can ever fire, so the branch is dead (§4.4.1 "Pruning
// application").
func pruneBeforeConsume(g *Graph, label Label, context map[Label]struct{}) bool {
	r := newReachability(g, context)
	for _, e := range g.LabelMapInv[label].Sorted() {
		if r.canBeExecuted(e) {
			return false
		}
	}
	return true
}

// pruneAtEmptyTrace reports whether the current marking can be pruned once
// the trace is exhausted: true means some still-pending-and-included event
// can neither fire nor be excluded, so the marking can never become
// accepting.
func pruneAtEmptyTrace(g *Graph, context map[Label]struct{}) bool {
	r := newReachability(g, context)
	for _, p := range g.Marking.Pending.Intersect(g.Marking.Included).Sorted() {
		if !r.canBeExecutedOrExcluded(p) {
			return true
		}
	}
	return false
}
