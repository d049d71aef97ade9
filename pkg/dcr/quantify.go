package dcr

// quantifyAux carries the two auxiliary EventMaps the conformance quantifier
// threads through recursion (§4.3), keyed per scope so that a query
// involving sub-processes keeps each nested graph's history independent of
// its parent's.
type quantifyAux struct {
	exSinceIn map[*Graph]EventMap
	exSinceEx map[*Graph]EventMap
}

func newQuantifyAux() *quantifyAux {
	return &quantifyAux{
		exSinceIn: make(map[*Graph]EventMap),
		exSinceEx: make(map[*Graph]EventMap),
	}
}

// clone returns an independent deep copy, taken before entering a candidate
// branch so that sibling branches never observe each other's history.
func (a *quantifyAux) clone() *quantifyAux {
	out := newQuantifyAux()
	for scope, m := range a.exSinceIn {
		out.exSinceIn[scope] = m.Clone()
	}
	for scope, m := range a.exSinceEx {
		out.exSinceEx[scope] = m.Clone()
	}
	return out
}

func (a *quantifyAux) sinceIn(scope *Graph, e Event) EventSet {
	return a.exSinceIn[scope].Get(e).Clone()
}

func (a *quantifyAux) sinceEx(scope *Graph, e Event) EventSet {
	return a.exSinceEx[scope].Get(e).Clone()
}

func (a *quantifyAux) setSinceIn(scope *Graph, e Event, s EventSet) {
	if a.exSinceIn[scope] == nil {
		a.exSinceIn[scope] = make(EventMap)
	}
	a.exSinceIn[scope][e] = s
}

func (a *quantifyAux) setSinceEx(scope *Graph, e Event, s EventSet) {
	if a.exSinceEx[scope] == nil {
		a.exSinceEx[scope] = make(EventMap)
	}
	a.exSinceEx[scope][e] = s
}

// quantifyBranch bundles the pair of values a single search branch produces,
// so the result can travel through the single-type-parameter
// withScratchMarking.
type quantifyBranch struct {
	violations  RelationViolations
	activations RelationActivations
}

// QuantifyViolations finds, over every non-deterministic resolution of
// ambiguous (activity, role) labels in roleTrace, the resolution minimising
// total relation violations, and reports per-relation violation and
// activation counts for that resolution (§4.3).
func QuantifyViolations(g *Graph, roleTrace RoleTrace) ConformanceResult {
	aux := newQuantifyAux()
	v, a := quantifyRec(g, roleTrace, aux)
	return ConformanceResult{
		TotalViolations: v.total(),
		Violations:      v,
		Activations:     a,
	}
}

func quantifyRec(g *Graph, roleTrace RoleTrace, aux *quantifyAux) (RelationViolations, RelationActivations) {
	if len(roleTrace) == 0 {
		return responseViolationsAtEnd(g, aux), newRelationActivations()
	}

	step := roleTrace[0]
	rest := roleTrace[1:]

	candidates := candidatesForActivity(g, step.Activity)
	if len(candidates) == 0 {
		// Open-world principle, by analogy with ReplayTrace (§4.2, §9):
		// an activity unknown anywhere in g's sub-process tree costs
		// nothing and consumes no state.
		return quantifyRec(g, rest, aux)
	}

	var (
		have      bool
		bestViol  RelationViolations
		bestAct   RelationActivations
		bestScore float64
	)

	for _, c := range candidates {
		if c.scope.RoleMap[c.event] != step.Role {
			continue
		}

		local := localViolations(c.scope, c.event, aux)
		act := activationsFor(c.scope, c.event)

		branchAux := aux.clone()
		branch := withScratchMarking(c.scope, func(*Marking) quantifyBranch {
			Execute(c.scope, c.event)
			updateAuxAfterExecute(c.scope, c.event, branchAux)
			v, a := quantifyRec(g, rest, branchAux)
			return quantifyBranch{violations: v, activations: a}
		})

		totalViol := local.merge(branch.violations)
		totalAct := act.merge(branch.activations)
		score := totalViol.total()

		if !have || score < bestScore {
			have = true
			bestViol, bestAct, bestScore = totalViol, totalAct, score
		}
	}

	if !have {
		// No event anywhere shares both this activity's label and this
		// step's role: nothing can be blamed for it, so it is skipped
		// the same way an entirely unknown activity is.
		return quantifyRec(g, rest, aux)
	}
	return bestViol, bestAct
}

// localViolations scores condition, milestone, and exclude violations for e
// firing in scope's current marking, before scope's marking is mutated
// (§4.3).
func localViolations(scope *Graph, e Event, aux *quantifyAux) RelationViolations {
	v := newRelationViolations()
	m := scope.Marking

	for _, c := range scope.ConditionsFor.Get(e).Sorted() {
		if m.Included.Has(c) && !m.Executed.Has(c) {
			v.ConditionsFor.add(e, c, 1)
		}
	}

	for _, ms := range scope.MilestonesFor.Get(e).Sorted() {
		if m.Included.Has(ms) && m.Pending.Has(ms) {
			v.MilestonesFor.add(e, ms, 1)
		}
	}

	if !m.Included.Has(e) {
		sinceIn := aux.sinceIn(scope, e)
		excludedBy := scope.excludesFor.Get(e)
		for _, o := range sinceIn.Intersect(excludedBy).Sorted() {
			v.ExcludesTo.add(o, e, 1)
		}
	}

	return v
}

// activationsFor records, for the event about to fire, a 1 at (e, t) for
// every t that is a target of one of e's four outgoing relations (§4.3
// "Activations").
func activationsFor(scope *Graph, e Event) RelationActivations {
	a := newRelationActivations()
	for t := range scope.ConditionsFor.Get(e) {
		a.ConditionsFor.add(e, t, 1)
	}
	for t := range scope.MilestonesFor.Get(e) {
		a.MilestonesFor.add(e, t, 1)
	}
	for t := range scope.ResponseTo.Get(e) {
		a.ResponseTo.add(e, t, 1)
	}
	for t := range scope.ExcludesTo.Get(e) {
		a.ExcludesTo.add(e, t, 1)
	}
	for t := range scope.IncludesTo.Get(e) {
		a.IncludesTo.add(e, t, 1)
	}
	return a
}

// updateAuxAfterExecute applies the three per-event auxiliary-state updates
// that follow execute(e, g) in §4.3, in the order the spec fixes: re-include
// resets first, then the blanket "e happened" update, then e's own
// exSinceEx reset last (so it wins over the blanket update).
func updateAuxAfterExecute(scope *Graph, e Event, aux *quantifyAux) {
	for _, o := range scope.IncludesTo.Get(e).Sorted() {
		aux.setSinceIn(scope, o, make(EventSet))
	}

	for _, o := range scope.Events.Sorted() {
		sinceEx := aux.sinceEx(scope, o)
		sinceEx.Add(e)
		aux.setSinceEx(scope, o, sinceEx)

		sinceIn := aux.sinceIn(scope, o)
		sinceIn.Add(e)
		aux.setSinceIn(scope, o, sinceIn)
	}

	aux.setSinceEx(scope, e, NewEventSet(e))
}

// allScopes returns g and every sub-process graph reachable from it,
// recursively, in a stable order.
func allScopes(g *Graph) []*Graph {
	out := []*Graph{g}
	for _, e := range subProcessKeys(g) {
		out = append(out, allScopes(g.SubProcessMap[e])...)
	}
	return out
}

// responseViolationsAtEnd produces the end-of-trace response violations
// (§4.3) for g and, recursively, every sub-process scope, since each scope
// owns its own marking and its own exSinceEx history.
func responseViolationsAtEnd(g *Graph, aux *quantifyAux) RelationViolations {
	v := newRelationViolations()
	for _, scope := range allScopes(g) {
		m := scope.Marking
		stillOwed := m.Pending.Intersect(m.Included)
		for _, e := range stillOwed.Sorted() {
			sinceEx := aux.sinceEx(scope, e)
			responders := scope.responseFor.Get(e)
			for _, o := range responders.Intersect(sinceEx).Sorted() {
				v.ResponseTo.add(o, e, 1)
			}
		}
	}
	return v
}
