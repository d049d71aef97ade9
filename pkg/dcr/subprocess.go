package dcr

import "sort"

// candidate pairs an event with the graph whose Marking governs it — the
// top-level graph, or a nested sub-process graph reached through
// Graph.SubProcessMap. Only replay (C3) and the conformance quantifier (C3)
// consult sub-processes; alignment (C4) operates on a single flattened
// graph by design (§9 open question: the source it was distilled from does
// not descend into sub-processes during alignment, so this implementation
// does not guess at extending it there).
type candidate struct {
	scope *Graph
	event Event
}

// candidatesForActivity finds every event anywhere in g's sub-process tree
// whose label matches activity, each paired with the graph that owns it.
// Results are sorted by event id for deterministic iteration (§5).
func candidatesForActivity(g *Graph, activity Label) []candidate {
	var out []candidate
	collectCandidates(g, activity, &out)
	sortCandidates(out)
	return out
}

func collectCandidates(g *Graph, activity Label, out *[]candidate) {
	for _, e := range g.LabelMapInv[activity].Sorted() {
		*out = append(*out, candidate{scope: g, event: e})
	}
	for _, e := range subProcessKeys(g) {
		collectCandidates(g.SubProcessMap[e], activity, out)
	}
}

func subProcessKeys(g *Graph) []Event {
	if len(g.SubProcessMap) == 0 {
		return nil
	}
	keys := make([]Event, 0, len(g.SubProcessMap))
	for e := range g.SubProcessMap {
		keys = append(keys, e)
	}
	sortEvents(keys)
	return keys
}

func sortCandidates(cs []candidate) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].event < cs[j].event })
}

func sortEvents(es []Event) {
	sort.Slice(es, func(i, j int) bool { return es[i] < es[j] })
}
