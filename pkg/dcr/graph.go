package dcr

import "sort"

// Event is an opaque identifier for a single event in a DCR graph. It is
// unique within the graph that declares it.
type Event string

// Label is the observable activity name attached to an event. Multiple
// events may share a label; this is what makes alignment and replay
// non-deterministic with respect to which event actually fired.
type Label string

// Role tags an event with the actor permitted to execute it.
type Role string

// EventSet is a finite set of Event identifiers. The zero value (nil) reads
// as an empty set; Add on it panics, so build a set to be filled with
// NewEventSet or make.
type EventSet map[Event]struct{}

// NewEventSet builds an EventSet from the given events, deduplicating them.
func NewEventSet(events ...Event) EventSet {
	s := make(EventSet, len(events))
	for _, e := range events {
		s[e] = struct{}{}
	}
	return s
}

// Has reports whether e is a member of the set.
func (s EventSet) Has(e Event) bool {
	_, ok := s[e]
	return ok
}

// Add inserts e into the set in place.
func (s EventSet) Add(e Event) {
	s[e] = struct{}{}
}

// Remove deletes e from the set in place. Removing an absent element is a
// no-op.
func (s EventSet) Remove(e Event) {
	delete(s, e)
}

// Size returns the number of members of the set.
func (s EventSet) Size() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s EventSet) Clone() EventSet {
	out := make(EventSet, len(s))
	for e := range s {
		out[e] = struct{}{}
	}
	return out
}

// Union returns a new set containing every element of s and other.
func (s EventSet) Union(other EventSet) EventSet {
	out := make(EventSet, len(s)+len(other))
	for e := range s {
		out[e] = struct{}{}
	}
	for e := range other {
		out[e] = struct{}{}
	}
	return out
}

// Intersect returns a new set containing only elements present in both s and
// other.
func (s EventSet) Intersect(other EventSet) EventSet {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(EventSet, len(small))
	for e := range small {
		if _, ok := big[e]; ok {
			out[e] = struct{}{}
		}
	}
	return out
}

// Diff returns a new set containing the elements of s that are not in other.
func (s EventSet) Diff(other EventSet) EventSet {
	out := make(EventSet, len(s))
	for e := range s {
		if _, ok := other[e]; !ok {
			out[e] = struct{}{}
		}
	}
	return out
}

// Sorted returns the set's members in ascending lexical order. Every
// traversal of an EventSet elsewhere in this package goes through Sorted (or
// an equivalent explicit sort) so that recursion order is deterministic, per
// the stable-iteration contract the alignment and replay searches rely on.
func (s EventSet) Sorted() []Event {
	out := make([]Event, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EventMap is a total mapping from Event to EventSet representing one of the
// four DCR relations. A key absent from the map denotes an empty relation
// target set, exactly as if it mapped to an empty EventSet.
type EventMap map[Event]EventSet

// Get returns the EventSet associated with e, or an empty set if e has no
// entry.
func (m EventMap) Get(e Event) EventSet {
	if s, ok := m[e]; ok {
		return s
	}
	return nil
}

// Clone returns an independent deep copy of the relation.
func (m EventMap) Clone() EventMap {
	out := make(EventMap, len(m))
	for e, s := range m {
		out[e] = s.Clone()
	}
	return out
}

// reverse builds the inverse of this relation: for every e -> {t1, t2, ...}
// it produces t1 -> {e, ...}, t2 -> {e, ...}, etc.
func (m EventMap) reverse() EventMap {
	out := make(EventMap)
	for src, targets := range m {
		for t := range targets {
			if out[t] == nil {
				out[t] = make(EventSet)
			}
			out[t][src] = struct{}{}
		}
	}
	return out
}

// union returns the union of every target set in the relation — the set of
// events that condition (or otherwise relate to) anything at all.
func (m EventMap) union() EventSet {
	out := make(EventSet)
	for _, targets := range m {
		for e := range targets {
			out[e] = struct{}{}
		}
	}
	return out
}

// RoleTrace is an ordered, finite sequence of (role, activity) pairs as
// observed during execution — the input to ReplayTrace and
// QuantifyViolations.
type RoleTrace []RoleStep

// RoleStep is one entry of a RoleTrace.
type RoleStep struct {
	Role     Role
	Activity Label
}

// Trace is an ordered, finite sequence of observed activity labels — the
// input to Align, which is role-agnostic.
type Trace []Label

// Graph is the immutable structure of a DCR process: its events, their
// labels and roles, the four relations between them, and an initial
// Marking. Relations are never mutated after construction; only a Marking
// (the graph's own, or a caller's scratch copy) evolves.
type Graph struct {
	Events EventSet

	Labels      map[Label]struct{}
	LabelMap    map[Event]Label
	LabelMapInv map[Label]EventSet

	RoleMap map[Event]Role

	ConditionsFor EventMap
	MilestonesFor EventMap
	ResponseTo    EventMap
	ExcludesTo    EventMap
	IncludesTo    EventMap

	Marking *Marking

	// SubProcessMap optionally scopes an event to a nested sub-process
	// graph; replay and the conformance quantifier evaluate enabledness
	// for such an event against the sub-process's own Marking rather than
	// this graph's. Alignment (C4) does not consult this map: §9 records
	// that the source it was distilled from does not descend into
	// sub-processes during alignment, so neither does this implementation.
	SubProcessMap map[Event]*Graph

	// conditions is the union of every event that conditions anything —
	// the optimisation in §4.1 step 1 that lets Execute skip writing to
	// Marking.executed for events nothing ever conditions on.
	conditions EventSet

	// includesFor/excludesFor are the reverses of IncludesTo/ExcludesTo,
	// used by the reachability oracle (reachability.go) to ask "what can
	// include/exclude me".
	includesFor EventMap
	excludesFor EventMap

	// responseFor is the reverse of ResponseTo, used by the conformance
	// quantifier (quantify.go) to find, for a still-pending event, which
	// events promised to respond to it.
	responseFor EventMap
}

// NewGraph validates and constructs a Graph. It refuses to build a
// structurally inconsistent graph: every event named by a relation, the
// role map, the label map, or the marking must be a member of events (§3
// invariants, §7 "Graph structural inconsistency").
func NewGraph(
	events EventSet,
	labelMap map[Event]Label,
	roleMap map[Event]Role,
	conditionsFor, milestonesFor, responseTo, excludesTo, includesTo EventMap,
	marking *Marking,
	subProcessMap map[Event]*Graph,
) (*Graph, error) {
	g := &Graph{
		Events:        events.Clone(),
		LabelMap:      cloneLabelMap(labelMap),
		RoleMap:       cloneRoleMap(roleMap),
		ConditionsFor: conditionsFor.Clone(),
		MilestonesFor: milestonesFor.Clone(),
		ResponseTo:    responseTo.Clone(),
		ExcludesTo:    excludesTo.Clone(),
		IncludesTo:    includesTo.Clone(),
		Marking:       marking.Clone(),
		SubProcessMap: subProcessMap,
	}

	g.Labels = make(map[Label]struct{}, len(g.LabelMap))
	g.LabelMapInv = make(map[Label]EventSet, len(g.LabelMap))
	for e, l := range g.LabelMap {
		g.Labels[l] = struct{}{}
		if g.LabelMapInv[l] == nil {
			g.LabelMapInv[l] = make(EventSet)
		}
		g.LabelMapInv[l][e] = struct{}{}
	}

	if err := g.validate(); err != nil {
		return nil, err
	}

	g.reindex()
	return g, nil
}

// reindex (re)computes the derived, optimised-kernel fields from the
// relations. It must run after any change to the relations; since relations
// are immutable post-construction this only ever runs once, from NewGraph
// and Clone.
func (g *Graph) reindex() {
	g.conditions = g.ConditionsFor.union()
	g.includesFor = g.IncludesTo.reverse()
	g.excludesFor = g.ExcludesTo.reverse()
	g.responseFor = g.ResponseTo.reverse()
}

// Clone returns a deep copy of the graph, including its current Marking and
// a deep copy of every sub-process graph. Used by callers that need to
// execute against independent markings concurrently (see internal/batch).
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		Events:        g.Events.Clone(),
		Labels:        make(map[Label]struct{}, len(g.Labels)),
		LabelMap:      cloneLabelMap(g.LabelMap),
		LabelMapInv:   make(map[Label]EventSet, len(g.LabelMapInv)),
		RoleMap:       cloneRoleMap(g.RoleMap),
		ConditionsFor: g.ConditionsFor.Clone(),
		MilestonesFor: g.MilestonesFor.Clone(),
		ResponseTo:    g.ResponseTo.Clone(),
		ExcludesTo:    g.ExcludesTo.Clone(),
		IncludesTo:    g.IncludesTo.Clone(),
		Marking:       g.Marking.Clone(),
	}
	if g.SubProcessMap != nil {
		clone.SubProcessMap = make(map[Event]*Graph, len(g.SubProcessMap))
		for e, sub := range g.SubProcessMap {
			clone.SubProcessMap[e] = sub.Clone()
		}
	}
	for l := range g.Labels {
		clone.Labels[l] = struct{}{}
	}
	for l, s := range g.LabelMapInv {
		clone.LabelMapInv[l] = s.Clone()
	}
	clone.reindex()
	return clone
}

func cloneLabelMap(m map[Event]Label) map[Event]Label {
	out := make(map[Event]Label, len(m))
	for e, l := range m {
		out[e] = l
	}
	return out
}

func cloneRoleMap(m map[Event]Role) map[Event]Role {
	out := make(map[Event]Role, len(m))
	for e, r := range m {
		out[e] = r
	}
	return out
}
