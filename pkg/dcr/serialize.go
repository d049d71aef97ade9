package dcr

import (
	"encoding/json"
	"math"
)

// Canonical JSON mapping for the core's own testing (§6 "Serialization"):
// sets are encoded as arrays and read back as order-insensitive — the one
// reserved exception is the "trace" key of an Alignment, which preserves
// the order events fired in. Persisted values must round-trip:
// parse(serialize(x)) and serialize(parse(x)) are both identities under set
// equality (§8).

// MarshalJSON encodes an EventSet as a sorted JSON array of strings.
func (s EventSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON reads a JSON array of strings back into an EventSet; order
// in the input is not significant.
func (s *EventSet) UnmarshalJSON(data []byte) error {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return err
	}
	*s = NewEventSet(events...)
	return nil
}

// graphJSON is the wire shape of a Graph: only the fields that are not
// mechanically derivable from the others (§3 "Optimised graph (derived)").
// labels, labelMapInv, and the reverse relations are rebuilt by NewGraph on
// decode rather than trusted from the wire.
type graphJSON struct {
	Events        EventSet         `json:"events"`
	LabelMap      map[Event]Label  `json:"labelMap"`
	RoleMap       map[Event]Role   `json:"roleMap"`
	ConditionsFor EventMap         `json:"conditionsFor"`
	MilestonesFor EventMap         `json:"milestonesFor"`
	ResponseTo    EventMap         `json:"responseTo"`
	ExcludesTo    EventMap         `json:"excludesTo"`
	IncludesTo    EventMap         `json:"includesTo"`
	Marking       *Marking         `json:"marking"`
	SubProcessMap map[Event]*Graph `json:"subProcessMap,omitempty"`
}

// MarshalJSON encodes a Graph per the canonical mapping.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphJSON{
		Events:        g.Events,
		LabelMap:      g.LabelMap,
		RoleMap:       g.RoleMap,
		ConditionsFor: g.ConditionsFor,
		MilestonesFor: g.MilestonesFor,
		ResponseTo:    g.ResponseTo,
		ExcludesTo:    g.ExcludesTo,
		IncludesTo:    g.IncludesTo,
		Marking:       g.Marking,
		SubProcessMap: g.SubProcessMap,
	})
}

// UnmarshalJSON decodes a Graph and rebuilds it through NewGraph, so a
// decoded value is validated and reindexed exactly like one built by hand.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var raw graphJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	built, err := NewGraph(
		raw.Events,
		raw.LabelMap,
		raw.RoleMap,
		raw.ConditionsFor,
		raw.MilestonesFor,
		raw.ResponseTo,
		raw.ExcludesTo,
		raw.IncludesTo,
		raw.Marking,
		raw.SubProcessMap,
	)
	if err != nil {
		return err
	}
	*g = *built
	return nil
}

// alignmentJSON mirrors Alignment, with Cost widened to `any` so an infinite
// cost can be written as the string "Infinity" — JSON has no numeric
// literal for it.
type alignmentJSON struct {
	Cost  any     `json:"cost"`
	Trace []Event `json:"trace"`
}

// MarshalJSON encodes an Alignment. trace is the one key the canonical
// mapping (§6) treats as order-preserving rather than set-like.
func (a Alignment) MarshalJSON() ([]byte, error) {
	var cost any = a.Cost
	if math.IsInf(a.Cost, 1) {
		cost = "Infinity"
	}
	return json.Marshal(alignmentJSON{Cost: cost, Trace: a.Trace})
}

// UnmarshalJSON decodes an Alignment, restoring "Infinity" to math.Inf(1).
func (a *Alignment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Cost  json.RawMessage `json:"cost"`
		Trace []Event         `json:"trace"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var costStr string
	if err := json.Unmarshal(raw.Cost, &costStr); err == nil {
		if costStr != "Infinity" {
			return ErrMalformedCost
		}
		a.Cost = math.Inf(1)
	} else {
		var costNum float64
		if err := json.Unmarshal(raw.Cost, &costNum); err != nil {
			return ErrMalformedCost
		}
		a.Cost = costNum
	}
	a.Trace = raw.Trace
	return nil
}
