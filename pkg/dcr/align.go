package dcr

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// MoveKind names one of the three move types the aligner costs (§4.4).
type MoveKind string

const (
	MoveConsume   MoveKind = "consume"
	MoveModelSkip MoveKind = "model-skip"
	MoveTraceSkip MoveKind = "trace-skip"
)

// CostFunc prices a single move. For MoveConsume and MoveModelSkip, token is
// the Label of the event that fired; for MoveTraceSkip, token is the
// dropped trace Label.
type CostFunc func(kind MoveKind, token Label) float64

// UnitCostFunc is the cost function used by the seed scenarios (§8): every
// move costs exactly 1.
func UnitCostFunc(MoveKind, Label) float64 { return 1 }

// Alignment is the result of Align: the events fired, in order, and the
// total cost of the cheapest run that explains the trace (§3).
type Alignment struct {
	Cost  float64
	Trace []Event
}

var infeasible = Alignment{Cost: math.Inf(1), Trace: nil}

// AlignOptions configures a single Align call. DepthLimit <= 0 means
// unbounded (the initial upper bound is computed from trace-skip costs
// instead, §4.4 "Initial upper bound"). Pruning enables the reachability
// oracle. Logger, if non-nil, receives debug-level trace of the search.
type AlignOptions struct {
	DepthLimit int
	Pruning    bool
	Logger     *zerolog.Logger
}

// Align computes a minimum-cost alignment of trace against g's current
// marking (§4.4). It does not descend into g.SubProcessMap: alignment
// always operates on a single flattened graph (§9).
func Align(g *Graph, trace Trace, costFun CostFunc, opts AlignOptions) Alignment {
	s := newAligner(g, costFun, opts)
	// initialUpperBound's own nested search (the align([], g) term) runs
	// against a separate fresh aligner with maxCost still unestablished
	// (+Inf), so reachability pruning is live for it and its memo entries
	// cannot leak into s; s.maxCost only becomes finite once it returns,
	// switching pruning off for the real search below (§4.4).
	s.maxCost = initialUpperBound(g, trace, costFun, opts)
	return s.search(trace, 0, 0, nil)
}

type aligner struct {
	g        *Graph
	costFun  CostFunc
	opts     AlignOptions
	memo     map[int]map[string]float64 // remainingTraceLen -> markingKey -> bestSeenCost
	maxCost  float64
	maxDepth int
}

// initialUpperBound computes the Σ costFun("trace-skip", t) + align([], g)
// bound (§4.4), used as the starting maxCost when DepthLimit is unbounded.
// align([], g) is an independent call per the spec, so it runs against its
// own fresh aligner with its own empty memo map: reusing the real search's
// aligner would let the empty-trace search's memo entries (recorded at cost
// 0 for markings it reaches directly) leak into the real search and wrongly
// prune branches that still have a genuine completion.
func initialUpperBound(g *Graph, trace Trace, costFun CostFunc, opts AlignOptions) float64 {
	if opts.DepthLimit > 0 {
		return float64(opts.DepthLimit)
	}
	var total float64
	for _, t := range trace {
		total += costFun(MoveTraceSkip, t)
	}

	empty := newAligner(g, costFun, opts)
	result := empty.search(nil, 0, 0, nil)
	return total + result.Cost
}

// newAligner builds an aligner with a fresh memo map and an unestablished
// (+Inf) maxCost, ready for a standalone search call.
func newAligner(g *Graph, costFun CostFunc, opts AlignOptions) *aligner {
	s := &aligner{
		g:        g,
		costFun:  costFun,
		opts:     opts,
		memo:     make(map[int]map[string]float64),
		maxDepth: opts.DepthLimit,
		maxCost:  math.Inf(1),
	}
	if s.maxDepth <= 0 {
		s.maxDepth = math.MaxInt32
	}
	return s
}

// search is the depth-first branch-and-bound recursion (§4.4 "Search
// order"). depth counts moves taken so far; fired accumulates the events of
// the best branch found, built by prepending on the way back up.
func (s *aligner) search(trace Trace, curCost float64, depth int, fired []Event) Alignment {
	if curCost > s.maxCost {
		return infeasible
	}
	if depth >= s.maxDepth {
		return infeasible
	}

	if len(trace) == 0 && IsAccepting(s.g) {
		return Alignment{Cost: curCost, Trace: append([]Event(nil), fired...)}
	}

	key := markingKey(s.g.Marking)
	if best, ok := s.memo[len(trace)]; ok {
		if seen, ok := best[key]; ok && curCost >= seen {
			return infeasible
		}
	}
	s.remember(len(trace), key, curCost)

	best := infeasible
	record := func(candidate Alignment) {
		if candidate.Cost < best.Cost {
			best = candidate
			if best.Cost < s.maxCost {
				s.maxCost = best.Cost
			}
		}
	}

	// 1. Consume.
	if len(trace) > 0 {
		label := trace[0]
		rest := trace[1:]
		for _, e := range s.g.LabelMapInv[label].Sorted() {
			if !IsEnabled(s.g, e) {
				continue
			}
			cost := curCost + s.costFun(MoveConsume, label)
			result := withScratchMarking(s.g, func(*Marking) Alignment {
				Execute(s.g, e)
				return s.search(rest, cost, depth+1, append(fired, e))
			})
			s.logMove(MoveConsume, e, depth, result)
			record(result)
		}
	}

	// 2. Trace-skip.
	if len(trace) > 0 {
		label := trace[0]
		rest := trace[1:]
		cost := curCost + s.costFun(MoveTraceSkip, label)
		result := s.search(rest, cost, depth+1, fired)
		s.logMove(MoveTraceSkip, "", depth, result)
		record(result)
	}

	// 3. Reachability pruning.
	if s.opts.Pruning && math.IsInf(s.maxCost, 1) {
		if s.pruned(trace) {
			return best
		}
	}

	// 4. Model-skip.
	for _, e := range GetEnabled(s.g) {
		label := s.g.LabelMap[e]
		cost := curCost + s.costFun(MoveModelSkip, label)
		result := withScratchMarking(s.g, func(*Marking) Alignment {
			Execute(s.g, e)
			return s.search(trace, cost, depth+1, append(fired, e))
		})
		s.logMove(MoveModelSkip, e, depth, result)
		record(result)
	}

	return best
}

func (s *aligner) pruned(trace Trace) bool {
	if len(trace) > 0 {
		return pruneBeforeConsume(s.g, trace[0], nil)
	}
	return pruneAtEmptyTrace(s.g, nil)
}

func (s *aligner) remember(remaining int, key string, cost float64) {
	if s.memo[remaining] == nil {
		s.memo[remaining] = make(map[string]float64)
	}
	if seen, ok := s.memo[remaining][key]; !ok || cost < seen {
		s.memo[remaining][key] = cost
	}
}

func (s *aligner) logMove(kind MoveKind, e Event, depth int, result Alignment) {
	if s.opts.Logger == nil {
		return
	}
	s.opts.Logger.Debug().
		Str("move", string(kind)).
		Str("event", string(e)).
		Int("depth", depth).
		Float64("cost", result.Cost).
		Msg("align move")
}

// markingKey builds the canonical, unambiguous string key used by the
// aligner's memo table (§4.4 "Memoisation"): the three marking sets, each
// sorted, each event Go-quoted so the ',' and '|' separators stay
// unambiguous whatever characters an Event contains.
func markingKey(m *Marking) string {
	var b strings.Builder
	writeSortedEvents(&b, m.Executed)
	b.WriteByte('|')
	writeSortedEvents(&b, m.Included)
	b.WriteByte('|')
	writeSortedEvents(&b, m.Pending)
	return b.String()
}

func writeSortedEvents(b *strings.Builder, s EventSet) {
	events := s.Sorted()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e)
	}
	sort.Strings(names)
	for i, n := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%q", n)
	}
}
