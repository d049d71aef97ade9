// Package dcr implements the execution, replay, conformance and alignment
// core of a Dynamic Condition Response (DCR) graph engine.
//
// A DCR graph constrains a fixed set of events through four relations —
// condition, response, include/exclude and milestone — instead of an
// explicit control-flow graph. The package exposes four layers:
//
//   - the Graph/Marking data model (graph.go, marking.go),
//   - the execution kernel (kernel.go: IsEnabled, Execute, IsAccepting,
//     GetEnabled),
//   - trace replay and conformance quantification (replay.go, quantify.go),
//   - a branch-and-bound trace aligner with a reachability pruning oracle
//     (align.go, reachability.go).
//
// The package is single-threaded and synchronous: a Graph's relations are
// immutable once constructed, and its Marking is mutable state owned by one
// caller at a time. Callers needing concurrency should clone the graph (see
// Graph.Clone) and give each goroutine its own Marking; package
// github.com/dcrlang/dcrgraph/internal/batch does exactly this to replay or
// quantify many traces in parallel.
package dcr
