// Package batch runs independent replay and conformance-checking jobs across
// a fixed pool of goroutines. Each job gets its own cloned Graph (see
// dcr.Graph.Clone), so workers never share mutable marking state — the
// concurrency escape hatch the core's single-threaded replay/quantify/align
// algorithms (§5) deliberately do not provide themselves.
package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/dcrlang/dcrgraph/pkg/dcr"
)

// ReplayJob is one independent ReplayTrace call: replay trace against a
// fresh clone of graph so concurrent jobs never observe each other's
// marking mutations.
type ReplayJob struct {
	Graph *dcr.Graph
	Trace dcr.RoleTrace
}

// ReplayResult carries a ReplayJob's outcome back with its original index,
// since results may complete out of submission order.
type ReplayResult struct {
	Index    int
	Accepted bool
}

// QuantifyJob is one independent QuantifyViolations call.
type QuantifyJob struct {
	Graph *dcr.Graph
	Trace dcr.RoleTrace
}

// QuantifyResult carries a QuantifyJob's outcome back with its original
// index.
type QuantifyResult struct {
	Index  int
	Result dcr.ConformanceResult
}

// workerCount normalises n to a usable pool size: n itself when positive,
// otherwise the number of available CPUs.
func workerCount(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ReplayAll runs every job's ReplayTrace against its own graph clone,
// distributed across workers goroutines (workers <= 0 defaults to
// runtime.NumCPU()). Results are returned in the same order as jobs;
// ctx cancellation stops dispatching further jobs and returns early
// with whatever results completed.
func ReplayAll(ctx context.Context, jobs []ReplayJob, workers int) []ReplayResult {
	results := make([]ReplayResult, len(jobs))

	indices := make(chan int)
	go func() {
		defer close(indices)
		for i := range jobs {
			select {
			case indices <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	n := workerCount(workers)
	if n > len(jobs) {
		n = len(jobs)
	}
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				job := jobs[i]
				accepted := dcr.ReplayTrace(job.Graph.Clone(), job.Trace)
				results[i] = ReplayResult{Index: i, Accepted: accepted}
			}
		}()
	}
	wg.Wait()

	return results
}

// QuantifyAll runs every job's QuantifyViolations against its own graph
// clone, distributed across workers goroutines. Results are returned in
// the same order as jobs; ctx cancellation stops dispatching further jobs.
func QuantifyAll(ctx context.Context, jobs []QuantifyJob, workers int) []QuantifyResult {
	results := make([]QuantifyResult, len(jobs))

	indices := make(chan int)
	go func() {
		defer close(indices)
		for i := range jobs {
			select {
			case indices <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	n := workerCount(workers)
	if n > len(jobs) {
		n = len(jobs)
	}
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				job := jobs[i]
				result := dcr.QuantifyViolations(job.Graph.Clone(), job.Trace)
				results[i] = QuantifyResult{Index: i, Result: result}
			}
		}()
	}
	wg.Wait()

	return results
}
