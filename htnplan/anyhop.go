package htnplan

import (
	"math"
	"time"
)

// PlanResult is one emitted plan: its operator sequence, total cost, and
// the wall-clock time elapsed since the driver started searching.
type PlanResult struct {
	Plan    []Task
	Cost    float64
	Elapsed time.Duration
}

// ProgressFunc is invoked once per emitted plan; no periodic node-count
// heartbeat is sent. It is synchronous; keep it fast, the search loop
// blocks on it.
type ProgressFunc func(event ProgressEvent)

// ProgressEvent carries one progress update to an attached ProgressFunc.
type ProgressEvent struct {
	Plan          []Task
	Cost          float64
	Elapsed       time.Duration
	NodesExpanded int
	FrontierSize  int
}

// AnyhopOptions configures the anytime DFS driver. A nil *AnyhopOptions
// means every default: LIFO stack frontier, branch-and-bound enabled, no
// progress callback.
type AnyhopOptions[S any] struct {
	// Frontier builds the frontier to search with. Defaults to NewStack.
	Frontier func() Frontier[S]
	// DisableBranchBound turns off cost-based pruning, forcing an
	// exhaustive enumeration of every complete plan in frontier order.
	DisableBranchBound bool
	// Progress, if non-nil, is invoked once per emitted plan.
	Progress ProgressFunc
}

func (o *AnyhopOptions[S]) frontierFactory() func() Frontier[S] {
	if o != nil && o.Frontier != nil {
		return o.Frontier
	}
	return func() Frontier[S] { return NewStack[S]() }
}

func (o *AnyhopOptions[S]) disableBB() bool {
	return o != nil && o.DisableBranchBound
}

func (o *AnyhopOptions[S]) progress() ProgressFunc {
	if o != nil {
		return o.Progress
	}
	return nil
}

// Pyhop returns the first complete plan found by a depth-first, unbounded
// search, or (nil, false) if the task list is unsatisfiable. It stops at
// the first plan rather than searching on for cheaper ones; use Anyhop for
// that. An error is only ever returned for a domain-definition bug.
func Pyhop[S any](reg *Registry[S], state S, tasks []Task) ([]Task, bool, error) {
	reg.ResetNodeExpansions()
	frontier := NewStack[S]()
	frontier.EnqueueAll([]*PlanStep[S]{Root[S](state, tasks)})

	for !frontier.Empty() {
		node, ok := frontier.Dequeue()
		if !ok {
			break
		}
		reg.NodesExpanded++
		if node.Complete() {
			return node.Plan(), true, nil
		}
		successors, err := Successors(reg, node)
		if err != nil {
			return nil, false, err
		}
		frontier.EnqueueAll(successors)
	}
	return nil, false, nil
}

// Anyhop runs the anytime branch-and-bound search: pop a node, prune it if
// its cost already meets-or-exceeds the best plan found so far, otherwise
// emit it (if complete) or expand it (if not). Returns every emitted
// (plan, cost, elapsed) in strictly decreasing-cost order; with
// DisableBranchBound set, every complete plan is emitted in frontier order
// and the costs need not decrease. Terminates when
// the frontier empties or maxSeconds elapses, whichever comes first; a
// maxSeconds of +Inf searches to exhaustion. The only error this returns is
// a domain-definition bug; ordinary exhaustion and deadline expiry are not
// errors, they just shorten the result slice.
func Anyhop[S any](reg *Registry[S], state S, tasks []Task, maxSeconds float64, opts *AnyhopOptions[S]) ([]PlanResult, error) {
	reg.ResetNodeExpansions()
	start := time.Now()
	frontier := opts.frontierFactory()()
	frontier.EnqueueAll([]*PlanStep[S]{Root[S](state, tasks)})

	progress := opts.progress()
	disableBB := opts.disableBB()

	var results []PlanResult
	bestCost := math.Inf(1)
	haveBest := false

	for !frontier.Empty() {
		elapsed := time.Since(start)
		if elapsed.Seconds() >= maxSeconds {
			break
		}

		node, ok := frontier.Dequeue()
		if !ok {
			break
		}
		reg.NodesExpanded++

		if !disableBB && haveBest && node.TotalCost() >= bestCost {
			continue
		}

		if node.Complete() {
			bestCost = node.TotalCost()
			haveBest = true
			result := PlanResult{
				Plan:    node.Plan(),
				Cost:    node.TotalCost(),
				Elapsed: time.Since(start),
			}
			results = append(results, result)
			if progress != nil {
				progress(ProgressEvent{
					Plan:          result.Plan,
					Cost:          result.Cost,
					Elapsed:       result.Elapsed,
					NodesExpanded: reg.NodesExpanded,
					FrontierSize:  0,
				})
			}
			continue
		}

		successors, err := Successors(reg, node)
		if err != nil {
			return results, err
		}
		frontier.EnqueueAll(successors)
	}

	return results, nil
}
