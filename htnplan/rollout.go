package htnplan

import (
	"math"
	"time"
)

// Randhop runs a single random rollout: at every step it picks uniformly
// among the successors of the current node (operator result or one method
// option) until the plan is complete or no successor exists. maxCost, if
// finite, aborts the rollout the moment its running total would meet or
// exceed it — the caller's cheapest plan found so far, used by the
// bounded variant of AnyhopRandom to discard rollouts that can't possibly
// win. Returns (nil, false) on any dead end.
func Randhop[S any](reg *Registry[S], state S, tasks []Task, maxCost float64) (*PlanStep[S], bool) {
	node := Root[S](state, tasks)
	for !node.Complete() {
		if node.TotalCost() >= maxCost {
			return nil, false
		}
		successors, err := Successors(reg, node)
		reg.NodesExpanded++
		if err != nil || len(successors) == 0 {
			return nil, false
		}
		node = successors[reg.Rand.Intn(len(successors))]
	}
	return node, true
}

// RandhopSteps is Randhop's step-by-step variant: it returns the entire
// chain of nodes visited, root first, instead of just the final node.
// incremental.go uses this to extract a prefix of a rollout without
// re-walking the persistent plan cons-list.
func RandhopSteps[S any](reg *Registry[S], state S, tasks []Task, maxCost float64) ([]*PlanStep[S], bool) {
	node := Root[S](state, tasks)
	steps := []*PlanStep[S]{node}
	for !node.Complete() {
		if node.TotalCost() >= maxCost {
			return nil, false
		}
		successors, err := Successors(reg, node)
		reg.NodesExpanded++
		if err != nil || len(successors) == 0 {
			return nil, false
		}
		node = successors[reg.Rand.Intn(len(successors))]
		steps = append(steps, node)
	}
	return steps, true
}

// NRandom launches n independent random rollouts from (state, tasks) with
// no cost cap and collects the ones that complete. Used by MonteCarloHeap
// to rate a frontier node by its average rollout cost.
func NRandom[S any](reg *Registry[S], state S, tasks []Task, n int) []PlanResult {
	var results []PlanResult
	for i := 0; i < n; i++ {
		node, ok := Randhop(reg, state, tasks, math.Inf(1))
		if !ok {
			continue
		}
		results = append(results, PlanResult{Plan: node.Plan(), Cost: node.TotalCost()})
	}
	return results
}

// AnyhopRandom is the anytime random driver: repeatedly call Randhop from
// the root, keeping every rollout cheaper than the best found so far, until
// maxSeconds elapses.
// This is the bounded variant: it passes the current best cost to Randhop
// so rollouts abort the moment they can't win (AnyhopRandomUnbounded always
// rolls all the way out). Results are returned in the order found, which is
// strictly decreasing in cost.
func AnyhopRandom[S any](reg *Registry[S], state S, tasks []Task, maxSeconds float64) []PlanResult {
	return anyhopRandomImpl(reg, state, tasks, maxSeconds, true)
}

// AnyhopRandomUnbounded is AnyhopRandom with the cost cap disabled: every
// rollout runs to completion or dead end regardless of the best plan found
// so far.
func AnyhopRandomUnbounded[S any](reg *Registry[S], state S, tasks []Task, maxSeconds float64) []PlanResult {
	return anyhopRandomImpl(reg, state, tasks, maxSeconds, false)
}

func anyhopRandomImpl[S any](reg *Registry[S], state S, tasks []Task, maxSeconds float64, useMaxCost bool) []PlanResult {
	reg.ResetNodeExpansions()
	start := time.Now()
	var results []PlanResult
	bestCost := math.Inf(1)

	for time.Since(start).Seconds() < maxSeconds {
		costCap := math.Inf(1)
		if useMaxCost {
			costCap = bestCost
		}
		node, ok := Randhop(reg, state, tasks, costCap)
		if !ok {
			continue
		}
		if node.TotalCost() < bestCost {
			bestCost = node.TotalCost()
			results = append(results, PlanResult{
				Plan:    node.Plan(),
				Cost:    node.TotalCost(),
				Elapsed: time.Since(start),
			})
		}
	}
	return results
}
