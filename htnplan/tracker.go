package htnplan

import "time"

// trackerSuccessorKey identifies a decision outcome by the head of its
// remaining task queue, so the same action chosen from two different
// ancestries still accumulates into one counter.
func trackerSuccessorKey[S any](successor *PlanStep[S]) string {
	return successor.tasks[0].Key()
}

// ActionTracker accumulates an OutcomeCounter per TaskKey across many
// tracked rollouts from a single (tasks, state) root, so later rollouts can
// bias their sampling toward choices with a better observed track record.
type ActionTracker[S any] struct {
	Tasks   []Task
	State   S
	Options map[string]*OutcomeCounter
}

// NewActionTracker returns a tracker with an empty outcome table.
func NewActionTracker[S any](tasks []Task, state S) *ActionTracker[S] {
	return &ActionTracker[S]{
		Tasks:   tasks,
		State:   state,
		Options: map[string]*OutcomeCounter{},
	}
}

// chooseIndex picks which successor to descend into: the only option if
// there is exactly one, otherwise a sample from the rank-exponential-decay
// distribution over all of them.
func (t *ActionTracker[S]) chooseIndex(reg *Registry[S], successors []*PlanStep[S]) int {
	if len(successors) == 1 {
		return 0
	}
	return t.randomIndexFrom(reg, successors)
}

func (t *ActionTracker[S]) randomIndexFrom(reg *Registry[S], successors []*PlanStep[S]) int {
	dist := t.distributionFor(successors)
	r := reg.Rand.Float64()
	for i, share := range dist {
		if share > r {
			return i
		}
		r -= share
	}
	return len(dist) - 1
}

// distributionFor builds the rank-exponential-decay distribution:
// successors with a recorded OutcomeCounter ("seen") split a budget of
// |seen|/n weighted by rank (best counter first); unseen successors split
// the rest equally. With zero or one seen successor, every successor gets
// an equal 1/n share.
func (t *ActionTracker[S]) distributionFor(successors []*PlanStep[S]) []float64 {
	n := len(successors)
	outcomes := make([]*OutcomeCounter, n)
	var seen []int
	for i, s := range successors {
		outcomes[i] = t.Options[trackerSuccessorKey(s)]
		if outcomes[i] != nil {
			seen = append(seen, i)
		}
	}

	dist := make([]float64, n)
	if len(seen) <= 1 {
		share := 1.0 / float64(n)
		for i := range dist {
			dist[i] = share
		}
		return dist
	}

	seenBudget := float64(len(seen)) / float64(n)
	if len(seen) < n {
		unseenShare := (1.0 - seenBudget) / float64(n-len(seen))
		seenSet := make(map[int]bool, len(seen))
		for _, i := range seen {
			seenSet[i] = true
		}
		for i := range dist {
			if !seenSet[i] {
				dist[i] = unseenShare
			}
		}
	}

	ranked := append([]int(nil), seen...)
	sortByOutcome(ranked, outcomes)
	weights := RankExponentialDecayDistribution(len(ranked), seenBudget)
	for rank, i := range ranked {
		dist[i] = weights[rank]
	}
	return dist
}

// sortByOutcome stable-sorts indices ascending by OutcomeCounter.Less
// (best counter first). Insertion sort: n is a branching factor, rarely
// more than a handful.
func sortByOutcome(indices []int, outcomes []*OutcomeCounter) {
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && outcomes[indices[j]].Less(outcomes[indices[j-1]]); j-- {
			indices[j], indices[j-1] = indices[j-1], indices[j]
		}
	}
}

// RankExponentialDecayDistribution splits budget across numSamples ranks so
// rank 0 gets roughly half, rank 1 roughly a quarter, and so on: weight_i =
// 2^(numSamples-i-1), normalized to sum to budget exactly.
func RankExponentialDecayDistribution(numSamples int, budget float64) []float64 {
	weights := make([]float64, numSamples)
	var total float64
	for i := range weights {
		w := pow2(numSamples - i - 1)
		weights[i] = w
		total += w
	}
	for i := range weights {
		weights[i] = weights[i] * budget / total
	}
	return weights
}

func pow2(n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= 2
	}
	return result
}

// MakeActionTrackedPlan runs one rollout under the tracker's rank-biased
// sampling, updating every visited decision's OutcomeCounter with the
// rollout's final outcome (success records total cost, dead-end records a
// failure), and returns the terminal PlanStep, or nil on a dead end.
// ignoreSingle, when true, skips recording at forced (single-successor)
// decision points, matching anyhop_random_tracked's default.
func MakeActionTrackedPlan[S any](reg *Registry[S], tracker *ActionTracker[S], ignoreSingle bool) *PlanStep[S] {
	candidate := Root[S](tracker.State, tracker.Tasks)
	var path []string

	for !candidate.Complete() {
		successors, err := Successors(reg, candidate)
		reg.NodesExpanded++
		if err != nil || len(successors) == 0 {
			candidate = nil
			break
		}
		if ignoreSingle && len(successors) == 1 {
			candidate = successors[0]
			continue
		}
		chosen := successors[tracker.chooseIndex(reg, successors)]
		candidate = chosen
		if len(candidate.tasks) > 0 {
			path = append(path, trackerSuccessorKey(candidate))
		}
	}

	for _, key := range path {
		counter, ok := tracker.Options[key]
		if !ok {
			counter = NewOutcomeCounter()
			tracker.Options[key] = counter
		}
		if candidate == nil {
			counter.Failure()
		} else {
			counter.Record(candidate.TotalCost())
		}
	}
	return candidate
}

// AnyhopRandomTracked is the adaptive tracked-random driver: repeat
// tracked rollouts from a shared ActionTracker, keeping every result
// cheaper than the best found so far, until maxSeconds elapses.
func AnyhopRandomTracked[S any](reg *Registry[S], state S, tasks []Task, maxSeconds float64, ignoreSingle bool) []PlanResult {
	reg.ResetNodeExpansions()
	tracker := NewActionTracker[S](tasks, state)
	start := time.Now()
	var results []PlanResult
	bestCost := posInf

	for time.Since(start).Seconds() < maxSeconds {
		candidate := MakeActionTrackedPlan(reg, tracker, ignoreSingle)
		if candidate == nil {
			continue
		}
		if candidate.TotalCost() < bestCost {
			bestCost = candidate.TotalCost()
			results = append(results, PlanResult{
				Plan:    candidate.Plan(),
				Cost:    candidate.TotalCost(),
				Elapsed: time.Since(start),
			})
		}
	}
	return results
}
