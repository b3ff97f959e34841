package htnplan

import "time"

// DefaultGrowThreshold doubles the sample threshold. It only ever grows:
// a dead end is taken as evidence the domain is harder than assumed, and
// no later success walks that back. Callers wanting a bounded or decaying
// policy pass their own hook to AnyhopRandomIncremental.
func DefaultGrowThreshold(current int) int {
	return current * 2
}

// incrementalTracker holds an IncrementalPrefixRandom run's accumulated
// state: the committed prefix, the state/tasks it has advanced to, and the
// per-episode bookkeeping for the first action under evaluation.
type incrementalTracker[S any] struct {
	reg           *Registry[S]
	startState    S
	startTasks    []Task
	threshold     int
	growThreshold func(int) int

	planPrefix []Task
	prefixCost float64
	state      S
	tasks      []Task

	firstActionOutcome map[string]*OutcomeCounter
	firstActionTask    map[string]Task
	firstActionState   map[string]S
	firstActionCost    map[string]float64
	firstActionTasks   map[string][]Task
	sampleCount        int
}

func newIncrementalTracker[S any](reg *Registry[S], state S, tasks []Task, minAvgPlanStepCount int, growThreshold func(int) int) *incrementalTracker[S] {
	if growThreshold == nil {
		growThreshold = DefaultGrowThreshold
	}
	t := &incrementalTracker[S]{
		reg:           reg,
		startState:    state,
		startTasks:    tasks,
		threshold:     minAvgPlanStepCount,
		growThreshold: growThreshold,
	}
	t.fullReset()
	return t
}

func (t *incrementalTracker[S]) fullReset() {
	t.planPrefix = nil
	t.prefixCost = 0
	t.state = t.startState
	t.tasks = t.startTasks
	t.partialReset()
}

func (t *incrementalTracker[S]) partialReset() {
	t.firstActionOutcome = map[string]*OutcomeCounter{}
	t.firstActionTask = map[string]Task{}
	t.firstActionState = map[string]S{}
	t.firstActionCost = map[string]float64{}
	t.firstActionTasks = map[string][]Task{}
	t.sampleCount = 0
}

// recordPrefix logs one completed rollout's first operator and total cost
// against that operator's outcome counter, caching the one-step-forward
// snapshot (state/cost/remaining tasks) the first time it's seen.
func (t *incrementalTracker[S]) recordPrefix(steps []*PlanStep[S]) {
	last := steps[len(steps)-1]
	plan := last.Plan()
	first := plan[0]
	key := first.Key()

	if _, ok := t.firstActionOutcome[key]; !ok {
		t.firstActionOutcome[key] = NewOutcomeCounter()
		actionStep := 0
		for len(steps[actionStep].tasks) == 0 || steps[actionStep].tasks[0].Key() != key {
			actionStep++
		}
		next := steps[actionStep+1]
		t.firstActionTask[key] = first
		t.firstActionState[key] = next.state
		t.firstActionCost[key] = next.currentCost
		t.firstActionTasks[key] = next.tasks
	}
	t.firstActionOutcome[key].Record(last.TotalCost() + t.prefixCost)
	t.sampleCount++
}

func (t *incrementalTracker[S]) readyToChoosePrefix() bool {
	return float64(t.sampleCount)/float64(len(t.firstActionOutcome)) >= float64(t.threshold)
}

// chooseBestPrefix commits the first action with the lowest observed mean
// cost as the next prefix step, advances state/tasks to its cached
// successor snapshot, and clears the per-episode maps.
func (t *incrementalTracker[S]) chooseBestPrefix() {
	var bestKey string
	bestMean := posInf
	first := true
	for key, outcome := range t.firstActionOutcome {
		mean := outcome.Mean()
		if first || mean < bestMean {
			bestKey = key
			bestMean = mean
			first = false
		}
	}
	t.planPrefix = append(t.planPrefix, t.firstActionTask[bestKey])
	t.prefixCost += t.firstActionCost[bestKey]
	t.state = t.firstActionState[bestKey]
	t.tasks = t.firstActionTasks[bestKey]
	t.partialReset()
}

// AnyhopRandomIncremental is the incremental-prefix random driver:
// repeated unbounded random rollouts from the current (possibly
// prefix-advanced) state, committing a prefix action once enough rollouts
// agree on its first action, resetting entirely on a true dead end.
func AnyhopRandomIncremental[S any](reg *Registry[S], state S, tasks []Task, maxSeconds float64, minAvgPlanStepCount int, growThreshold func(int) int) []PlanResult {
	reg.ResetNodeExpansions()
	tracker := newIncrementalTracker(reg, state, tasks, minAvgPlanStepCount, growThreshold)
	start := time.Now()
	var results []PlanResult
	bestCost := posInf

	for time.Since(start).Seconds() < maxSeconds {
		steps, ok := RandhopSteps(reg, tracker.state, tracker.tasks, posInf)
		if !ok || len(steps[len(steps)-1].Plan()) == 0 {
			tracker.threshold = tracker.growThreshold(tracker.threshold)
			tracker.fullReset()
			continue
		}

		// Compute this rollout's (plan_prefix ++ rollout_suffix) against the
		// prefix as it stood BEFORE any commit below: last.Plan() is a full
		// path from tracker.state, so pairing it with a post-commit prefix
		// (which already contains last's own first action) would double the
		// committed action and its cost.
		last := steps[len(steps)-1]
		totalCost := tracker.prefixCost + last.TotalCost()
		if totalCost < bestCost {
			bestCost = totalCost
			plan := make([]Task, 0, len(tracker.planPrefix)+len(last.Plan()))
			plan = append(plan, tracker.planPrefix...)
			plan = append(plan, last.Plan()...)
			results = append(results, PlanResult{
				Plan:    plan,
				Cost:    totalCost,
				Elapsed: time.Since(start),
			})
		}

		tracker.recordPrefix(steps)
		if tracker.readyToChoosePrefix() {
			tracker.chooseBestPrefix()
		}
	}
	return results
}
