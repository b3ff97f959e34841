package htnplan

// planNode is one link of a persistent cons-list: a PlanStep's plan is the
// chain from its own node back to the root. Siblings that share a prefix
// (every decomposition does, since only one operator is ever appended at a
// time) share the underlying nodes instead of copying a growing slice.
type planNode struct {
	task   Task
	parent *planNode
}

// PlanStep is one search-tree node: the plan accumulated so far, the
// remaining task queue, a state snapshot, and the cost bookkeeping needed
// for branch-and-bound pruning.
type PlanStep[S any] struct {
	head        *planNode
	planLen     int
	tasks       []Task
	state       S
	currentCost float64
	totalCost   float64
}

// Root builds the initial PlanStep for a planning call: empty plan, the
// caller's task list, and the caller's starting state.
func Root[S any](state S, tasks []Task) *PlanStep[S] {
	return &PlanStep[S]{
		tasks: tasks,
		state: state,
	}
}

// Complete reports whether every task has been consumed.
func (p *PlanStep[S]) Complete() bool {
	return len(p.tasks) == 0
}

// Depth is the number of operator applications accumulated so far.
func (p *PlanStep[S]) Depth() int {
	return p.planLen
}

// State returns this node's state snapshot.
func (p *PlanStep[S]) State() S {
	return p.state
}

// Tasks returns the remaining task queue, head first.
func (p *PlanStep[S]) Tasks() []Task {
	return p.tasks
}

// TotalCost is the cumulative cost of the plan accumulated so far.
func (p *PlanStep[S]) TotalCost() float64 {
	return p.totalCost
}

// CurrentCost is the cost of the single operator application that produced
// this node (zero for method-expansion nodes, which add no cost of their own).
func (p *PlanStep[S]) CurrentCost() float64 {
	return p.currentCost
}

// Plan materializes the accumulated operator sequence as a slice, walking
// the persistent cons-list back to the root. Only called when a caller
// actually needs the slice (a complete plan to emit, or a prefix to record).
func (p *PlanStep[S]) Plan() []Task {
	plan := make([]Task, p.planLen)
	node := p.head
	for i := p.planLen - 1; i >= 0; i-- {
		plan[i] = node.task
		node = node.parent
	}
	return plan
}

// extendedByOperator builds the successor produced by applying an operator:
// one more task consumed, one more plan entry, a fresh state, and updated
// cost bookkeeping.
func (p *PlanStep[S]) extendedByOperator(task Task, nextState S, currentCost float64) *PlanStep[S] {
	return &PlanStep[S]{
		head:        &planNode{task: task, parent: p.head},
		planLen:     p.planLen + 1,
		tasks:       p.tasks[1:],
		state:       nextState,
		currentCost: currentCost,
		totalCost:   p.totalCost + currentCost,
	}
}

// expandedByMethod builds the successor produced by one method option:
// the head task is replaced by its subtasks, state and plan are unchanged,
// and no cost is added (method expansion is free by contract).
func (p *PlanStep[S]) expandedByMethod(subtasks []Task) *PlanStep[S] {
	tasks := make([]Task, 0, len(subtasks)+len(p.tasks)-1)
	tasks = append(tasks, subtasks...)
	tasks = append(tasks, p.tasks[1:]...)
	return &PlanStep[S]{
		head:      p.head,
		planLen:   p.planLen,
		tasks:     tasks,
		state:     p.state,
		totalCost: p.totalCost,
	}
}

// consumedByCompletedMethod builds the successor for a method returning
// Completed(): the head task is simply dropped, nothing else changes.
func (p *PlanStep[S]) consumedByCompletedMethod() *PlanStep[S] {
	return &PlanStep[S]{
		head:      p.head,
		planLen:   p.planLen,
		tasks:     p.tasks[1:],
		state:     p.state,
		totalCost: p.totalCost,
	}
}
