package htnplan

// TaskList is what a method returns: either "this task is already done" or a
// finite set of alternative decompositions, each an ordered sequence of
// subtasks. Separate constructors distinguish "one sequence" from "several
// alternative sequences" so a method author states which one it means
// instead of the engine guessing from the shape of a nested slice.
type TaskList struct {
	completed bool
	options   [][]Task
}

// Completed reports that the current task succeeded with no further subtasks.
func Completed() TaskList {
	return TaskList{completed: true}
}

// SingleOption wraps one deterministic decomposition.
func SingleOption(tasks ...Task) TaskList {
	return TaskList{options: [][]Task{tasks}}
}

// Options wraps several alternative decompositions; the decomposition
// engine emits one successor per option, in the order given here.
func Options(opts ...[]Task) TaskList {
	return TaskList{options: opts}
}

// Failed represents a method that found no way to proceed: observationally
// equivalent to an empty Options() call.
func Failed() TaskList {
	return TaskList{}
}

// Completed reports whether this TaskList is the "completed" sentinel.
func (tl TaskList) Completed() bool { return tl.completed }

// IsFailed reports whether this TaskList has no options and is not completed.
func (tl TaskList) IsFailed() bool { return len(tl.options) == 0 && !tl.completed }

// OptionList returns the alternative decompositions, in order.
func (tl TaskList) OptionList() [][]Task { return tl.options }
