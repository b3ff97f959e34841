package htnplan

// counterState is a minimal state used across this package's tests: a
// single int counter. "inc" is the only operator (adds 1, cost 1); "reach"
// is the only task requiring decomposition, recursing via "step" until the
// counter hits a target carried in its argument.
type counterState struct {
	n int
}

func cloneCounter(s counterState) counterState { return s }

func newCounterRegistry(target int) *Registry[counterState] {
	reg := NewRegistry[counterState](cloneCounter)
	reg.DeclareOperators(map[string]Operator[counterState]{
		"inc": func(state counterState, args []any) (counterState, bool) {
			state.n++
			return state, true
		},
	})
	reg.DeclareMethods(map[string]Method[counterState]{
		"reach": func(state counterState, args []any) (TaskList, bool) {
			goal := args[0].(int)
			if state.n >= goal {
				return Completed(), true
			}
			return SingleOption(NewTask("inc"), NewTask("reach", goal)), true
		},
	})
	return reg
}

// newBranchingCounterRegistry is the same domain but "reach" offers two
// options at every step (plain increment or a double-increment), used to
// exercise branch-and-bound pruning and the multi-option sampling paths.
func newBranchingCounterRegistry() *Registry[counterState] {
	reg := NewRegistry[counterState](cloneCounter)
	reg.DeclareOperators(map[string]Operator[counterState]{
		"inc": func(state counterState, args []any) (counterState, bool) {
			state.n++
			return state, true
		},
		"double_inc": func(state counterState, args []any) (counterState, bool) {
			state.n += 2
			return state, true
		},
	})
	reg.DeclareMethods(map[string]Method[counterState]{
		"reach": func(state counterState, args []any) (TaskList, bool) {
			goal := args[0].(int)
			if state.n >= goal {
				return Completed(), true
			}
			return Options(
				[]Task{NewTask("inc"), NewTask("reach", goal)},
				[]Task{NewTask("double_inc"), NewTask("reach", goal)},
			), true
		},
	})
	return reg
}
