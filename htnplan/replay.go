package htnplan

import "fmt"

// PlanStates replays a plan from startState by re-invoking each task's
// operator in order on successive clones, returning every intermediate
// state including the start and final one. It trusts the plan was
// produced by this registry — an operator returning ok=false here is a
// domain-definition bug, not a normal outcome, so it panics rather than
// silently truncating the replay.
func PlanStates[S any](reg *Registry[S], startState S, plan []Task) []S {
	states := make([]S, 0, len(plan)+1)
	states = append(states, startState)
	current := startState
	for _, task := range plan {
		op, ok := reg.operators[task.Name]
		if !ok {
			panic(fmt.Sprintf("htnplan: PlanStates replaying unregistered operator %q", task.Name))
		}
		next, ok := op(reg.Clone(current), task.Args)
		if !ok {
			panic(fmt.Sprintf("htnplan: PlanStates replay: operator %q rejected a state it previously accepted", task.Name))
		}
		current = next
		states = append(states, current)
	}
	return states
}
