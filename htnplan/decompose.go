package htnplan

import "fmt"

// Successors expands a PlanStep with a non-empty task queue into its
// ordered list of children: operator results first, then method options in
// the order the method returned them. Returns an
// UnresolvedTaskError if the head task's name is registered as neither an
// operator nor a method, and an AmbiguousTaskError if it is registered as
// both — both are domain-definition bugs, not ordinary search outcomes.
func Successors[S any](reg *Registry[S], p *PlanStep[S]) ([]*PlanStep[S], error) {
	head := p.tasks[0]
	op, isOp := reg.operators[head.Name]
	method, isMethod := reg.methods[head.Name]

	if isOp && isMethod {
		return nil, &AmbiguousTaskError{TaskName: head.Name}
	}
	if !isOp && !isMethod {
		return nil, &UnresolvedTaskError{TaskName: head.Name}
	}

	var successors []*PlanStep[S]
	if isOp {
		clone := reg.Clone(p.state)
		next, ok := op(clone, head.Args)
		if ok {
			cost := reg.Cost(p.state, head)
			child := p.extendedByOperator(head, next, cost)
			successors = append(successors, child)
			traceSuccessor(reg, p, "operator", head)
		}
		return successors, nil
	}

	list, ok := method(p.state, head.Args)
	if !ok || list.IsFailed() {
		return successors, nil
	}
	if list.Completed() {
		successors = append(successors, p.consumedByCompletedMethod())
		traceSuccessor(reg, p, "method (completed)", head)
		return successors, nil
	}
	for _, option := range list.OptionList() {
		successors = append(successors, p.expandedByMethod(option))
		traceSuccessor(reg, p, "method option", head)
	}
	return successors, nil
}

func traceSuccessor[S any](reg *Registry[S], p *PlanStep[S], kind string, head Task) {
	if reg.Trace == nil {
		return
	}
	fmt.Fprintf(reg.Trace, "depth %d: %s %s\n", p.Depth(), kind, head)
}
