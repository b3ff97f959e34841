package htnplan

import "fmt"

// UnresolvedTaskError means a task's name matched neither a registered
// operator nor a registered method: a domain-definition bug, not an
// ordinary planning failure. The decomposition engine surfaces this loudly
// rather than silently treating the branch as a dead end, since a dead end
// and a typo in an operator name look identical otherwise.
type UnresolvedTaskError struct {
	TaskName string
}

func (e *UnresolvedTaskError) Error() string {
	return fmt.Sprintf("htnplan: task %q resolves to neither an operator nor a method", e.TaskName)
}

// AmbiguousTaskError means a task's name was registered as both an operator
// and a method; a name must identify exactly one of the two.
type AmbiguousTaskError struct {
	TaskName string
}

func (e *AmbiguousTaskError) Error() string {
	return fmt.Sprintf("htnplan: task %q is registered as both an operator and a method", e.TaskName)
}
