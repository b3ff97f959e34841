// Package htnplan is the search engine behind a Hierarchical Task Network
// planner: given a world state and a list of top-level tasks, it expands
// partial plans by consulting operator/method tables and searches the
// resulting tree for cheap, complete plans. It is generic over the state
// type, so a domain package supplies its own state struct, operators, and
// methods and the engine never looks inside it.
package htnplan

import (
	"fmt"
	"strings"
)

// Task is a grounded task: an operator or method name plus its arguments.
// Arguments are untyped since domains pass heterogeneous values (block
// names, coordinates, goal states); the registry dispatches purely on Name.
type Task struct {
	Name string
	Args []any
}

// NewTask builds a task from a name and its arguments.
func NewTask(name string, args ...any) Task {
	return Task{Name: name, Args: args}
}

// Key returns a stable structural hash of the task, suitable for keying the
// action tracker's and incremental tracker's outcome-counter maps. Two tasks
// with the same name and equal (by %v rendering) arguments produce the same
// key regardless of map iteration order or argument identity.
func (t Task) Key() string {
	var b strings.Builder
	b.WriteString(t.Name)
	for _, a := range t.Args {
		b.WriteByte('\x1f') // unit separator: vanishingly unlikely in domain values
		fmt.Fprintf(&b, "%v", a)
	}
	return b.String()
}

func (t Task) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return t.Name + "(" + strings.Join(parts, ", ") + ")"
}
