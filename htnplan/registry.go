package htnplan

import (
	"io"
	"math/rand"
	"sort"
)

// Operator is a primitive, directly executable action. It receives a fresh
// clone of the parent state plus the task's arguments and returns the next
// state, or ok=false if its precondition isn't met ("the null result").
type Operator[S any] func(state S, args []any) (next S, ok bool)

// Method is a decomposition rule. It receives the current state by shared,
// read-only reference (never a clone — methods must not mutate) and returns
// the set of alternative subtask sequences, or ok=false if it cannot expand
// the task at all (equivalent to an empty TaskList).
type Method[S any] func(state S, args []any) (list TaskList, ok bool)

// CloneFunc produces an independent copy of a state, used before every
// operator invocation so a rejected branch never mutates its parent.
type CloneFunc[S any] func(S) S

// CostFunc prices a single operator application, given the *parent* state
// (the state before the operator ran) and the grounded task. The default
// registered by NewRegistry assigns unit cost to every task.
type CostFunc[S any] func(state S, task Task) float64

// Registry owns the operator/method name tables for one planner instance,
// plus the handful of pluggable behaviors (clone, cost, RNG, trace sink)
// every driver in this package needs. The search algorithms themselves live
// in anyhop.go/rollout.go/incremental.go/tracker.go so each driver can be
// tested independently of the others.
type Registry[S any] struct {
	operators map[string]Operator[S]
	methods   map[string]Method[S]

	Clone CloneFunc[S]
	Cost  CostFunc[S]
	Rand  *rand.Rand

	// Trace, if non-nil, receives a line of decomposition tracing per
	// successor produced. Nil (the default) means silent: the search loops
	// do no I/O unless the caller explicitly opts in.
	Trace io.Writer

	// NodesExpanded counts PlanStep expansions across the lifetime of this
	// registry; drivers increment it and may reset it between calls.
	NodesExpanded int
}

// NewRegistry builds an empty registry with the given clone function, unit
// cost, and a fixed, reproducible default seed — never the process clock —
// so an unseeded registry still replays identically across runs.
func NewRegistry[S any](clone CloneFunc[S]) *Registry[S] {
	return &Registry[S]{
		operators: map[string]Operator[S]{},
		methods:   map[string]Method[S]{},
		Clone:     clone,
		Cost:      func(S, Task) float64 { return 1 },
		Rand:      rand.New(rand.NewSource(1)),
	}
}

// DeclareOperators registers every operator under its map key. A second call
// with the same name replaces the earlier registration.
func (r *Registry[S]) DeclareOperators(ops map[string]Operator[S]) {
	for name, op := range ops {
		r.operators[name] = op
	}
}

// DeclareMethods registers every method under its map key.
func (r *Registry[S]) DeclareMethods(methods map[string]Method[S]) {
	for name, m := range methods {
		r.methods[name] = m
	}
}

// Operators returns every registered operator name, sorted, for display.
func (r *Registry[S]) Operators() []string {
	return sortedKeysOps(r.operators)
}

// Methods returns every registered method name, sorted.
func (r *Registry[S]) Methods() []string {
	return sortedKeysMethods(r.methods)
}

func sortedKeysOps[S any](m map[string]Operator[S]) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeysMethods[S any](m map[string]Method[S]) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResetNodeExpansions zeroes the expansion counter; every top-level driver
// calls this on entry so the count covers one planning call.
func (r *Registry[S]) ResetNodeExpansions() {
	r.NodesExpanded = 0
}
