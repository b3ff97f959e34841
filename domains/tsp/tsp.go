// Package tsp is a bundled demo domain for the planner: tour every city once
// and return to the start, minimizing total Euclidean travel distance. The
// complete_tour_from method offers one option per unvisited city, which
// gives the search a branching factor of n-1 at the root and makes this the
// best stress domain for the cost-driven strategies.
package tsp

import (
	"math"

	"anyhop/htnplan"
)

// Point is a 2D Euclidean coordinate.
type Point struct {
	X, Y float64
}

// EuclideanDistance is the domain's cost metric between two points.
func EuclideanDistance(a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// State holds the fixed city coordinates (city 0 is always the tour's start
// and end), the city currently occupied, and which cities have been visited.
type State struct {
	Locations []Point
	At        int
	Visited   map[int]bool
}

// NewState builds a tour state starting at city 0 with nothing yet visited.
func NewState(locations []Point) State {
	return State{Locations: locations, At: 0, Visited: map[int]bool{}}
}

// Clone deep-copies a State so an operator's mutation never reaches the
// caller's parent state.
func Clone(s State) State {
	visited := make(map[int]bool, len(s.Visited))
	for k, v := range s.Visited {
		visited[k] = v
	}
	return State{Locations: s.Locations, At: s.At, Visited: visited}
}

// Cost is the registry's cost function: the Euclidean distance the operator
// named by step travels from the state's current city to its destination.
func Cost(state State, step htnplan.Task) float64 {
	dest := step.Args[0].(int)
	return EuclideanDistance(state.Locations[state.At], state.Locations[dest])
}

// Move travels directly to newCity, provided it hasn't been visited yet.
func Move(state State, args []any) (State, bool) {
	newCity := args[0].(int)
	if state.Visited[newCity] {
		return state, false
	}
	state.Visited[newCity] = true
	state.At = newCity
	return state, true
}

// CompleteTourFrom is the method that nondeterministically picks the next
// unvisited city to travel to, one option per candidate, recursing until
// every city has been visited; once only the start city (0) remains to
// close the loop, it commits to that single move directly since no further
// choice remains.
func CompleteTourFrom(state State, args []any) (htnplan.TaskList, bool) {
	if len(state.Visited) == len(state.Locations) {
		return htnplan.Completed(), true
	}

	var options [][]htnplan.Task
	for city := 1; city < len(state.Locations); city++ {
		if !state.Visited[city] {
			options = append(options, []htnplan.Task{
				htnplan.NewTask("move", city),
				htnplan.NewTask("complete_tour_from", city),
			})
		}
	}
	if len(options) == 0 {
		return htnplan.SingleOption(htnplan.NewTask("move", 0)), true
	}
	return htnplan.Options(options...), true
}

// NewRegistry builds a htnplan.Registry wired with the TSP operator, method,
// and Euclidean-distance cost function.
func NewRegistry() *htnplan.Registry[State] {
	reg := htnplan.NewRegistry[State](Clone)
	reg.Cost = Cost
	reg.DeclareOperators(map[string]htnplan.Operator[State]{
		"move": Move,
	})
	reg.DeclareMethods(map[string]htnplan.Method[State]{
		"complete_tour_from": CompleteTourFrom,
	})
	return reg
}
