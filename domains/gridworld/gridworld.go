// Package gridworld is a bundled demo domain for the planner: navigate a
// rectangular grid from a starting cell and heading to a goal cell, turning
// or stepping forward one cell at a time while avoiding obstacles. The
// find_route method does its own visited-set pruning through the state so
// the search never revisits a (cell, heading) decision point.
package gridworld

import "anyhop/htnplan"

// Facing is one of the four cardinal headings an agent can face.
type Facing int

const (
	North Facing = iota
	South
	East
	West
)

// delta is the (dx, dy) a single forward step in this heading applies.
func (f Facing) delta() Point {
	switch f {
	case North:
		return Point{0, 1}
	case South:
		return Point{0, -1}
	case East:
		return Point{1, 0}
	default: // West
		return Point{-1, 0}
	}
}

// String names the heading, for use in Task arguments rendered by Task.Key.
func (f Facing) String() string {
	switch f {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	default:
		return "W"
	}
}

// Facings lists every heading in a fixed order, so find_route's turn
// enumeration is reproducible instead of ranging over an unordered set.
var Facings = [4]Facing{North, South, East, West}

// Point is an integer grid cell.
type Point struct {
	X, Y int
}

// Add returns the cell reached by moving delta from p.
func (p Point) Add(delta Point) Point {
	return Point{p.X + delta.X, p.Y + delta.Y}
}

// obstacle names a directed edge (a cell, a heading facing out of it) that
// cannot be crossed.
type obstacle struct {
	at     Point
	facing Facing
}

// State holds an agent's position and heading on a fixed-size grid, the set
// of blocked (cell, heading) edges, and the (cell, heading) pairs already
// visited by find_route's own search, which prunes revisiting the same
// decision point.
type State struct {
	At      Point
	Facing  Facing
	Width   int
	Height  int
	Visited map[Point]map[Facing]bool
	Blocked map[obstacle]bool
}

// NewState builds a grid with no obstacles and start position `at` facing
// `facing`, with the start itself already marked visited.
func NewState(width, height int, at Point, facing Facing) State {
	s := State{
		At:      at,
		Facing:  facing,
		Width:   width,
		Height:  height,
		Visited: map[Point]map[Facing]bool{},
		Blocked: map[obstacle]bool{},
	}
	s.markVisited(at, facing)
	return s
}

func (s *State) markVisited(at Point, facing Facing) {
	set, ok := s.Visited[at]
	if !ok {
		set = map[Facing]bool{}
		s.Visited[at] = set
	}
	set[facing] = true
}

func (s State) isVisited(at Point, facing Facing) bool {
	set, ok := s.Visited[at]
	return ok && set[facing]
}

func (s State) inBounds(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// projection is the cell reached by stepping forward from `at` while facing
// `facing`, or ok=false if that edge is blocked or leaves the grid.
func (s State) projection(at Point, facing Facing) (Point, bool) {
	if s.Blocked[obstacle{at: at, facing: facing}] {
		return Point{}, false
	}
	future := at.Add(facing.delta())
	if !s.inBounds(future) {
		return Point{}, false
	}
	return future, true
}

// Clone deep-copies a State so an operator's mutation never reaches the
// caller's parent state.
func Clone(s State) State {
	visited := make(map[Point]map[Facing]bool, len(s.Visited))
	for p, set := range s.Visited {
		copied := make(map[Facing]bool, len(set))
		for f, v := range set {
			copied[f] = v
		}
		visited[p] = copied
	}
	blocked := make(map[obstacle]bool, len(s.Blocked))
	for o, v := range s.Blocked {
		blocked[o] = v
	}
	return State{
		At:      s.At,
		Facing:  s.Facing,
		Width:   s.Width,
		Height:  s.Height,
		Visited: visited,
		Blocked: blocked,
	}
}

// AddObstacle blocks the edge leaving `at` in `facing`, and the matching
// reverse edge on the far side, so the wall blocks travel in both
// directions.
func (s *State) AddObstacle(at Point, facing Facing) {
	s.Blocked[obstacle{at: at, facing: facing}] = true
	far := at.Add(facing.delta())
	if s.inBounds(far) {
		s.Blocked[obstacle{at: far, facing: opposite(facing)}] = true
	}
}

func opposite(f Facing) Facing {
	switch f {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// MoveOneStep steps one cell forward in the current heading, provided the
// destination is in bounds and the edge isn't blocked.
func MoveOneStep(state State, args []any) (State, bool) {
	at := args[0].(Point)
	facing := args[1].(Facing)
	if state.At != at || state.Facing != facing {
		return state, false
	}
	future, ok := state.projection(at, facing)
	if !ok {
		return state, false
	}
	state.At = future
	state.markVisited(future, facing)
	return state, true
}

// TurnTo rotates in place to face a new heading.
func TurnTo(state State, args []any) (State, bool) {
	facing := args[0].(Facing)
	state.Facing = facing
	state.markVisited(state.At, facing)
	return state, true
}

// FindRoute recursively searches for a path to goal: first by trying to
// step forward in the current heading (if that edge hasn't been visited
// already), then by trying every other heading that hasn't been visited at
// this cell. The (at, facing) guard parameters bind the method to the
// decision point that produced it.
func FindRoute(state State, args []any) (htnplan.TaskList, bool) {
	at := args[0].(Point)
	facing := args[1].(Facing)
	goal := args[2].(Point)
	if state.At != at || state.Facing != facing {
		return htnplan.TaskList{}, false
	}
	if at == goal {
		return htnplan.Completed(), true
	}

	var options [][]htnplan.Task
	if future, ok := state.projection(at, facing); ok && !state.isVisited(future, facing) {
		options = append(options, []htnplan.Task{
			htnplan.NewTask("move_one_step", at, facing),
			htnplan.NewTask("find_route", future, facing, goal),
		})
	}
	for _, f := range Facings {
		if f == facing || state.isVisited(at, f) {
			continue
		}
		if future, ok := state.projection(at, f); ok && !state.isVisited(future, f) {
			options = append(options, []htnplan.Task{
				htnplan.NewTask("turn_to", f),
				htnplan.NewTask("find_route", at, f, goal),
			})
		}
	}
	if len(options) == 0 {
		return htnplan.TaskList{}, true
	}
	return htnplan.Options(options...), true
}

// NewRegistry builds a htnplan.Registry wired with the grid-world
// operators, method, and unit-cost metric (each move or turn costs 1).
func NewRegistry() *htnplan.Registry[State] {
	reg := htnplan.NewRegistry[State](Clone)
	reg.DeclareOperators(map[string]htnplan.Operator[State]{
		"move_one_step": MoveOneStep,
		"turn_to":       TurnTo,
	})
	reg.DeclareMethods(map[string]htnplan.Method[State]{
		"find_route": FindRoute,
	})
	return reg
}
