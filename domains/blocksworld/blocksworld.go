// Package blocksworld is a bundled demo domain for the planner: stack and
// unstack table-top blocks to reach a target configuration, using the
// classic near-optimal block-stacking algorithm (move a block straight to
// its final position when possible, otherwise park it on the table).
package blocksworld

import (
	"strconv"

	"anyhop/htnplan"
)

// State tracks, for every block, its position (another block's name, or
// "table") and whether it is clear (nothing stacked on it, and the hand
// isn't holding it), plus which block (if any) the hand holds. Blocks is
// the domain's fixed universe of block names in a caller-chosen order —
// since move_blocks scans them in order looking for the first one it can
// move, this order is what makes a DFS plan reproducible (a plain Go map
// range would reorder randomly between runs).
type State struct {
	Pos     map[string]string
	Clear   map[string]bool
	Holding string // "" means the hand is empty
	Blocks  []string
}

// NewState builds a blocks-world state from literal pos/clear maps plus the
// fixed iteration order move_blocks should consider blocks in.
func NewState(pos map[string]string, clear map[string]bool, blocks []string) State {
	return State{Pos: pos, Clear: clear, Blocks: blocks}
}

// Clone deep-copies a State so an operator's mutation never reaches the
// caller's parent state.
func Clone(s State) State {
	pos := make(map[string]string, len(s.Pos))
	for k, v := range s.Pos {
		pos[k] = v
	}
	clear := make(map[string]bool, len(s.Clear))
	for k, v := range s.Clear {
		clear[k] = v
	}
	return State{Pos: pos, Clear: clear, Holding: s.Holding, Blocks: s.Blocks}
}

// Goal names the target position for each block left unspecified blocks
// are left wherever move_blocks happens to put them.
type Goal struct {
	Pos map[string]string
}

// Pickup lifts a clear block directly from the table into the hand.
func Pickup(state State, args []any) (State, bool) {
	b := args[0].(string)
	if state.Pos[b] == "table" && state.Clear[b] && state.Holding == "" {
		state.Pos[b] = "hand"
		state.Clear[b] = false
		state.Holding = b
		return state, true
	}
	return state, false
}

// Putdown sets the held block on the table.
func Putdown(state State, args []any) (State, bool) {
	b := args[0].(string)
	if state.Pos[b] == "hand" {
		state.Pos[b] = "table"
		state.Clear[b] = true
		state.Holding = ""
		return state, true
	}
	return state, false
}

// Unstack lifts a clear block b off of block c into the hand.
func Unstack(state State, args []any) (State, bool) {
	b, c := args[0].(string), args[1].(string)
	if state.Pos[b] == c && c != "table" && state.Clear[b] && state.Holding == "" {
		state.Pos[b] = "hand"
		state.Clear[b] = false
		state.Holding = b
		state.Clear[c] = true
		return state, true
	}
	return state, false
}

// Stack places the held block b onto clear block c.
func Stack(state State, args []any) (State, bool) {
	b, c := args[0].(string), args[1].(string)
	if state.Pos[b] == "hand" && state.Clear[c] {
		state.Pos[b] = c
		state.Clear[b] = true
		state.Holding = ""
		state.Clear[c] = false
		return state, true
	}
	return state, false
}

// isDone reports whether b1's entire support chain already matches goal.
func isDone(b1 string, state State, goal Goal) bool {
	if b1 == "table" {
		return true
	}
	if want, ok := goal.Pos[b1]; ok && want != state.Pos[b1] {
		return false
	}
	if state.Pos[b1] == "table" {
		return true
	}
	return isDone(state.Pos[b1], state, goal)
}

const (
	statusDone         = "done"
	statusInaccessible = "inaccessible"
	statusMoveToTable  = "move-to-table"
	statusMoveToBlock  = "move-to-block"
	statusWaiting      = "waiting"
)

func status(b1 string, state State, goal Goal) string {
	if isDone(b1, state, goal) {
		return statusDone
	}
	if !state.Clear[b1] {
		return statusInaccessible
	}
	want, ok := goal.Pos[b1]
	if !ok || want == "table" {
		return statusMoveToTable
	}
	if isDone(want, state, goal) && state.Clear[want] {
		return statusMoveToBlock
	}
	return statusWaiting
}

func allBlocks(state State) []string {
	return state.Blocks
}

// MoveBlocks is the top-level decomposition: move any block that can reach
// its final position directly, else move a table-bound block to the table,
// else (every remaining block is "waiting" on another move) nondetermin-
// istically try moving one of them to the table, one option per block.
func MoveBlocks(state State, args []any) (htnplan.TaskList, bool) {
	goal := args[0].(Goal)
	blocks := allBlocks(state)

	done := true
	for _, b := range blocks {
		if status(b, state, goal) != statusDone {
			done = false
			break
		}
	}
	if done {
		return htnplan.Completed(), true
	}

	for _, b1 := range blocks {
		switch status(b1, state, goal) {
		case statusMoveToTable:
			return htnplan.SingleOption(htnplan.NewTask("move_one", b1, "table"), htnplan.NewTask("move_blocks", goal)), true
		case statusMoveToBlock:
			return htnplan.SingleOption(htnplan.NewTask("move_one", b1, goal.Pos[b1]), htnplan.NewTask("move_blocks", goal)), true
		}
	}

	var options [][]htnplan.Task
	for _, b := range blocks {
		if status(b, state, goal) == statusWaiting && state.Pos[b] != "table" {
			options = append(options, []htnplan.Task{htnplan.NewTask("move_one", b, "table"), htnplan.NewTask("move_blocks", goal)})
		}
	}
	if len(options) == 0 {
		return htnplan.Failed(), true
	}
	return htnplan.Options(options...), true
}

// MoveOne decomposes moving b1 to dest into a get-then-put pair, or is a
// no-op (Completed) if b1 is already there.
func MoveOne(state State, args []any) (htnplan.TaskList, bool) {
	b1, dest := args[0].(string), args[1].(string)
	if state.Pos[b1] == dest {
		return htnplan.Completed(), true
	}
	return htnplan.SingleOption(htnplan.NewTask("get", b1), htnplan.NewTask("put", b1, dest)), true
}

// Get decomposes fetching b1 into a pickup (if it's on the table) or an
// unstack (if it's on another block).
func Get(state State, args []any) (htnplan.TaskList, bool) {
	b1 := args[0].(string)
	if !state.Clear[b1] {
		return htnplan.Failed(), true
	}
	if state.Pos[b1] == "table" {
		return htnplan.SingleOption(htnplan.NewTask("pickup", b1)), true
	}
	return htnplan.SingleOption(htnplan.NewTask("unstack", b1, state.Pos[b1])), true
}

// Put decomposes placing the held block b1 onto b2 into a putdown (table)
// or a stack (another block).
func Put(state State, args []any) (htnplan.TaskList, bool) {
	b1, b2 := args[0].(string), args[1].(string)
	if state.Holding != b1 {
		return htnplan.Failed(), true
	}
	if b2 == "table" {
		return htnplan.SingleOption(htnplan.NewTask("putdown", b1)), true
	}
	return htnplan.SingleOption(htnplan.NewTask("stack", b1, b2)), true
}

// NewRegistry builds a htnplan.Registry wired with every blocks-world
// operator and method.
func NewRegistry() *htnplan.Registry[State] {
	reg := htnplan.NewRegistry[State](Clone)
	reg.DeclareOperators(map[string]htnplan.Operator[State]{
		"pickup":  Pickup,
		"putdown": Putdown,
		"unstack": Unstack,
		"stack":   Stack,
	})
	reg.DeclareMethods(map[string]htnplan.Method[State]{
		"move_blocks": MoveBlocks,
		"move_one":    MoveOne,
		"get":         Get,
		"put":         Put,
	})
	return reg
}

// ThreeBlockSwap is the classic "swap the tops of two towers" fixture: a
// sits on b, b and c sit on the table; the goal puts c on b, b on a, and a
// on the table.
func ThreeBlockSwap() (State, Goal) {
	state := NewState(
		map[string]string{"a": "b", "b": "table", "c": "table"},
		map[string]bool{"c": true, "b": false, "a": true},
		[]string{"c", "b", "a"},
	)
	goal := Goal{Pos: map[string]string{"c": "b", "b": "a", "a": "table"}}
	return state, goal
}

// Large is the 19-block bw_large_d benchmark from the SHOP distribution:
// four towers to rearrange into three, with a known deterministic DFS plan.
func Large() (State, Goal) {
	clear := map[string]bool{}
	blocks := make([]string, 0, 19)
	for i := 1; i <= 19; i++ {
		b := strconv.Itoa(i)
		clear[b] = false
		blocks = append(blocks, b)
	}
	for _, b := range []string{"1", "11", "9", "19"} {
		clear[b] = true
	}

	state := NewState(
		map[string]string{
			"1": "12", "12": "13", "13": "table", "11": "10", "10": "5", "5": "4", "4": "14", "14": "15", "15": "table",
			"9": "8", "8": "7", "7": "6", "6": "table",
			"19": "18", "18": "17", "17": "16", "16": "3", "3": "2", "2": "table",
		},
		clear,
		blocks,
	)

	goal := Goal{Pos: map[string]string{
		"15": "13", "13": "8", "8": "9", "9": "4", "4": "table",
		"12": "2", "2": "3", "3": "16", "16": "11", "11": "7", "7": "6", "6": "table",
	}}
	return state, goal
}
