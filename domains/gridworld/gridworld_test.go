package gridworld

import (
	"testing"

	"anyhop/htnplan"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPyhopFindsRouteOnOpenGrid(t *testing.T) {
	Convey("Given a 3x3 grid with no obstacles, starting at (0,0) facing North", t, func() {
		reg := NewRegistry()
		state := NewState(3, 3, Point{0, 0}, North)
		goal := Point{2, 2}

		Convey("Pyhop finds a plan that reaches the goal cell", func() {
			plan, ok, err := htnplan.Pyhop(reg, state, []htnplan.Task{
				htnplan.NewTask("find_route", Point{0, 0}, North, goal),
			})
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			replayed := htnplan.PlanStates(reg, state, plan)
			final := replayed[len(replayed)-1]
			So(final.At, ShouldResemble, goal)
		})
	})
}

func TestAnyhopFindsShortRouteOnOpenGrid(t *testing.T) {
	Convey("Given the same open 3x3 grid", t, func() {
		reg := NewRegistry()
		state := NewState(3, 3, Point{0, 0}, North)
		goal := Point{2, 2}

		Convey("Anyhop's cheapest plan reaches the goal in at most 5 moves/turns", func() {
			results, err := htnplan.Anyhop(reg, state, []htnplan.Task{
				htnplan.NewTask("find_route", Point{0, 0}, North, goal),
			}, 2.0, &htnplan.AnyhopOptions[State]{})
			So(err, ShouldBeNil)
			So(results, ShouldNotBeEmpty)

			best := results[len(results)-1]
			So(len(best.Plan), ShouldBeLessThanOrEqualTo, 5)

			replayed := htnplan.PlanStates(reg, state, best.Plan)
			final := replayed[len(replayed)-1]
			So(final.At, ShouldResemble, goal)
		})
	})
}

func TestMoveOneStepRejectsBlockedEdge(t *testing.T) {
	Convey("Given a grid with an obstacle directly north of the start", t, func() {
		state := NewState(3, 3, Point{1, 1}, North)
		state.AddObstacle(Point{1, 1}, North)

		Convey("MoveOneStep north from the start fails", func() {
			_, ok := MoveOneStep(state, []any{Point{1, 1}, North})
			So(ok, ShouldBeFalse)
		})

		Convey("MoveOneStep east from the start succeeds", func() {
			state.Facing = East
			next, ok := MoveOneStep(state, []any{Point{1, 1}, East})
			So(ok, ShouldBeTrue)
			So(next.At, ShouldResemble, Point{2, 1})
		})
	})
}

func TestMoveOneStepRejectsOutOfBounds(t *testing.T) {
	Convey("Given an agent at the grid's northern edge facing North", t, func() {
		state := NewState(3, 3, Point{0, 2}, North)

		Convey("stepping further north fails", func() {
			_, ok := MoveOneStep(state, []any{Point{0, 2}, North})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestTurnToMarksNewHeadingVisited(t *testing.T) {
	Convey("Given an agent facing North at the origin", t, func() {
		state := NewState(3, 3, Point{0, 0}, North)

		Convey("turning to East updates Facing and marks (origin, East) visited", func() {
			next, ok := TurnTo(state, []any{East})
			So(ok, ShouldBeTrue)
			So(next.Facing, ShouldEqual, East)
			So(next.isVisited(Point{0, 0}, East), ShouldBeTrue)
		})
	})
}

func TestFindRouteReportsCompletedAtGoal(t *testing.T) {
	Convey("Given an agent already standing at the goal", t, func() {
		state := NewState(3, 3, Point{2, 2}, North)

		Convey("FindRoute reports the task complete", func() {
			list, ok := FindRoute(state, []any{Point{2, 2}, North, Point{2, 2}})
			So(ok, ShouldBeTrue)
			So(list.Completed(), ShouldBeTrue)
		})
	})
}

func TestFindRouteOffersNoOptionsWhenFullySurrounded(t *testing.T) {
	Convey("Given an agent boxed in on all four sides with every heading already visited", t, func() {
		state := NewState(3, 3, Point{1, 1}, North)
		for _, f := range Facings {
			state.AddObstacle(Point{1, 1}, f)
			state.markVisited(Point{1, 1}, f)
		}

		Convey("FindRoute returns an empty (failed) TaskList, not completed", func() {
			list, ok := FindRoute(state, []any{Point{1, 1}, North, Point{2, 2}})
			So(ok, ShouldBeTrue)
			So(list.IsFailed(), ShouldBeTrue)
		})
	})
}
