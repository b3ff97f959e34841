package htnplan

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPyhop(t *testing.T) {
	Convey("Given a solvable counting domain", t, func() {
		reg := newCounterRegistry(5)

		Convey("Pyhop returns the first complete plan found", func() {
			plan, ok, err := Pyhop(reg, counterState{n: 0}, []Task{NewTask("reach", 5)})
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(plan, ShouldHaveLength, 5)
		})
	})

	Convey("Given a task name registered as neither operator nor method", t, func() {
		reg := newCounterRegistry(5)

		Convey("Pyhop returns ok=false and an error", func() {
			_, ok, err := Pyhop(reg, counterState{n: 0}, []Task{NewTask("no_such_task")})
			So(err, ShouldNotBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestAnyhopMonotonicCost(t *testing.T) {
	Convey("Given a branching counting domain with an exhaustive DFS search", t, func() {
		reg := newBranchingCounterRegistry()

		Convey("Anyhop emits every complete plan in strictly decreasing cost order", func() {
			results, err := Anyhop(reg, counterState{n: 0}, []Task{NewTask("reach", 4)}, math.Inf(1), nil)
			So(err, ShouldBeNil)
			So(len(results), ShouldBeGreaterThan, 0)
			for i := 1; i < len(results); i++ {
				So(results[i].Cost, ShouldBeLessThan, results[i-1].Cost)
			}
			cheapest := results[len(results)-1]
			So(cheapest.Cost, ShouldEqual, 2)
		})
	})

	Convey("Given branch-and-bound disabled", t, func() {
		reg := newBranchingCounterRegistry()

		Convey("Anyhop still finds the same cheapest plan, just via exhaustive enumeration", func() {
			results, err := Anyhop(reg, counterState{n: 0}, []Task{NewTask("reach", 4)}, math.Inf(1), &AnyhopOptions[counterState]{
				DisableBranchBound: true,
			})
			So(err, ShouldBeNil)
			So(results[len(results)-1].Cost, ShouldEqual, 2)
		})
	})
}

func TestAnyhopHybridQueueFrontier(t *testing.T) {
	Convey("Given the HybridQueue frontier", t, func() {
		reg := newBranchingCounterRegistry()

		Convey("Anyhop still converges to the cheapest plan", func() {
			results, err := Anyhop(reg, counterState{n: 0}, []Task{NewTask("reach", 4)}, math.Inf(1), &AnyhopOptions[counterState]{
				Frontier: func() Frontier[counterState] { return NewHybridQueue[counterState]() },
			})
			So(err, ShouldBeNil)
			So(results[len(results)-1].Cost, ShouldEqual, 2)
		})
	})
}

func TestAnyhopProgressCallback(t *testing.T) {
	Convey("Given a Progress callback attached to Anyhop", t, func() {
		reg := newCounterRegistry(3)
		var events []ProgressEvent

		Convey("it fires once per emitted plan", func() {
			_, err := Anyhop(reg, counterState{n: 0}, []Task{NewTask("reach", 3)}, math.Inf(1), &AnyhopOptions[counterState]{
				Progress: func(e ProgressEvent) { events = append(events, e) },
			})
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 1)
			So(events[0].Cost, ShouldEqual, 3)
		})
	})
}
