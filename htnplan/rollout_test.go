package htnplan

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRandhop(t *testing.T) {
	Convey("Given a solvable counting domain", t, func() {
		reg := newCounterRegistry(5)

		Convey("Randhop with no cost cap always reaches a complete plan", func() {
			node, ok := Randhop(reg, counterState{n: 0}, []Task{NewTask("reach", 5)}, math.Inf(1))
			So(ok, ShouldBeTrue)
			So(node.Complete(), ShouldBeTrue)
			So(node.TotalCost(), ShouldEqual, 5)
		})

		Convey("Randhop aborts once the running cost would meet the cap", func() {
			_, ok := Randhop(reg, counterState{n: 0}, []Task{NewTask("reach", 5)}, 2)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given an immediately unresolved task", t, func() {
		reg := newCounterRegistry(1)

		Convey("Randhop returns ok=false rather than panicking", func() {
			_, ok := Randhop(reg, counterState{}, []Task{NewTask("no_such_task")}, math.Inf(1))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRandhopSteps(t *testing.T) {
	Convey("Given a solvable counting domain", t, func() {
		reg := newCounterRegistry(3)

		Convey("RandhopSteps returns the full visited chain, root first, final step complete", func() {
			steps, ok := RandhopSteps(reg, counterState{n: 0}, []Task{NewTask("reach", 3)}, math.Inf(1))
			So(ok, ShouldBeTrue)
			So(len(steps), ShouldBeGreaterThan, 1)
			So(steps[0].Depth(), ShouldEqual, 0)
			So(steps[len(steps)-1].Complete(), ShouldBeTrue)
		})
	})
}

func TestNRandom(t *testing.T) {
	Convey("Given a solvable counting domain", t, func() {
		reg := newCounterRegistry(4)

		Convey("NRandom collects one PlanResult per successful rollout", func() {
			results := NRandom(reg, counterState{n: 0}, []Task{NewTask("reach", 4)}, 5)
			So(results, ShouldHaveLength, 5)
			for _, r := range results {
				So(r.Cost, ShouldEqual, 4)
			}
		})
	})
}

func TestAnyhopRandom(t *testing.T) {
	Convey("Given a branching counting domain", t, func() {
		reg := newBranchingCounterRegistry()

		Convey("AnyhopRandom emits a strictly improving sequence of plans within its time budget", func() {
			results := AnyhopRandom(reg, counterState{n: 0}, []Task{NewTask("reach", 4)}, 0.2)
			So(len(results), ShouldBeGreaterThan, 0)
			for i := 1; i < len(results); i++ {
				So(results[i].Cost, ShouldBeLessThan, results[i-1].Cost)
			}
			So(results[len(results)-1].Cost, ShouldBeGreaterThanOrEqualTo, 2)
		})
	})
}
