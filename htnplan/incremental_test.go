package htnplan

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAnyhopRandomIncremental(t *testing.T) {
	Convey("Given a branching counting domain", t, func() {
		reg := newBranchingCounterRegistry()

		Convey("AnyhopRandomIncremental emits a strictly improving sequence of plans", func() {
			results := AnyhopRandomIncremental(reg, counterState{n: 0}, []Task{NewTask("reach", 4)}, 0.3, 3, nil)
			So(len(results), ShouldBeGreaterThan, 0)
			for i := 1; i < len(results); i++ {
				So(results[i].Cost, ShouldBeLessThan, results[i-1].Cost)
			}
		})
	})
}

func TestDefaultGrowThreshold(t *testing.T) {
	Convey("Given the default grow-threshold policy", t, func() {
		Convey("it doubles its input", func() {
			So(DefaultGrowThreshold(3), ShouldEqual, 6)
			So(DefaultGrowThreshold(6), ShouldEqual, 12)
		})
	})
}
