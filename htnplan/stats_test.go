package htnplan

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOutcomeCounterOrdering(t *testing.T) {
	Convey("Given two counters, one with successes and one with only failures", t, func() {
		withSuccess := NewOutcomeCounter()
		withSuccess.Record(10)
		onlyFailures := NewOutcomeCounter()
		onlyFailures.Failure()

		Convey("the one with a success is always better", func() {
			So(withSuccess.Less(onlyFailures), ShouldBeTrue)
			So(onlyFailures.Less(withSuccess), ShouldBeFalse)
		})
	})

	Convey("Given two all-failure counters", t, func() {
		fewerFailures := NewOutcomeCounter()
		fewerFailures.Failure()
		moreFailures := NewOutcomeCounter()
		moreFailures.Failure()
		moreFailures.Failure()

		Convey("fewer failures is better", func() {
			So(fewerFailures.Less(moreFailures), ShouldBeTrue)
		})
	})

	Convey("Given counter A {10,12,14} no failures and counter B {8,9,10} with 2 failures", t, func() {
		a := NewOutcomeCounter()
		a.Record(10)
		a.Record(12)
		a.Record(14)
		b := NewOutcomeCounter()
		b.Record(8)
		b.Record(9)
		b.Record(10)
		b.Failure()
		b.Failure()

		Convey("with failure penalty 2*max(14,10)=28, A's penalized mean is 12 and B's is 16.6", func() {
			penalty := 2 * math.Max(a.Max, b.Max)
			So(penalty, ShouldEqual, 28)
			So(a.TestMean(penalty), ShouldEqual, 12)
			So(b.TestMean(penalty), ShouldAlmostEqual, 16.6, 0.001)
			So(a.Less(b), ShouldBeTrue)
		})
	})
}

func TestConfidenceIntervalSingleValue(t *testing.T) {
	Convey("Given a single sample", t, func() {
		lo, mean, hi := ConfidenceInterval([]float64{5})

		Convey("the interval collapses to that value", func() {
			So(lo, ShouldEqual, 5)
			So(mean, ShouldEqual, 5)
			So(hi, ShouldEqual, 5)
		})
	})
}

func TestConfidenceIntervalBracketsMean(t *testing.T) {
	Convey("Given a handful of samples around a known mean", t, func() {
		values := []float64{8, 9, 10, 11, 12}
		lo, mean, hi := ConfidenceInterval(values)

		Convey("the interval is centered on the mean and brackets it", func() {
			So(mean, ShouldEqual, 10)
			So(lo, ShouldBeLessThan, mean)
			So(hi, ShouldBeGreaterThan, mean)
		})
	})
}
