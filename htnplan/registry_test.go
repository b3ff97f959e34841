package htnplan

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistryDeclarations(t *testing.T) {
	Convey("Given a fresh Registry", t, func() {
		reg := newBranchingCounterRegistry()

		Convey("Operators and Methods list every declared name, sorted", func() {
			So(reg.Operators(), ShouldResemble, []string{"double_inc", "inc"})
			So(reg.Methods(), ShouldResemble, []string{"reach"})
		})

		Convey("ResetNodeExpansions zeroes the counter", func() {
			reg.NodesExpanded = 42
			reg.ResetNodeExpansions()
			So(reg.NodesExpanded, ShouldEqual, 0)
		})

		Convey("DeclareOperators replaces an existing registration by name", func() {
			called := false
			reg.DeclareOperators(map[string]Operator[counterState]{
				"inc": func(state counterState, args []any) (counterState, bool) {
					called = true
					state.n += 100
					return state, true
				},
			})
			next, ok := reg.operators["inc"](counterState{n: 0}, nil)
			So(ok, ShouldBeTrue)
			So(called, ShouldBeTrue)
			So(next.n, ShouldEqual, 100)
		})
	})
}

func TestTaskKeyAndString(t *testing.T) {
	Convey("Given two tasks with equal name and arguments", t, func() {
		a := NewTask("stack", "a", "b")
		b := NewTask("stack", "a", "b")

		Convey("their keys match", func() {
			So(a.Key(), ShouldEqual, b.Key())
		})

		Convey("a different argument produces a different key", func() {
			c := NewTask("stack", "a", "c")
			So(a.Key(), ShouldNotEqual, c.Key())
		})

		Convey("String renders name and arguments", func() {
			So(a.String(), ShouldEqual, "stack(a, b)")
			So(NewTask("noop").String(), ShouldEqual, "noop")
		})
	})
}

func TestTaskListConstructors(t *testing.T) {
	Convey("Given the TaskList constructors", t, func() {
		Convey("Completed is complete and not failed", func() {
			tl := Completed()
			So(tl.Completed(), ShouldBeTrue)
			So(tl.IsFailed(), ShouldBeFalse)
		})

		Convey("Failed has no options and is not completed", func() {
			tl := Failed()
			So(tl.IsFailed(), ShouldBeTrue)
		})

		Convey("SingleOption wraps exactly one decomposition", func() {
			tl := SingleOption(NewTask("a"), NewTask("b"))
			So(tl.OptionList(), ShouldHaveLength, 1)
			So(tl.OptionList()[0], ShouldHaveLength, 2)
		})

		Convey("Options wraps several alternatives in order", func() {
			tl := Options([]Task{NewTask("a")}, []Task{NewTask("b")})
			So(tl.OptionList(), ShouldHaveLength, 2)
			So(tl.OptionList()[0][0].Name, ShouldEqual, "a")
			So(tl.OptionList()[1][0].Name, ShouldEqual, "b")
		})
	})
}
