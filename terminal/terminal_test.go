package terminal

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDiscrete(t *testing.T) {
	Convey("Given a Discrete terminal set over 10 states with density 0.3", t, func() {
		term, warned := NewDiscrete(10, 0.3)

		Convey("It marks exactly int(density*size) states terminal", func() {
			So(warned, ShouldBeFalse)
			So(term.NumTerminal(), ShouldEqual, 3)
			So(term.IsTerminal(7), ShouldBeTrue)
			So(term.IsTerminal(8), ShouldBeTrue)
			So(term.IsTerminal(9), ShouldBeTrue)
			So(term.IsTerminal(6), ShouldBeFalse)
		})
	})

	Convey("Given a density that rounds to zero terminal states", t, func() {
		term, warned := NewDiscrete(10, 0.01)

		Convey("At least one terminal state is kept and a warning is raised", func() {
			So(warned, ShouldBeTrue)
			So(term.NumTerminal(), ShouldEqual, 1)
			So(term.IsTerminal(9), ShouldBeTrue)
		})
	})
}

func TestContinuous(t *testing.T) {
	Convey("Given a Continuous terminal set centred at (0,0) and (5,5) with edge 2", t, func() {
		term, err := NewContinuous([][]float64{{0, 0}, {5, 5}}, 2, 2)
		So(err, ShouldBeNil)

		Convey("Points inside either hypercube are terminal", func() {
			So(term.IsTerminal([]float64{0.5, -0.5}), ShouldBeTrue)
			So(term.IsTerminal([]float64{4.9, 5.9}), ShouldBeTrue)
		})

		Convey("Points outside both hypercubes are not terminal", func() {
			So(term.IsTerminal([]float64{2.5, 2.5}), ShouldBeFalse)
		})
	})

	Convey("Given a centre with mismatched dimensionality", t, func() {
		_, err := NewContinuous([][]float64{{0, 0, 0}}, 2, 2)

		Convey("NewContinuous fails ConfigInvalid", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
