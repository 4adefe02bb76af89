package transition

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"mdpenv/rng"
)

func TestNewDiscrete(t *testing.T) {
	Convey("Given a completely-connected discrete transition table", t, func() {
		suite := rng.NewSuite(11)
		isTerminal := func(s int) bool { return s >= 8 }
		d, err := NewDiscrete(DiscreteConfig{
			RelevantStateSize:   10,
			RelevantActionSize:  6,
			CompletelyConnected: true,
			IsTerminal:          isTerminal,
			RelevantStream:      suite.RelevantStateSpace,
		})
		So(err, ShouldBeNil)

		Convey("Every row is a permutation-sized sample of the relevant state set", func() {
			for s := 0; s < 8; s++ {
				row := d.RelevantTable()[s]
				So(len(row), ShouldEqual, 6)
				seen := map[int]bool{}
				for _, v := range row {
					So(seen[v], ShouldBeFalse)
					seen[v] = true
				}
			}
		})

		Convey("Terminal states map to themselves for every action", func() {
			for s := 8; s < 10; s++ {
				for a := 0; a < 6; a++ {
					next, _, err := d.Step(s, a)
					So(err, ShouldBeNil)
					So(next, ShouldEqual, s)
				}
			}
		})
	})

	Convey("Given completely_connected with more actions than states", t, func() {
		suite := rng.NewSuite(12)
		_, err := NewDiscrete(DiscreteConfig{
			RelevantStateSize:   3,
			RelevantActionSize:  5,
			CompletelyConnected: true,
			IsTerminal:          func(int) bool { return false },
			RelevantStream:      suite.RelevantStateSpace,
		})

		Convey("Construction fails ConfigInvalid", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given transition noise configured", t, func() {
		suite := rng.NewSuite(13)
		d, err := NewDiscrete(DiscreteConfig{
			RelevantStateSize:  5,
			RelevantActionSize: 2,
			IsTerminal:         func(int) bool { return false },
			TransitionNoise:    0.9,
			RelevantStream:     suite.RelevantStateSpace,
		})
		So(err, ShouldBeNil)

		Convey("Stepping resamples and sometimes reports a noisy transition", func() {
			sawNoisy := false
			for i := 0; i < 200; i++ {
				_, noisy, err := d.Step(0, 0)
				So(err, ShouldBeNil)
				if noisy {
					sawNoisy = true
				}
			}
			So(sawNoisy, ShouldBeTrue)
		})
	})

	Convey("Given no irrelevant sub-space", t, func() {
		suite := rng.NewSuite(14)
		d, err := NewDiscrete(DiscreteConfig{
			RelevantStateSize:  4,
			RelevantActionSize: 2,
			IsTerminal:         func(int) bool { return false },
			RelevantStream:     suite.RelevantStateSpace,
		})
		So(err, ShouldBeNil)

		Convey("StepIrrelevant reports not-ok", func() {
			_, _, ok, err := d.StepIrrelevant(0, 0)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}
