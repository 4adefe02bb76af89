package env

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"mdpenv/spaces"
)

func baseContinuousConfig() Config {
	return Config{
		StateSpaceType:  SpaceContinuous,
		ActionSpaceType: SpaceContinuous,
		StateSpaceDim:   2,
		ActionSpaceDim:  2,
		StateSpaceMax:   100,
		ActionSpaceMax:  10,
		DynamicsOrder:   1,
		Inertia:         1,
		TimeUnit:        1,
		SequenceLength:  1,
		RewardDensity:   0,
		RewardScale:     1,
		RewardFunction:  RewardMoveToPoint,
		TargetPoint:     []float64{0, 0},
		TargetRadius:    0.5,
		Seed:            0,
	}
}

// resetAt bypasses the random initial-state distribution so a scenario can
// start from an exact, chosen point.
func resetAt(e *continuousEngine, initial []float64) {
	e.integrator.Reset(initial)
	e.buffer.Reset(e.relevantOf(initial))
	e.status = statusReady
}

func TestContinuousEngineMoveToPointSparse(t *testing.T) {
	Convey("Given a move_to_a_point engine starting at [2,0] with target [0,0], radius 0.5", t, func() {
		cfg := baseContinuousConfig()
		eng, err := New(cfg)
		So(err, ShouldBeNil)
		e := eng.(*continuousEngine)
		resetAt(e, []float64{2, 0})

		Convey("Stepping [-1,0] twice closes the distance to zero and pays reward only on arrival", func() {
			obs1, rew1, done1, _, err := e.Step(spaces.FloatsValue([]float64{-1, 0}))
			So(err, ShouldBeNil)
			So(obs1.Floats, ShouldResemble, []float64{1, 0})
			So(rew1, ShouldEqual, 0)
			So(done1, ShouldBeFalse)

			obs2, rew2, done2, _, err := e.Step(spaces.FloatsValue([]float64{-1, 0}))
			So(err, ShouldBeNil)
			So(obs2.Floats, ShouldResemble, []float64{0, 0})
			So(rew2, ShouldEqual, cfg.RewardScale)
			So(done2, ShouldBeTrue)
		})
	})
}

func TestContinuousEngineClipping(t *testing.T) {
	Convey("Given state_space_max=5 and a step that would drive the state to 6", t, func() {
		cfg := baseContinuousConfig()
		cfg.StateSpaceMax = 5
		cfg.ActionSpaceMax = 10
		eng, err := New(cfg)
		So(err, ShouldBeNil)
		e := eng.(*continuousEngine)
		resetAt(e, []float64{4, 0})

		Convey("The next state is clipped to the bound and higher derivatives are zeroed", func() {
			_, _, _, info, err := e.Step(spaces.FloatsValue([]float64{2, 0}))
			So(err, ShouldBeNil)
			So(info.CurrState.Floats[0], ShouldEqual, 5)
			So(info.NoisyTransition, ShouldBeTrue)
			for _, d := range info.StateDerivatives[1:] {
				for _, v := range d {
					So(v, ShouldEqual, 0)
				}
			}
		})
	})
}

func TestContinuousEngineStepAfterTerminationErrors(t *testing.T) {
	Convey("Given an engine that has already reached its target", t, func() {
		cfg := baseContinuousConfig()
		eng, err := New(cfg)
		So(err, ShouldBeNil)
		e := eng.(*continuousEngine)
		resetAt(e, []float64{0.1, 0})

		_, _, done, _, err := e.Step(spaces.FloatsValue([]float64{0, 0}))
		So(err, ShouldBeNil)
		So(done, ShouldBeTrue)

		Convey("Stepping again fails until Reset", func() {
			_, _, _, _, err := e.Step(spaces.FloatsValue([]float64{0, 0}))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestContinuousEngineOutOfSpaceAction(t *testing.T) {
	Convey("Given an action outside action_space_max", t, func() {
		cfg := baseContinuousConfig()
		eng, err := New(cfg)
		So(err, ShouldBeNil)
		e := eng.(*continuousEngine)
		resetAt(e, []float64{2, 0})

		Convey("Step is a no-op: no error, state unchanged, episode continues", func() {
			obs, _, done, _, err := e.Step(spaces.FloatsValue([]float64{1000, 0}))
			So(err, ShouldBeNil)
			So(done, ShouldBeFalse)
			So(obs.Floats, ShouldResemble, []float64{2, 0})
		})
	})
}
