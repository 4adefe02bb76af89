package reward

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMoveToPointSparse(t *testing.T) {
	Convey("Given target=[0,0], radius=0.5, sparse mode", t, func() {
		m, err := NewMoveToPoint([]float64{0, 0}, 0.5, false, 1.0)
		So(err, ShouldBeNil)

		Convey("Outside the radius, reward is 0 and the episode is not terminal", func() {
			r, done := m.Reward([]float64{3, 0}, []float64{2, 0})
			So(r, ShouldEqual, 0.0)
			So(done, ShouldBeFalse)
		})

		Convey("Inside the radius, reward is reward_scale and the episode is terminal", func() {
			r, done := m.Reward([]float64{0.6, 0}, []float64{0.3, 0})
			So(r, ShouldEqual, 1.0)
			So(done, ShouldBeTrue)
		})
	})
}

func TestMoveToPointDense(t *testing.T) {
	Convey("Given target=[0,0], dense mode", t, func() {
		m, err := NewMoveToPoint([]float64{0, 0}, 0.5, true, 2.0)
		So(err, ShouldBeNil)

		Convey("Moving closer to the target yields a positive reward scaled by the distance closed", func() {
			r, _ := m.Reward([]float64{2, 0}, []float64{1, 0})
			So(r, ShouldAlmostEqual, 2.0, 1e-9) // (2 - 1) * scale 2
		})

		Convey("Moving away from the target yields a negative reward", func() {
			r, _ := m.Reward([]float64{1, 0}, []float64{2, 0})
			So(r, ShouldAlmostEqual, -2.0, 1e-9)
		})
	})

	Convey("Given an empty target point", t, func() {
		_, err := NewMoveToPoint(nil, 0.5, false, 1.0)
		Convey("Construction fails ConfigInvalid", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMoveAlongLineZeroLoss(t *testing.T) {
	Convey("Given a window of points lying exactly on a line", t, func() {
		window := [][]float64{
			{0, 0},
			{1, 1},
			{2, 2},
			{3, 3},
		}
		r := NewMoveAlongLine(3, 1.0)

		Convey("The total deviation is ~0, so reward is ~0", func() {
			reward := r.Reward(window)
			So(math.Abs(reward), ShouldBeLessThan, 1e-9)
		})
	})

	Convey("Given a window of points off the best-fit line", t, func() {
		window := [][]float64{
			{0, 0},
			{1, 1.2},
			{2, 1.9},
			{3, 3.1},
		}
		r := NewMoveAlongLine(3, 1.0)

		Convey("The reward is strictly negative", func() {
			reward := r.Reward(window)
			So(reward, ShouldBeLessThan, 0)
		})
	})

	Convey("Given a degenerate window where every point coincides", t, func() {
		window := [][]float64{
			{1, 1},
			{1, 1},
			{1, 1},
		}
		r := NewMoveAlongLine(3, 1.0)

		Convey("The fit falls back to distance-from-centroid without panicking", func() {
			reward := r.Reward(window)
			So(reward, ShouldAlmostEqual, 0.0, 1e-9)
		})
	})
}
