package rng

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewSuite(t *testing.T) {
	Convey("Given a seed", t, func() {
		Convey("When two suites are built from the same seed", func() {
			a := NewSuite(42)
			b := NewSuite(42)

			Convey("Then their derived sub-seeds are identical", func() {
				So(a.Seeds(), ShouldResemble, b.Seeds())
			})

			Convey("Then their named streams draw identical sequences", func() {
				for i := 0; i < 10; i++ {
					So(a.RelevantStateSpace.Int63(), ShouldEqual, b.RelevantStateSpace.Int63())
					So(a.ActionSpace.Float64(), ShouldEqual, b.ActionSpace.Float64())
				}
			})
		})

		Convey("When two suites are built from different seeds", func() {
			a := NewSuite(1)
			b := NewSuite(2)

			Convey("Then their derived sub-seeds differ", func() {
				So(a.Seeds(), ShouldNotResemble, b.Seeds())
			})
		})

		Convey("When a suite is built", func() {
			s := NewSuite(7)

			Convey("Then each stream is independent of the others", func() {
				// Draw from RelevantStateSpace and confirm ActionSpace's sequence
				// doesn't depend on it.
				before := s.ActionSpace.Int63()

				s2 := NewSuite(7)
				for i := 0; i < 100; i++ {
					s2.RelevantStateSpace.Int63()
				}
				after := s2.ActionSpace.Int63()

				So(before, ShouldEqual, after)
			})

			Convey("Then every named stream reports its own name", func() {
				So(s.RelevantStateSpace.Name(), ShouldEqual, "relevant_state_space")
				So(s.ImageRep.Name(), ShouldEqual, "image_representations")
			})
		})
	})
}
