package reward

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"mdpenv/rng"
)

func TestNewSetRepeatsAllowed(t *testing.T) {
	Convey("Given a non-terminal size of 4, sequence_length 1, density 0.25", t, func() {
		suite := rng.NewSuite(0)
		set, err := NewSet(4, 1, 0.25, true, suite.RelevantStateSpace)
		So(err, ShouldBeNil)

		Convey("Exactly round(0.25*4) = 1 sequence is chosen", func() {
			So(set.Len(), ShouldEqual, 1)
		})

		Convey("Every chosen sequence has length 1 and a valid state index", func() {
			for _, seq := range set.All() {
				So(len(seq), ShouldEqual, 1)
				So(seq[0], ShouldBeBetween, -1, 4)
			}
		})
	})

	Convey("Given density 0", t, func() {
		suite := rng.NewSuite(1)
		set, err := NewSet(10, 2, 0, true, suite.RelevantStateSpace)
		So(err, ShouldBeNil)
		So(set.Len(), ShouldEqual, 0)
	})
}

func TestNewSetNoRepeats(t *testing.T) {
	Convey("Given repeats_in_sequences=false with sequence_length=3", t, func() {
		suite := rng.NewSuite(2)
		set, err := NewSet(10, 3, 0.1, false, suite.RelevantStateSpace)
		So(err, ShouldBeNil)

		Convey("Every chosen sequence has 3 distinct elements (a permutation)", func() {
			for _, seq := range set.All() {
				So(len(seq), ShouldEqual, 3)
				seen := map[int]bool{}
				for _, v := range seq {
					So(seen[v], ShouldBeFalse)
					seen[v] = true
				}
			}
		})

		Convey("No two chosen sequences clash", func() {
			seen := map[string]bool{}
			for _, seq := range set.All() {
				k := key(seq)
				So(seen[k], ShouldBeFalse)
				seen[k] = true
			}
		})
	})

	Convey("Given sequence_length exceeding the non-terminal state count", t, func() {
		suite := rng.NewSuite(3)
		_, err := NewSet(2, 3, 0.5, false, suite.RelevantStateSpace)

		Convey("Construction fails ConfigInvalid", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewSetHardCap(t *testing.T) {
	Convey("Given a density implying more sequences than the hard cap", t, func() {
		suite := rng.NewSuite(4)
		_, err := NewSet(1000, 4, 1.0, true, suite.RelevantStateSpace)

		Convey("Construction fails RewardSetTooLarge", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
