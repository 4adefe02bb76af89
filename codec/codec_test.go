package codec

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEncodeDecode(t *testing.T) {
	Convey("Given a multi-discrete shape [2,3,4]", t, func() {
		nvec := []int{2, 3, 4}

		Convey("The rightmost dimension varies fastest", func() {
			So(Encode([]int{0, 0, 0}, nvec), ShouldEqual, 0)
			So(Encode([]int{0, 0, 1}, nvec), ShouldEqual, 1)
			So(Encode([]int{0, 1, 0}, nvec), ShouldEqual, 4)
			So(Encode([]int{1, 0, 0}, nvec), ShouldEqual, 12)
		})

		Convey("Decode is the inverse of Encode for every valid tuple", func() {
			for a := 0; a < 2; a++ {
				for b := 0; b < 3; b++ {
					for c := 0; c < 4; c++ {
						x := []int{a, b, c}
						k := Encode(x, nvec)
						So(Decode(k, nvec), ShouldResemble, x)
					}
				}
			}
		})

		Convey("Size is the product of the shape", func() {
			So(Size(nvec), ShouldEqual, 24)
		})
	})
}
