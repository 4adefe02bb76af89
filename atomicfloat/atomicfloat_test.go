package atomicfloat

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAtomicAddConcurrent(t *testing.T) {
	Convey("Given 100 goroutines each adding 1 to a shared AtomicFloat64", t, func() {
		af := NewAtomicFloat64(0)
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				af.AtomicAdd(1)
			}()
		}
		wg.Wait()

		Convey("Every add is reflected, none lost to a missed CAS", func() {
			So(af.AtomicRead(), ShouldEqual, 100)
		})
	})
}

func TestAtomicSet(t *testing.T) {
	Convey("Given an AtomicFloat64 initialized to 1", t, func() {
		af := NewAtomicFloat64(1)

		Convey("AtomicSet overwrites it", func() {
			ok := af.AtomicSet(2)
			So(ok, ShouldBeTrue)
			So(af.AtomicRead(), ShouldEqual, 2)
		})
	})
}
