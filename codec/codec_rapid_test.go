package codec

import (
	"testing"

	"pgregory.net/rapid"
)

// TestCodecRoundTripRapid checks spec.md §8's codec round-trip property:
// for every multi-discrete tuple x, decode(encode(x)) == x.
func TestCodecRoundTripRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dims := rapid.IntRange(1, 5).Draw(t, "dims")
		nvec := make([]int, dims)
		for i := range nvec {
			nvec[i] = rapid.IntRange(1, 6).Draw(t, "n")
		}

		x := make([]int, dims)
		for i := range x {
			x[i] = rapid.IntRange(0, nvec[i]-1).Draw(t, "x_i")
		}

		k := Encode(x, nvec)
		if k < 0 || k >= Size(nvec) {
			t.Fatalf("encoded index %d out of range [0,%d)", k, Size(nvec))
		}

		got := Decode(k, nvec)
		for i := range x {
			if got[i] != x[i] {
				t.Fatalf("decode(encode(x)) = %v, want %v", got, x)
			}
		}

		// And the reverse direction: encode(decode(k)) == k.
		k2 := rapid.IntRange(0, Size(nvec)-1).Draw(t, "k2")
		if Encode(Decode(k2, nvec), nvec) != k2 {
			t.Fatalf("encode(decode(k)) != k for k=%d", k2)
		}
	})
}
