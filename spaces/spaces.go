// Package spaces implements the sampler/containment primitives the engine
// builds its state and action spaces from: Discrete, MultiDiscrete, and
// Box. None of them share an RNG - every Sample call takes the caller's
// own *rng.Stream, so two spaces drawing from two different streams never
// interfere with each other's sequence.
package spaces

import (
	"math"

	"mdpenv/mdperr"
	"mdpenv/rng"
)

// Discrete is {0, 1, ..., N-1}.
type Discrete struct {
	N int
}

// NewDiscrete returns a Discrete space of size n.
func NewDiscrete(n int) *Discrete { return &Discrete{N: n} }

// Sample draws a uniform element of the space.
func (d *Discrete) Sample(r *rng.Stream) int { return r.Intn(d.N) }

// SampleSize draws size elements. With replace=true they are independent
// uniform draws and may repeat; with replace=false they are distinct, and
// it fails with InvalidArgument if size > N.
func (d *Discrete) SampleSize(r *rng.Stream, size int, replace bool) ([]int, error) {
	if replace {
		out := make([]int, size)
		for i := range out {
			out[i] = r.Intn(d.N)
		}
		return out, nil
	}
	if size > d.N {
		return nil, mdperr.New(mdperr.InvalidArgument, "sample size exceeds space size without replacement")
	}
	perm := r.Perm(d.N)
	return perm[:size], nil
}

// SampleProb draws a single element from the categorical distribution
// given by prob, which must have length N, contain no negative entries,
// and (within floating tolerance) sum to 1.
func (d *Discrete) SampleProb(r *rng.Stream, prob []float64) (int, error) {
	if len(prob) != d.N {
		return 0, mdperr.New(mdperr.InvalidArgument, "probability vector length does not match space size")
	}
	sum := 0.0
	for _, p := range prob {
		if p < 0 {
			return 0, mdperr.New(mdperr.InvalidArgument, "probability vector has a negative entry")
		}
		sum += p
	}
	if sum <= 0 {
		return 0, mdperr.New(mdperr.InvalidArgument, "probability vector sums to zero")
	}
	target := r.Float64() * sum
	acc := 0.0
	for i, p := range prob {
		acc += p
		if target < acc {
			return i, nil
		}
	}
	return d.N - 1, nil
}

// Contains reports whether x is a valid index into the space.
func (d *Discrete) Contains(x int) bool { return x >= 0 && x < d.N }

// MultiDiscrete is the product of independent Discrete spaces, one per
// dimension. The rightmost dimension varies fastest under the codec
// package's encode/decode convention.
type MultiDiscrete struct {
	Nvec []int
}

// NewMultiDiscrete returns a MultiDiscrete space with the given per-dimension sizes.
func NewMultiDiscrete(nvec []int) *MultiDiscrete {
	cp := make([]int, len(nvec))
	copy(cp, nvec)
	return &MultiDiscrete{Nvec: cp}
}

// Sample draws an independent uniform element per dimension.
func (m *MultiDiscrete) Sample(r *rng.Stream) []int {
	out := make([]int, len(m.Nvec))
	for i, n := range m.Nvec {
		out[i] = r.Intn(n)
	}
	return out
}

// Contains reports whether every dimension of x is within its bound.
func (m *MultiDiscrete) Contains(x []int) bool {
	if len(x) != len(m.Nvec) {
		return false
	}
	for i, v := range x {
		if v < 0 || v >= m.Nvec[i] {
			return false
		}
	}
	return true
}

// Box is an axis-aligned hyperrectangle [Low[i], High[i]] per dimension.
// High[i] (and -Low[i]) may be +Inf to represent an unbounded dimension.
type Box struct {
	Low, High []float64
}

// NewBox returns a Box with the given per-dimension bounds.
func NewBox(low, high []float64) *Box {
	l := make([]float64, len(low))
	h := make([]float64, len(high))
	copy(l, low)
	copy(h, high)
	return &Box{Low: l, High: h}
}

// Dim returns the box's dimensionality.
func (b *Box) Dim() int { return len(b.Low) }

// Sample draws a uniform point in the box. Unbounded dimensions
// (Low=-Inf or High=+Inf) are sampled from a standard normal instead, the
// conventional Gym Box behavior for unbounded ranges.
func (b *Box) Sample(r *rng.Stream) []float64 {
	out := make([]float64, len(b.Low))
	for i := range out {
		lo, hi := b.Low[i], b.High[i]
		switch {
		case math.IsInf(lo, -1) && math.IsInf(hi, 1):
			out[i] = gaussian(r)
		case math.IsInf(hi, 1):
			out[i] = lo + math.Abs(gaussian(r))
		case math.IsInf(lo, -1):
			out[i] = hi - math.Abs(gaussian(r))
		default:
			out[i] = lo + r.Float64()*(hi-lo)
		}
	}
	return out
}

// gaussian draws from a standard normal using the Box-Muller transform,
// since rng.Stream exposes only Float64/Int63 on its owned source.
func gaussian(r *rng.Stream) float64 {
	u1 := r.Float64()
	if u1 <= 1e-300 {
		u1 = 1e-300
	}
	u2 := r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Contains reports whether x lies within the box on every dimension.
func (b *Box) Contains(x []float64) bool {
	if len(x) != len(b.Low) {
		return false
	}
	for i, v := range x {
		if v < b.Low[i] || v > b.High[i] {
			return false
		}
	}
	return true
}

// Clip truncates x to the box on every dimension, returning a new slice.
func (b *Box) Clip(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Max(b.Low[i], math.Min(b.High[i], v))
	}
	return out
}
