package transition

import (
	"mdpenv/rng"
	"mdpenv/spaces"
)

// NoiseFunc is a strategy for sampling additive noise from the engine's
// own stream, matching spec.md §9's "callable fields... expressed as
// small strategies with (rng) -> value signatures".
type NoiseFunc func(*rng.Stream) float64

// Continuous integrates an n-th order point-mass system: the action sets
// the n-th derivative, and lower-order derivatives are advanced by a
// truncated Taylor expansion over TimeUnit.
type Continuous struct {
	Order       int
	Inertia     float64
	TimeUnit    float64
	ObsSpace    *spaces.Box
	ActionSpace *spaces.Box

	// Derivatives[0] is the current state, Derivatives[k] its k-th time
	// derivative. Exposed directly since spec.md's state_derivatives is
	// part of the agent-visible info dict.
	Derivatives [][]float64

	factorial []float64
}

// NewContinuous builds a Continuous integrator for a dim-dimensional
// state. Call Reset before the first Step to establish the initial state.
func NewContinuous(order int, inertia, timeUnit float64, obsSpace, actionSpace *spaces.Box, dim int) *Continuous {
	fact := make([]float64, order+1)
	fact[0] = 1
	for i := 1; i <= order; i++ {
		fact[i] = fact[i-1] * float64(i)
	}

	c := &Continuous{
		Order:       order,
		Inertia:     inertia,
		TimeUnit:    timeUnit,
		ObsSpace:    obsSpace,
		ActionSpace: actionSpace,
		factorial:   fact,
	}
	c.Derivatives = make([][]float64, order+1)
	for i := range c.Derivatives {
		c.Derivatives[i] = make([]float64, dim)
	}
	return c
}

// Reset sets the current state to initial and every derivative to zero.
func (c *Continuous) Reset(initial []float64) {
	for i := range c.Derivatives {
		c.Derivatives[i] = make([]float64, len(initial))
	}
	copy(c.Derivatives[0], initial)
}

// StepResult reports the outcome of one Continuous.Step call.
type StepResult struct {
	NextState  []float64
	OutOfSpace bool // action outside ActionSpace: step was a no-op
	Clipped    bool // next state was outside ObsSpace and got clipped
	NoiseAbs   float64
}

// Step applies action (interpreted as the Order-th derivative) for
// TimeUnit and advances every lower-order derivative via a truncated
// Taylor update, per spec.md §4.4. noiseFn, if non-nil, is added to the
// resulting state only (never to a derivative).
//
// The update order matches the Python original: processing derivative
// index i in ascending order 0..Order-1 and reading index i+j (j>=1,
// which is always > i and therefore not yet overwritten this pass) is
// equivalent to reading the pre-update higher-order values, without
// needing an explicit scratch copy.
func (c *Continuous) Step(action []float64, noiseFn NoiseFunc, stream *rng.Stream) StepResult {
	if !c.ActionSpace.Contains(action) {
		return StepResult{NextState: append([]float64(nil), c.Derivatives[0]...), OutOfSpace: true}
	}

	dim := len(c.Derivatives[0])
	for i := 0; i < dim; i++ {
		c.Derivatives[c.Order][i] = action[i] / c.Inertia
	}

	for i := 0; i < c.Order; i++ {
		for j := 1; j <= c.Order-i; j++ {
			coeff := pow(c.TimeUnit, j) / c.factorial[j]
			for d := 0; d < dim; d++ {
				c.Derivatives[i][d] += c.Derivatives[i+j][d] * coeff
			}
		}
	}

	noiseAbs := 0.0
	if noiseFn != nil {
		n := noiseFn(stream)
		noiseAbs = abs(n)
		for d := range c.Derivatives[0] {
			c.Derivatives[0][d] += n
		}
	}

	clipped := false
	if !c.ObsSpace.Contains(c.Derivatives[0]) {
		c.Derivatives[0] = c.ObsSpace.Clip(c.Derivatives[0])
		for i := 1; i <= c.Order; i++ {
			for d := range c.Derivatives[i] {
				c.Derivatives[i][d] = 0
			}
		}
		clipped = true
	}

	return StepResult{
		NextState: append([]float64(nil), c.Derivatives[0]...),
		Clipped:   clipped,
		NoiseAbs:  noiseAbs,
	}
}

func pow(base float64, exp int) float64 {
	out := 1.0
	for i := 0; i < exp; i++ {
		out *= base
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
