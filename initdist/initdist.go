// Package initdist implements the initial-state distribution rho_0:
// uniform over non-terminal relevant states for discrete spaces,
// rejection-sampled from the observation box for continuous spaces.
package initdist

import (
	"mdpenv/mdperr"
	"mdpenv/rng"
	"mdpenv/spaces"
)

// maxRejectionSamples bounds the continuous rejection-sampling loop. The
// original implementation merely comments "be careful about infinite
// loops"; this expansion turns that into an actual bound so a
// misconfigured terminal region (one that covers most or all of the
// observation box) fails loudly instead of hanging.
const maxRejectionSamples = 100000

// Discrete draws uniformly from the non-terminal relevant states, which
// by construction occupy indices [0, NonTerminalSize).
type Discrete struct {
	NonTerminalSize int
}

// NewDiscrete builds a Discrete initial-state distribution over the first
// relevantSize-numTerminal relevant states.
func NewDiscrete(relevantSize, numTerminal int) *Discrete {
	return &Discrete{NonTerminalSize: relevantSize - numTerminal}
}

// Sample draws a non-terminal relevant-state index.
func (d *Discrete) Sample(r *rng.Stream) int {
	return r.Intn(d.NonTerminalSize)
}

// Continuous rejection-samples the observation box until a non-terminal
// point is found.
type Continuous struct {
	Obs             *spaces.Box
	RelevantIndices []int
	IsTerminal      func(relevantState []float64) bool
}

// Sample draws a non-terminal point from the observation box.
func (c *Continuous) Sample(r *rng.Stream) ([]float64, error) {
	for attempt := 0; attempt < maxRejectionSamples; attempt++ {
		point := c.Obs.Sample(r)
		relevant := make([]float64, len(c.RelevantIndices))
		for i, idx := range c.RelevantIndices {
			relevant[i] = point[idx]
		}
		if !c.IsTerminal(relevant) {
			return point, nil
		}
	}
	return nil, mdperr.New(mdperr.ConfigInvalid, "initial-state rejection sampling did not find a non-terminal point; terminal region may cover the observation space")
}
