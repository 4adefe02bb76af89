// Package transition builds and steps the transition function P: a table
// for discrete spaces (independent sub-tables for relevant and irrelevant
// dimensions), and an n-th order point-mass integrator for continuous
// spaces.
package transition

import (
	"mdpenv/mdperr"
	"mdpenv/rng"
	"mdpenv/spaces"
)

// Discrete is the transition table for a discrete MDP: one row per
// relevant state, one column per relevant action, plus an independent
// table for the irrelevant sub-space when it is non-empty.
type Discrete struct {
	relevant   [][]int
	irrelevant [][]int // nil when there is no irrelevant sub-space

	relevantSpace   *spaces.Discrete
	irrelevantSpace *spaces.Discrete

	relevantStream   *rng.Stream
	irrelevantStream *rng.Stream

	noise float64 // transition_noise probability in [0,1); 0 disables noise
}

// DiscreteConfig bundles the construction parameters for NewDiscrete.
type DiscreteConfig struct {
	RelevantStateSize    int
	RelevantActionSize   int
	IrrelevantStateSize  int // 0 disables the irrelevant sub-space
	IrrelevantActionSize int
	CompletelyConnected  bool
	IsTerminal           func(relevantState int) bool
	TransitionNoise      float64 // 0 disables

	RelevantStream   *rng.Stream
	IrrelevantStream *rng.Stream
}

// NewDiscrete builds the relevant (and, if configured, irrelevant)
// transition tables. completely_connected requires
// RelevantActionSize <= RelevantStateSize (and likewise for the
// irrelevant sub-space), otherwise ConfigInvalid is returned.
func NewDiscrete(cfg DiscreteConfig) (*Discrete, error) {
	if cfg.CompletelyConnected && cfg.RelevantActionSize > cfg.RelevantStateSize {
		return nil, mdperr.New(mdperr.ConfigInvalid, "completely_connected requires |A_rel| <= |S_rel|")
	}
	relevantSpace := spaces.NewDiscrete(cfg.RelevantStateSize)
	relevant, err := buildTable(relevantSpace, cfg.RelevantStateSize, cfg.RelevantActionSize, cfg.CompletelyConnected, cfg.RelevantStream)
	if err != nil {
		return nil, err
	}
	for s := 0; s < cfg.RelevantStateSize; s++ {
		if cfg.IsTerminal(s) {
			for a := range relevant[s] {
				relevant[s][a] = s
			}
		}
	}

	d := &Discrete{
		relevant:       relevant,
		relevantSpace:  relevantSpace,
		relevantStream: cfg.RelevantStream,
		noise:          cfg.TransitionNoise,
	}

	if cfg.IrrelevantStateSize > 0 {
		if cfg.CompletelyConnected && cfg.IrrelevantActionSize > cfg.IrrelevantStateSize {
			return nil, mdperr.New(mdperr.ConfigInvalid, "completely_connected requires |A_irr| <= |S_irr|")
		}
		irrelevantSpace := spaces.NewDiscrete(cfg.IrrelevantStateSize)
		irrelevant, err := buildTable(irrelevantSpace, cfg.IrrelevantStateSize, cfg.IrrelevantActionSize, cfg.CompletelyConnected, cfg.IrrelevantStream)
		if err != nil {
			return nil, err
		}
		d.irrelevant = irrelevant
		d.irrelevantSpace = irrelevantSpace
		d.irrelevantStream = cfg.IrrelevantStream
	}

	return d, nil
}

func buildTable(space *spaces.Discrete, stateSize, actionSize int, completelyConnected bool, stream *rng.Stream) ([][]int, error) {
	table := make([][]int, stateSize)
	for s := 0; s < stateSize; s++ {
		if completelyConnected {
			row, err := space.SampleSize(stream, actionSize, false)
			if err != nil {
				return nil, err
			}
			table[s] = row
		} else {
			row := make([]int, actionSize)
			for a := 0; a < actionSize; a++ {
				row[a] = space.Sample(stream)
			}
			table[s] = row
		}
	}
	return table, nil
}

// RelevantTable exposes the generated relevant transition table for
// testing spec.md §8's terminal-absorption and completely-connected
// properties directly.
func (d *Discrete) RelevantTable() [][]int { return d.relevant }

// Step performs a relevant transition from (s,a), resampling per
// TransitionNoise when configured, and reports whether the resample
// actually changed the next state (for the noisy-transition counter).
func (d *Discrete) Step(s, a int) (next int, noisy bool, err error) {
	next = d.relevant[s][a]
	if d.noise <= 0 {
		return next, false, nil
	}
	probs := noiseProbs(next, d.relevantSpace.N, d.noise)
	resampled, err := d.relevantSpace.SampleProb(d.relevantStream, probs)
	if err != nil {
		return 0, false, err
	}
	return resampled, resampled != next, nil
}

// StepIrrelevant performs an irrelevant transition; ok is false when
// there is no irrelevant sub-space or when the irrelevant action size is
// zero, in which case spec.md §4.3 says no irrelevant transition occurs.
func (d *Discrete) StepIrrelevant(s, a int) (next int, noisy bool, ok bool, err error) {
	if d.irrelevant == nil || len(d.irrelevant[0]) == 0 {
		return 0, false, false, nil
	}
	next = d.irrelevant[s][a]
	if d.noise <= 0 {
		return next, false, true, nil
	}
	probs := noiseProbs(next, d.irrelevantSpace.N, d.noise)
	resampled, err := d.irrelevantSpace.SampleProb(d.irrelevantStream, probs)
	if err != nil {
		return 0, false, true, err
	}
	return resampled, resampled != next, true, nil
}

// HasIrrelevant reports whether an irrelevant transition table exists.
func (d *Discrete) HasIrrelevant() bool { return d.irrelevant != nil }

func noiseProbs(next, n int, noise float64) []float64 {
	probs := make([]float64, n)
	mass := noise / float64(n-1)
	for i := range probs {
		probs[i] = mass
	}
	probs[next] = 1 - noise
	return probs
}
