// Package terminal implements the terminal-state membership test: for
// discrete spaces a fixed suffix of relevant-state indices, for
// continuous spaces a union of axis-aligned hypercubes centred on
// configured points.
package terminal

import (
	"mdpenv/mdperr"
	"mdpenv/spaces"
)

// Discrete marks the top NumTerminal relevant-state indices as terminal,
// per spec.md §3: "is_terminal_state inited to be at the 'end' of the
// sorted states".
type Discrete struct {
	relevantSize int
	numTerminal  int
}

// NewDiscrete builds a Discrete terminal set sized by density (the
// fraction of relevantSize states that are terminal). If the resulting
// count rounds to zero, at least one terminal state is kept and Warned
// reports that an adjustment was made, so the caller can log it.
func NewDiscrete(relevantSize int, density float64) (t *Discrete, warned bool) {
	n := int(density * float64(relevantSize))
	if n == 0 {
		n = 1
		warned = true
	}
	return &Discrete{relevantSize: relevantSize, numTerminal: n}, warned
}

// NumTerminal returns the number of terminal relevant states.
func (t *Discrete) NumTerminal() int { return t.numTerminal }

// IsTerminal reports whether relevant-state index s is terminal.
func (t *Discrete) IsTerminal(s int) bool {
	return s >= t.relevantSize-t.numTerminal
}

// Continuous tests relevant-state membership in the union of terminal
// hypercubes, each centred on a configured point with the given edge
// length on every axis.
type Continuous struct {
	boxes []*spaces.Box
}

// NewContinuous builds a Continuous terminal set from a list of centres,
// each of which must have dimensionality relevantDim (the number of
// relevant state dimensions), and a shared edge
// length. Returns ConfigInvalid if a centre's dimensionality mismatches.
func NewContinuous(centres [][]float64, edge float64, relevantDim int) (*Continuous, error) {
	boxes := make([]*spaces.Box, 0, len(centres))
	for _, c := range centres {
		if len(c) != relevantDim {
			return nil, mdperr.New(mdperr.ConfigInvalid, "terminal_states centre dimensionality does not match state_space_relevant_indices")
		}
		low := make([]float64, len(c))
		high := make([]float64, len(c))
		for j, v := range c {
			low[j] = v - edge/2
			high[j] = v + edge/2
		}
		boxes = append(boxes, spaces.NewBox(low, high))
	}
	return &Continuous{boxes: boxes}, nil
}

// IsTerminal reports whether relevantState (already restricted to the
// relevant dimensions) falls within any terminal hypercube.
func (t *Continuous) IsTerminal(relevantState []float64) bool {
	for _, b := range t.boxes {
		if b.Contains(relevantState) {
			return true
		}
	}
	return false
}
