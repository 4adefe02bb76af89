package reward

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"mdpenv/mdperr"
)

// svdTolerance is the numerical tolerance spec.md §4.6 calls for when
// testing for a degenerate line-fit direction or a tiny negative squared
// distance produced by floating-point drift.
const svdTolerance = 1e-13

// MoveToPoint implements reward_function = "move_to_a_point" for
// continuous domains (spec.md §4.6): sparse (fixed reward inside
// target_radius, and terminal) or dense (reward proportional to the
// distance closed toward the target this step).
type MoveToPoint struct {
	Target       []float64
	TargetRadius float64
	MakeDenser   bool
	Scale        float64
}

// NewMoveToPoint validates the target point against spec.md §7's
// ConfigInvalid ("target_point shape mismatch").
func NewMoveToPoint(target []float64, radius float64, makeDenser bool, scale float64) (*MoveToPoint, error) {
	if len(target) == 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "target_point must not be empty")
	}
	return &MoveToPoint{Target: target, TargetRadius: radius, MakeDenser: makeDenser, Scale: scale}, nil
}

// Reward computes the move_to_a_point reward from the previous and
// current relevant-state vectors (both already restricted to relevant
// indices) and reports whether the agent has now entered target_radius -
// the original's reached_terminal flag, which forces episode end
// regardless of make_denser.
func (m *MoveToPoint) Reward(prevRelevant, currRelevant []float64) (reward float64, reachedTerminal bool) {
	distCurr := euclidean(currRelevant, m.Target)
	if m.MakeDenser {
		distPrev := euclidean(prevRelevant, m.Target)
		reward = (distPrev - distCurr) * m.Scale
	} else if distCurr < m.TargetRadius {
		reward = m.Scale
	}
	reachedTerminal = distCurr < m.TargetRadius
	return reward, reachedTerminal
}

func euclidean(a, b []float64) float64 {
	return math.Sqrt(dot(sub(a, b), sub(a, b)))
}

func sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// MoveAlongLine implements reward_function = "move_along_a_line": the
// relevant-state window is fit with a line via SVD, and the reward
// penalises the window's total perpendicular deviation from that line.
type MoveAlongLine struct {
	SequenceLength int
	Scale          float64
}

// NewMoveAlongLine builds a line-fit reward for the given sequence length
// (the denominator in spec.md §4.6's reward formula).
func NewMoveAlongLine(sequenceLength int, scale float64) *MoveAlongLine {
	return &MoveAlongLine{SequenceLength: sequenceLength, Scale: scale}
}

// Reward fits the best line through window (rows are time steps, columns
// are relevant dimensions) via SVD of the centred matrix, per spec.md
// §4.6.1, and returns -totalDeviation/sequenceLength*scale.
func (l *MoveAlongLine) Reward(window [][]float64) float64 {
	n := len(window)
	if n == 0 {
		return 0
	}
	dim := len(window[0])

	mean := make([]float64, dim)
	for _, row := range window {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}

	centred := mat.NewDense(n, dim, nil)
	for i, row := range window {
		for j, v := range row {
			centred.Set(i, j, v-mean[j])
		}
	}

	direction := fitLineDirection(centred, dim)

	total := 0.0
	for _, row := range window {
		total += distanceFromLine(row, mean, direction)
	}

	return -total / float64(l.SequenceLength) * l.Scale
}

// fitLineDirection returns the unit first right-singular vector of
// centred, or nil if the SVD fails or the fit direction is degenerate
// (all window points coincide within svdTolerance).
func fitLineDirection(centred *mat.Dense, dim int) []float64 {
	var svd mat.SVD
	if !svd.Factorize(centred, mat.SVDThin) {
		return nil
	}
	if vals := svd.Values(nil); len(vals) == 0 || vals[0] < svdTolerance {
		return nil
	}
	var v mat.Dense
	svd.VTo(&v)

	direction := make([]float64, dim)
	norm := 0.0
	for j := 0; j < dim; j++ {
		direction[j] = v.At(j, 0)
		norm += direction[j] * direction[j]
	}
	norm = math.Sqrt(norm)
	if norm < svdTolerance {
		return nil
	}
	for j := range direction {
		direction[j] /= norm
	}
	return direction
}

// distanceFromLine returns the perpendicular distance of point from the
// line through centre along direction. A nil direction (degenerate fit,
// e.g. a single distinct point) falls back to plain distance from centre.
func distanceFromLine(point, centre, direction []float64) float64 {
	diff := sub(point, centre)
	if len(direction) == 0 {
		return math.Sqrt(dot(diff, diff))
	}
	proj := dot(diff, direction)
	sqDist := dot(diff, diff) - proj*proj
	if sqDist < 0 {
		sqDist = 0 // floating-point drift near a perfectly-fit line
	}
	return math.Sqrt(sqDist)
}
