// Package env composes the RNG suite, space primitives, terminal set,
// initial-state distribution, transition function, reward function and
// augmented-state buffer into the agent-facing Step/Reset driver
// (spec.md §4.7), for both discrete and continuous MDPs.
package env

import (
	"mdpenv/rng"
	"mdpenv/telemetry"
)

// SpaceKind selects the discrete/continuous branch of a Config. spec.md
// §3 requires state_space_type and action_space_type to match; New
// enforces that.
type SpaceKind string

const (
	SpaceDiscrete   SpaceKind = "discrete"
	SpaceContinuous SpaceKind = "continuous"
)

// IsValid reports whether k is one of the two recognised space kinds.
func (k SpaceKind) IsValid() bool { return k == SpaceDiscrete || k == SpaceContinuous }

// RewardFunctionKind selects the continuous reward shape.
type RewardFunctionKind string

const (
	RewardMoveToPoint   RewardFunctionKind = "move_to_a_point"
	RewardMoveAlongLine RewardFunctionKind = "move_along_a_line"
)

// IsValid reports whether k is one of the two recognised continuous
// reward functions.
func (k RewardFunctionKind) IsValid() bool {
	return k == RewardMoveToPoint || k == RewardMoveAlongLine
}

// NoiseFunc is a caller-supplied noise strategy, drawing from the
// engine's own stream - matching spec.md §9's "callable config fields...
// expressed as small strategies with (rng) -> value signatures".
type NoiseFunc = func(*rng.Stream) float64

// Config is the engine's immutable-after-construction configuration,
// matching spec.md §3's field table one-to-one. Relevant/irrelevant sizes
// are modelled directly (rather than as a single state_space_size list
// plus a relevant-indices selector) since the relevant and irrelevant
// discrete sub-spaces already transition and are scored completely
// independently.
type Config struct {
	StateSpaceType  SpaceKind
	ActionSpaceType SpaceKind

	// Discrete.
	RelevantStateSize    int
	IrrelevantStateSize  int
	RelevantActionSize   int
	IrrelevantActionSize int
	CompletelyConnected  bool
	TerminalStateDensity float64
	TransitionNoise      float64 // probability in [0,1); 0 disables

	// Continuous. RelevantIndices partitions the state_space_dim axes into
	// relevant (used by the terminal set, initial-state rejection test,
	// and reward function) and irrelevant ones; nil means every axis is
	// relevant. Both state and action spaces share one dim and one
	// integrator, per spec.md §3 ("state_space_dim / action_space_dim...
	// must be equal").
	StateSpaceDim             int
	ActionSpaceDim            int
	RelevantIndices           []int
	StateSpaceMax             float64
	ActionSpaceMax            float64
	DynamicsOrder             int
	Inertia                   float64
	TimeUnit                  float64
	TerminalStates            [][]float64
	TermStateEdge             float64
	TransitionNoiseContinuous NoiseFunc
	RewardFunction            RewardFunctionKind
	TargetPoint               []float64
	TargetRadius              float64

	// Shared reward shape.
	Delay           int
	SequenceLength  int
	RewardDensity   float64
	RewardScale     float64
	RewardShift     float64
	TermStateReward float64
	MakeDenser      bool

	// Discrete reward-set construction.
	RepeatsInSequences bool

	RewardNoise NoiseFunc

	Seed int64

	// Logger is optional; a nil Logger disables logging rather than
	// defaulting to stderr, since many engines typically run headless in
	// a sweep.
	Logger *telemetry.Logger
}
