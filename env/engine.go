package env

import (
	"mdpenv/mdperr"
	"mdpenv/rng"
	"mdpenv/spaces"
)

// status is the engine's two-state machine (spec.md §4.7): READY accepts
// Step calls, TERMINATED rejects them until the next Reset.
type status int

const (
	statusReady status = iota
	statusTerminated
)

// Engine is the agent-facing contract spec.md §6 specifies: Reset/Step,
// a reseedable RNG, and sampleable/containment-testable spaces.
type Engine interface {
	Reset() (spaces.Value, error)
	Step(action spaces.Value) (obs spaces.Value, reward float64, done bool, info StepInfo, err error)
	Seed(seed *int64) int64
	ActionSpace() spaces.Space
	ObservationSpace() spaces.Space
	// SubSeeds exposes every named sub-seed the RNG suite derived, so an
	// external collaborator (e.g. an image-representations wrapper) can
	// build its own independent stream without sharing RNG state with
	// the core.
	SubSeeds() rng.Seeds
	// Diagnostics returns the build-time report computed once at
	// construction.
	Diagnostics() BuildReport
}

// StepInfo is the statically-typed counterpart of spec.md §6's info
// dictionary ("containing at least curr_state, augmented_state, and
// (continuous) state_derivatives").
type StepInfo struct {
	CurrState          spaces.Value
	AugmentedState     []spaces.Value
	StateDerivatives   [][]float64 // continuous only, nil otherwise
	NoisyTransition    bool
	TransitionNoiseAbs float64
	RewardNoiseAbs     float64
}

// BuildReport summarises what New built: sizes, rewardable-sequence
// count, and whether the soft reward-set cap was crossed (crossing the
// hard cap makes New fail instead) - the
// "generate_random_mdp diagnostics" the Python original logs at
// construction (SPEC_FULL.md's supplemented-features item 2).
type BuildReport struct {
	RelevantStateSize   int
	IrrelevantStateSize int
	NumTerminalStates   int
	RewardableSequences int
	SoftCapExceeded     bool
}

// New validates cfg and builds the discrete or continuous engine it
// describes. All config-time failures are returned here, per spec.md §7.
func New(cfg Config) (Engine, error) {
	if !cfg.StateSpaceType.IsValid() || !cfg.ActionSpaceType.IsValid() {
		return nil, mdperr.New(mdperr.ConfigInvalid, "state_space_type/action_space_type must be \"discrete\" or \"continuous\"")
	}
	if cfg.StateSpaceType != cfg.ActionSpaceType {
		return nil, mdperr.New(mdperr.ConfigInvalid, "state_space_type and action_space_type must match")
	}
	if cfg.RewardDensity < 0 || cfg.RewardDensity > 1 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "reward_density must be in [0, 1]")
	}
	if cfg.SequenceLength <= 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "sequence_length must be positive")
	}
	if cfg.Delay < 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "delay must be non-negative")
	}

	switch cfg.StateSpaceType {
	case SpaceDiscrete:
		return newDiscreteEngine(cfg)
	case SpaceContinuous:
		return newContinuousEngine(cfg)
	default:
		return nil, mdperr.New(mdperr.ConfigInvalid, "unreachable space kind")
	}
}
