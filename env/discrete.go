package env

import (
	"mdpenv/augmented"
	"mdpenv/codec"
	"mdpenv/initdist"
	"mdpenv/mdperr"
	"mdpenv/reward"
	"mdpenv/rng"
	"mdpenv/spaces"
	"mdpenv/terminal"
	"mdpenv/transition"
)

// discreteEngine implements Engine for state_space_type = "discrete".
type discreteEngine struct {
	cfg   Config
	suite *rng.Suite

	relevantSpace   *spaces.Discrete
	irrelevantSpace *spaces.Discrete // nil when there is no irrelevant sub-space

	transitionFn *transition.Discrete
	termSet      *terminal.Discrete
	initDist     *initdist.Discrete
	matcher      *reward.DiscreteMatcher

	buffer *augmented.Buffer[int]

	relevantState   int
	irrelevantState int

	status status

	totalTransitions      int
	totalNoisyTransitions int
	totalAbsRewardNoise   float64

	build BuildReport
}

func newDiscreteEngine(cfg Config) (*discreteEngine, error) {
	if cfg.RelevantStateSize <= 0 || cfg.RelevantActionSize <= 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "relevant_state_space_size and relevant_action_space_size must be positive")
	}
	if cfg.CompletelyConnected && cfg.RelevantActionSize > cfg.RelevantStateSize {
		return nil, mdperr.New(mdperr.ConfigInvalid, "completely_connected requires |A_rel| <= |S_rel|")
	}

	suite := rng.NewSuite(cfg.Seed)

	termSet, warned := terminal.NewDiscrete(cfg.RelevantStateSize, cfg.TerminalStateDensity)
	if warned && cfg.Logger != nil {
		cfg.Logger.Warning("terminal_state_density rounded up to keep at least one terminal state")
	}

	transitionFn, err := transition.NewDiscrete(transition.DiscreteConfig{
		RelevantStateSize:    cfg.RelevantStateSize,
		RelevantActionSize:   cfg.RelevantActionSize,
		IrrelevantStateSize:  cfg.IrrelevantStateSize,
		IrrelevantActionSize: cfg.IrrelevantActionSize,
		CompletelyConnected:  cfg.CompletelyConnected,
		IsTerminal:           termSet.IsTerminal,
		TransitionNoise:      cfg.TransitionNoise,
		RelevantStream:       suite.RelevantStateSpace,
		IrrelevantStream:     suite.IrrelevantStateSpace,
	})
	if err != nil {
		return nil, err
	}

	nonTerminalSize := cfg.RelevantStateSize - termSet.NumTerminal()
	rewardSet, err := reward.NewSet(nonTerminalSize, cfg.SequenceLength, cfg.RewardDensity, cfg.RepeatsInSequences, suite.Env)
	if err != nil {
		return nil, err
	}
	if rewardSet.Len() > reward.SoftCapSequences && cfg.Logger != nil {
		cfg.Logger.Warning("rewardable-sequence count %d exceeds the soft cap %d; stepping may be slow", rewardSet.Len(), reward.SoftCapSequences)
	}

	e := &discreteEngine{
		cfg:             cfg,
		suite:           suite,
		relevantSpace:   spaces.NewDiscrete(cfg.RelevantStateSize),
		transitionFn:    transitionFn,
		termSet:         termSet,
		initDist:        initdist.NewDiscrete(cfg.RelevantStateSize, termSet.NumTerminal()),
		matcher:         reward.NewDiscreteMatcher(rewardSet, cfg.Delay, cfg.MakeDenser, cfg.RewardScale),
		buffer:          augmented.New[int](cfg.Delay+cfg.SequenceLength+1, augmented.DiscretePad),
		build: BuildReport{
			RelevantStateSize:   cfg.RelevantStateSize,
			IrrelevantStateSize: cfg.IrrelevantStateSize,
			NumTerminalStates:   termSet.NumTerminal(),
			RewardableSequences: rewardSet.Len(),
			SoftCapExceeded:     rewardSet.Len() > reward.SoftCapSequences,
		},
	}
	if cfg.IrrelevantStateSize > 0 {
		e.irrelevantSpace = spaces.NewDiscrete(cfg.IrrelevantStateSize)
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("built discrete engine: %d relevant states (%d terminal), %d rewardable sequences", cfg.RelevantStateSize, termSet.NumTerminal(), rewardSet.Len())
	}
	return e, nil
}

func (e *discreteEngine) Reset() (spaces.Value, error) {
	e.relevantState = e.initDist.Sample(e.suite.RelevantStateSpace)
	if e.irrelevantSpace != nil {
		e.irrelevantState = e.irrelevantSpace.Sample(e.suite.IrrelevantStateSpace)
	}
	e.buffer.Reset(e.relevantState)
	e.matcher.Reset()
	e.status = statusReady

	e.totalTransitions = 0
	e.totalNoisyTransitions = 0
	e.totalAbsRewardNoise = 0

	if e.cfg.Logger != nil {
		e.cfg.Logger.Info("reset: curr_state=%d", e.relevantState)
	}
	return e.currObservation(), nil
}

func (e *discreteEngine) Step(action spaces.Value) (spaces.Value, float64, bool, StepInfo, error) {
	if e.status == statusTerminated {
		return spaces.Value{}, 0, false, StepInfo{}, mdperr.New(mdperr.TerminalStep, "Step called after episode termination")
	}

	relevantAction, irrelevantAction, err := e.splitAction(action)
	if err != nil {
		return spaces.Value{}, 0, false, StepInfo{}, err
	}
	prevState := e.relevantState

	nextRelevant, noisy, err := e.transitionFn.Step(e.relevantState, relevantAction)
	if err != nil {
		return spaces.Value{}, 0, false, StepInfo{}, err
	}
	if noisy {
		e.totalNoisyTransitions++
	}

	if e.irrelevantSpace != nil {
		nextIrrelevant, irrNoisy, ok, err := e.transitionFn.StepIrrelevant(e.irrelevantState, irrelevantAction)
		if err != nil {
			return spaces.Value{}, 0, false, StepInfo{}, err
		}
		if ok {
			e.irrelevantState = nextIrrelevant
			if irrNoisy {
				e.totalNoisyTransitions++
			}
		}
	}

	e.relevantState = nextRelevant
	e.buffer.Push(nextRelevant)
	e.totalTransitions++

	reward := e.matcher.Reward(e.buffer.Values())

	noiseAbs := 0.0
	if e.cfg.RewardNoise != nil {
		n := e.cfg.RewardNoise(e.suite.Env)
		noiseAbs = absFloat(n)
		e.totalAbsRewardNoise += noiseAbs
		reward += n
	}
	reward += e.cfg.RewardShift

	done := e.termSet.IsTerminal(e.relevantState)
	if done {
		reward += e.cfg.TermStateReward * e.cfg.RewardScale
		e.status = statusTerminated
	}

	if e.cfg.Logger != nil {
		e.cfg.Logger.Info("step %d: action=%v prev_state=%d curr_state=%d reward=%v done=%v", e.totalTransitions, action, prevState, e.relevantState, reward, done)
	}

	info := StepInfo{
		CurrState:      e.currObservation(),
		AugmentedState: intsToValues(e.buffer.Values()),
		RewardNoiseAbs: noiseAbs,
	}
	return e.currObservation(), reward, done, info, nil
}

// Seed, given a seed, rebuilds the engine (tables, rewardable set and
// streams) exactly as New would for that seed, so a reseeded engine
// replays the trajectories of a freshly constructed one.
func (e *discreteEngine) Seed(seed *int64) int64 {
	if seed != nil {
		cfg := e.cfg
		cfg.Seed = *seed
		if rebuilt, err := newDiscreteEngine(cfg); err == nil {
			*e = *rebuilt
		}
	}
	return e.cfg.Seed
}

func (e *discreteEngine) ActionSpace() spaces.Space {
	if e.irrelevantSpace != nil {
		return spaces.AsMultiDiscreteSpace(spaces.NewMultiDiscrete([]int{e.cfg.RelevantActionSize, e.cfg.IrrelevantActionSize}))
	}
	return spaces.AsSpace(spaces.NewDiscrete(e.cfg.RelevantActionSize))
}

func (e *discreteEngine) ObservationSpace() spaces.Space {
	if e.irrelevantSpace != nil {
		return spaces.AsMultiDiscreteSpace(spaces.NewMultiDiscrete([]int{e.cfg.RelevantStateSize, e.cfg.IrrelevantStateSize}))
	}
	return spaces.AsSpace(e.relevantSpace)
}

func (e *discreteEngine) SubSeeds() rng.Seeds   { return e.suite.Seeds() }
func (e *discreteEngine) Diagnostics() BuildReport { return e.build }

// currObservation returns the external observation: a flat int when there
// is no irrelevant sub-space, or a multi-discrete [relevant, irrelevant]
// tuple otherwise.
func (e *discreteEngine) currObservation() spaces.Value {
	if e.irrelevantSpace == nil {
		return spaces.IntValue(e.relevantState)
	}
	return spaces.IntsValue([]int{e.relevantState, e.irrelevantState})
}

// splitAction applies the dimension codec at the boundary: a multi-
// discrete action is split into its relevant/irrelevant components;
// internal storage and stepping always use the flat/split form (spec.md
// §4.8).
func (e *discreteEngine) splitAction(action spaces.Value) (relevant, irrelevant int, err error) {
	if e.irrelevantSpace == nil {
		if action.Kind != spaces.KindDiscrete {
			return 0, 0, mdperr.New(mdperr.InvalidArgument, "action must be a flat discrete value")
		}
		return action.Int, 0, nil
	}
	switch action.Kind {
	case spaces.KindMultiDiscrete:
		if len(action.Ints) != 2 {
			return 0, 0, mdperr.New(mdperr.InvalidArgument, "multi-discrete action must have 2 components")
		}
		return action.Ints[0], action.Ints[1], nil
	case spaces.KindDiscrete:
		// a flat action addressed against the combined [relevant,
		// irrelevant] action space, decoded via the codec (spec.md §4.8).
		parts := codec.Decode(action.Int, []int{e.cfg.RelevantActionSize, e.cfg.IrrelevantActionSize})
		return parts[0], parts[1], nil
	default:
		return 0, 0, mdperr.New(mdperr.InvalidArgument, "action has the wrong kind for this space")
	}
}

func intsToValues(xs []int) []spaces.Value {
	out := make([]spaces.Value, len(xs))
	for i, x := range xs {
		out[i] = spaces.IntValue(x)
	}
	return out
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
