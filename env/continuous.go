package env

import (
	"math"

	"mdpenv/augmented"
	"mdpenv/initdist"
	"mdpenv/mdperr"
	"mdpenv/reward"
	"mdpenv/rng"
	"mdpenv/spaces"
	"mdpenv/terminal"
	"mdpenv/transition"
)

// continuousEngine implements Engine for state_space_type = "continuous":
// an n-th order point-mass integrator over the full state_space_dim,
// scored and terminated only on its relevant-index subset.
type continuousEngine struct {
	cfg   Config
	suite *rng.Suite

	obsSpace    *spaces.Box
	actionSpace *spaces.Box

	integrator *transition.Continuous
	termSet    *terminal.Continuous
	initDist   *initdist.Continuous

	moveToPoint   *reward.MoveToPoint
	moveAlongLine *reward.MoveAlongLine

	relevantIdx []int

	buffer *augmented.Buffer[[]float64]

	status status

	totalClippedTransitions int
	totalAbsTransitionNoise float64
	totalAbsRewardNoise     float64

	build BuildReport
}

func newContinuousEngine(cfg Config) (*continuousEngine, error) {
	if cfg.StateSpaceDim <= 0 || cfg.ActionSpaceDim <= 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "state_space_dim and action_space_dim must be positive")
	}
	if cfg.StateSpaceDim != cfg.ActionSpaceDim {
		return nil, mdperr.New(mdperr.ConfigInvalid, "state_space_dim and action_space_dim must be equal")
	}
	if cfg.DynamicsOrder <= 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "transition_dynamics_order must be positive")
	}
	if cfg.Inertia <= 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "inertia must be positive")
	}
	if cfg.TimeUnit <= 0 {
		return nil, mdperr.New(mdperr.ConfigInvalid, "time_unit must be positive")
	}
	if !cfg.RewardFunction.IsValid() {
		return nil, mdperr.New(mdperr.ConfigInvalid, "reward_function must be \"move_to_a_point\" or \"move_along_a_line\"")
	}

	relevantIdx := cfg.RelevantIndices
	if len(relevantIdx) == 0 {
		relevantIdx = make([]int, cfg.StateSpaceDim)
		for i := range relevantIdx {
			relevantIdx[i] = i
		}
	}

	suite := rng.NewSuite(cfg.Seed)

	obsBound := make([]float64, cfg.StateSpaceDim)
	actBound := make([]float64, cfg.ActionSpaceDim)
	for i := range obsBound {
		obsBound[i] = boundOrInf(cfg.StateSpaceMax)
	}
	for i := range actBound {
		actBound[i] = boundOrInf(cfg.ActionSpaceMax)
	}
	obsSpace := spaces.NewBox(negate(obsBound), obsBound)
	actionSpace := spaces.NewBox(negate(actBound), actBound)

	termSet, err := terminal.NewContinuous(cfg.TerminalStates, cfg.TermStateEdge, len(relevantIdx))
	if err != nil {
		return nil, err
	}

	initDist := &initdist.Continuous{
		Obs:             obsSpace,
		RelevantIndices: relevantIdx,
		IsTerminal:      termSet.IsTerminal,
	}

	integrator := transition.NewContinuous(cfg.DynamicsOrder, cfg.Inertia, cfg.TimeUnit, obsSpace, actionSpace, cfg.StateSpaceDim)

	e := &continuousEngine{
		cfg:         cfg,
		suite:       suite,
		obsSpace:    obsSpace,
		actionSpace: actionSpace,
		integrator:  integrator,
		termSet:     termSet,
		initDist:    initDist,
		relevantIdx: relevantIdx,
		buffer:      augmented.New[[]float64](cfg.Delay+cfg.SequenceLength+1, augmented.ContinuousPad(len(relevantIdx))),
		build: BuildReport{
			RelevantStateSize: len(relevantIdx),
		},
	}

	switch cfg.RewardFunction {
	case RewardMoveToPoint:
		if cfg.SequenceLength != 1 {
			return nil, mdperr.New(mdperr.ConfigInvalid, "reward_function \"move_to_a_point\" requires sequence_length = 1")
		}
		mtp, err := reward.NewMoveToPoint(cfg.TargetPoint, cfg.TargetRadius, cfg.MakeDenser, cfg.RewardScale)
		if err != nil {
			return nil, err
		}
		e.moveToPoint = mtp
	case RewardMoveAlongLine:
		e.moveAlongLine = reward.NewMoveAlongLine(cfg.SequenceLength, cfg.RewardScale)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("built continuous engine: dim=%d order=%d reward_function=%s", cfg.StateSpaceDim, cfg.DynamicsOrder, cfg.RewardFunction)
	}
	return e, nil
}

func boundOrInf(max float64) float64 {
	if max <= 0 {
		return math.Inf(1)
	}
	return max
}

func negate(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = -v
	}
	return out
}

func (e *continuousEngine) relevantOf(full []float64) []float64 {
	out := make([]float64, len(e.relevantIdx))
	for i, idx := range e.relevantIdx {
		out[i] = full[idx]
	}
	return out
}

func (e *continuousEngine) Reset() (spaces.Value, error) {
	initial, err := e.initDist.Sample(e.suite.StateSpace)
	if err != nil {
		return spaces.Value{}, err
	}
	e.integrator.Reset(initial)
	e.buffer.Reset(e.relevantOf(initial))
	e.status = statusReady

	e.totalClippedTransitions = 0
	e.totalAbsTransitionNoise = 0
	e.totalAbsRewardNoise = 0

	if e.cfg.Logger != nil {
		e.cfg.Logger.Info("reset: curr_state=%v", initial)
	}
	return spaces.FloatsValue(initial), nil
}

func (e *continuousEngine) Step(action spaces.Value) (spaces.Value, float64, bool, StepInfo, error) {
	if e.status == statusTerminated {
		return spaces.Value{}, 0, false, StepInfo{}, mdperr.New(mdperr.TerminalStep, "Step called after episode termination")
	}
	if action.Kind != spaces.KindBox {
		return spaces.Value{}, 0, false, StepInfo{}, mdperr.New(mdperr.InvalidArgument, "action must be a continuous vector")
	}

	prevRelevant := e.buffer.Last()
	prevState := append([]float64(nil), e.integrator.Derivatives[0]...)

	result := e.integrator.Step(action.Floats, transition.NoiseFunc(e.cfg.TransitionNoiseContinuous), e.suite.Env)
	if result.OutOfSpace && e.cfg.Logger != nil {
		e.cfg.Logger.Warning("action outside action_space; treating step as a no-op")
	}
	if result.Clipped {
		e.totalClippedTransitions++
		if e.cfg.Logger != nil {
			e.cfg.Logger.Warning("next state clipped to observation_space bounds; derivatives reset to zero")
		}
	}
	e.totalAbsTransitionNoise += result.NoiseAbs

	currRelevant := e.relevantOf(result.NextState)
	e.buffer.Push(currRelevant)

	var rewardVal float64
	reachedTerminal := false
	switch {
	case e.moveToPoint != nil:
		rewardVal, reachedTerminal = e.moveToPoint.Reward(prevRelevant, currRelevant)
	case e.moveAlongLine != nil:
		if e.buffer.Full() {
			rewardVal = e.moveAlongLine.Reward(e.lineFitWindow())
		}
	}

	noiseAbs := 0.0
	if e.cfg.RewardNoise != nil {
		n := e.cfg.RewardNoise(e.suite.Env)
		noiseAbs = absFloat(n)
		e.totalAbsRewardNoise += noiseAbs
		rewardVal += n
	}
	rewardVal += e.cfg.RewardShift

	done := reachedTerminal || e.termSet.IsTerminal(currRelevant)
	if done {
		rewardVal += e.cfg.TermStateReward * e.cfg.RewardScale
		e.status = statusTerminated
	}

	if e.cfg.Logger != nil {
		e.cfg.Logger.Info("step: action=%v prev_state=%v curr_state=%v reward=%v done=%v", action.Floats, prevState, result.NextState, rewardVal, done)
	}

	derivatives := make([][]float64, len(e.integrator.Derivatives))
	for i, d := range e.integrator.Derivatives {
		derivatives[i] = append([]float64(nil), d...)
	}

	info := StepInfo{
		CurrState:          spaces.FloatsValue(result.NextState),
		AugmentedState:     floatsToValues(e.buffer.Values()),
		StateDerivatives:   derivatives,
		NoisyTransition:    result.Clipped,
		TransitionNoiseAbs: result.NoiseAbs,
		RewardNoiseAbs:     noiseAbs,
	}
	return spaces.FloatsValue(result.NextState), rewardVal, done, info, nil
}

// lineFitWindow returns the sequence_length-point slice of the full
// augmented-state buffer that move_along_a_line fits its line through:
// index 1 through L-delay (exclusive), skipping the stale point at index 0
// and the delay-many most recent points the reward intentionally lags
// behind.
func (e *continuousEngine) lineFitWindow() [][]float64 {
	vals := e.buffer.Values()
	end := len(vals) - e.cfg.Delay
	window := vals[1:end]
	out := make([][]float64, len(window))
	copy(out, window)
	return out
}

func (e *continuousEngine) Seed(seed *int64) int64 {
	if seed != nil {
		e.cfg.Seed = *seed
		e.suite = rng.NewSuite(*seed)
	}
	return e.cfg.Seed
}

func (e *continuousEngine) ActionSpace() spaces.Space     { return spaces.AsBoxSpace(e.actionSpace) }
func (e *continuousEngine) ObservationSpace() spaces.Space { return spaces.AsBoxSpace(e.obsSpace) }
func (e *continuousEngine) SubSeeds() rng.Seeds           { return e.suite.Seeds() }
func (e *continuousEngine) Diagnostics() BuildReport      { return e.build }

func floatsToValues(xs [][]float64) []spaces.Value {
	out := make([]spaces.Value, len(xs))
	for i, x := range xs {
		out[i] = spaces.FloatsValue(x)
	}
	return out
}
