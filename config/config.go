// Package config loads an env.Config from a YAML file, using the same
// two-stage viper -> yaml.v3 envelope decoding reinforcement.FromYaml uses
// for TrainingConfig: viper reads the file into a {kind, def} envelope,
// then the def payload is re-marshalled and decoded a second time into the
// typed shape, so yaml.v3's stricter tag matching (rather than viper's
// case-insensitive mapstructure matching) governs field names.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"mdpenv/env"
	"mdpenv/mdperr"
	"mdpenv/rng"
	"mdpenv/telemetry"
)

// outerConfig mirrors reinforcement.OuterConfig's kind/def envelope.
type outerConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// yamlConfig is the on-disk shape of one engine configuration: spec.md
// §3's table, with its "callable" fields (transition_noise for continuous
// domains, reward_noise) represented as named preset strings rather than
// Go closures, since YAML cannot encode a function value.
type yamlConfig struct {
	StateSpaceType  string `yaml:"state_space_type"`
	ActionSpaceType string `yaml:"action_space_type"`

	RelevantStateSize    int     `yaml:"relevant_state_space_size"`
	IrrelevantStateSize  int     `yaml:"irrelevant_state_space_size"`
	RelevantActionSize   int     `yaml:"relevant_action_space_size"`
	IrrelevantActionSize int     `yaml:"irrelevant_action_space_size"`
	CompletelyConnected  bool    `yaml:"completely_connected"`
	TerminalStateDensity float64 `yaml:"terminal_state_density"`
	TransitionNoise      float64 `yaml:"transition_noise"`

	StateSpaceDim             int         `yaml:"state_space_dim"`
	ActionSpaceDim            int         `yaml:"action_space_dim"`
	RelevantIndices           []int       `yaml:"state_space_relevant_indices"`
	StateSpaceMax             float64     `yaml:"state_space_max"`
	ActionSpaceMax            float64     `yaml:"action_space_max"`
	DynamicsOrder             int         `yaml:"transition_dynamics_order"`
	Inertia                   float64     `yaml:"inertia"`
	TimeUnit                  float64     `yaml:"time_unit"`
	TerminalStates            [][]float64 `yaml:"terminal_states"`
	TermStateEdge             float64     `yaml:"term_state_edge"`
	TransitionNoiseContinuous string      `yaml:"transition_noise_continuous"`
	RewardFunction            string      `yaml:"reward_function"`
	TargetPoint               []float64   `yaml:"target_point"`
	TargetRadius              float64     `yaml:"target_radius"`

	Delay              int     `yaml:"delay"`
	SequenceLength     int     `yaml:"sequence_length"`
	RewardDensity      float64 `yaml:"reward_density"`
	RewardScale        float64 `yaml:"reward_scale"`
	RewardShift        float64 `yaml:"reward_shift"`
	TermStateReward    float64 `yaml:"term_state_reward"`
	MakeDenser         bool    `yaml:"make_denser"`
	RepeatsInSequences bool    `yaml:"repeats_in_sequences"`
	RewardNoise        string  `yaml:"reward_noise"`

	Seed int64 `yaml:"seed"`
}

// Load reads path (a YAML file containing a {kind, def} envelope) and
// decodes its def payload into an env.Config, logging a warning for any
// key present in the file but absent from yamlConfig's tags.
func Load(path string, logger *telemetry.Logger) (*env.Config, error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, mdperr.Wrap(mdperr.ConfigInvalid, "reading config file", err)
	}

	outer := &outerConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, mdperr.Wrap(mdperr.ConfigInvalid, "decoding config envelope", err)
	}

	raw, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, mdperr.Wrap(mdperr.ConfigInvalid, "re-marshalling config def", err)
	}

	return fromYAML(raw, logger)
}

// FromYAML decodes a def payload directly, for embedders that hold
// configuration in memory rather than on disk.
func FromYAML(b []byte, logger *telemetry.Logger) (*env.Config, error) {
	return fromYAML(b, logger)
}

func fromYAML(raw []byte, logger *telemetry.Logger) (*env.Config, error) {
	var known map[string]interface{}
	if err := yaml.Unmarshal(raw, &known); err == nil && logger != nil {
		warnUnknownKeys(known, logger)
	}

	yc := yamlConfig{}
	if err := yaml.Unmarshal(raw, &yc); err != nil {
		return nil, mdperr.Wrap(mdperr.ConfigInvalid, "decoding config", err)
	}

	transitionNoiseContinuous, err := parseNoisePreset(yc.TransitionNoiseContinuous)
	if err != nil {
		return nil, err
	}
	rewardNoise, err := parseNoisePreset(yc.RewardNoise)
	if err != nil {
		return nil, err
	}

	cfg := &env.Config{
		StateSpaceType:  env.SpaceKind(yc.StateSpaceType),
		ActionSpaceType: env.SpaceKind(yc.ActionSpaceType),

		RelevantStateSize:    yc.RelevantStateSize,
		IrrelevantStateSize:  yc.IrrelevantStateSize,
		RelevantActionSize:   yc.RelevantActionSize,
		IrrelevantActionSize: yc.IrrelevantActionSize,
		CompletelyConnected:  yc.CompletelyConnected,
		TerminalStateDensity: yc.TerminalStateDensity,
		TransitionNoise:      yc.TransitionNoise,

		StateSpaceDim:             yc.StateSpaceDim,
		ActionSpaceDim:            yc.ActionSpaceDim,
		RelevantIndices:           yc.RelevantIndices,
		StateSpaceMax:             yc.StateSpaceMax,
		ActionSpaceMax:            yc.ActionSpaceMax,
		DynamicsOrder:             yc.DynamicsOrder,
		Inertia:                   yc.Inertia,
		TimeUnit:                  yc.TimeUnit,
		TerminalStates:            yc.TerminalStates,
		TermStateEdge:             yc.TermStateEdge,
		TransitionNoiseContinuous: transitionNoiseContinuous,
		RewardFunction:            env.RewardFunctionKind(yc.RewardFunction),
		TargetPoint:               yc.TargetPoint,
		TargetRadius:              yc.TargetRadius,

		Delay:              yc.Delay,
		SequenceLength:     yc.SequenceLength,
		RewardDensity:      yc.RewardDensity,
		RewardScale:        yc.RewardScale,
		RewardShift:        yc.RewardShift,
		TermStateReward:    yc.TermStateReward,
		MakeDenser:         yc.MakeDenser,
		RepeatsInSequences: yc.RepeatsInSequences,
		RewardNoise:        rewardNoise,

		Seed:   yc.Seed,
		Logger: logger,
	}

	return cfg, nil
}

// parseNoisePreset wires a YAML noise string into a callable: "" and
// "none" disable noise; "gaussian:<std>" adds zero-mean Gaussian noise
// with the given standard deviation; "bernoulli:<p>" adds 1 with
// probability p and 0 otherwise. Arbitrary Go closures remain supported
// for embedders constructing env.Config directly, bypassing this loader.
func parseNoisePreset(spec string) (env.NoiseFunc, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "none" {
		return nil, nil
	}

	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "gaussian":
		std, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, mdperr.Wrap(mdperr.ConfigInvalid, fmt.Sprintf("invalid gaussian noise spec %q", spec), err)
		}
		return func(r *rng.Stream) float64 { return gaussian(r) * std }, nil
	case "bernoulli":
		p, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, mdperr.Wrap(mdperr.ConfigInvalid, fmt.Sprintf("invalid bernoulli noise spec %q", spec), err)
		}
		return func(r *rng.Stream) float64 {
			if r.Float64() < p {
				return 1
			}
			return 0
		}, nil
	default:
		return nil, mdperr.New(mdperr.ConfigInvalid, fmt.Sprintf("unrecognised noise preset %q", spec))
	}
}

// gaussian draws a standard normal via Box-Muller, matching the same
// technique spaces.Box.Sample uses for unbounded dimensions.
func gaussian(r *rng.Stream) float64 {
	u1 := r.Float64()
	if u1 <= 1e-300 {
		u1 = 1e-300
	}
	u2 := r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// yamlConfigKeys returns the set of yaml tag names yamlConfig declares,
// computed once via reflection rather than hand-maintained alongside the
// struct.
func yamlConfigKeys() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(yamlConfig{})
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			keys[name] = true
		}
	}
	return keys
}

// warnUnknownKeys logs a warning for every top-level key present in the
// raw decoded map but absent from yamlConfig's yaml tags, matching
// spec.md §6's "unknown fields must be ignored with a warning".
func warnUnknownKeys(raw map[string]interface{}, logger *telemetry.Logger) {
	known := yamlConfigKeys()
	var unknown []string
	for k := range raw {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	logger.Warning("config has unrecognised keys, ignoring: %s", strings.Join(unknown, ", "))
}
