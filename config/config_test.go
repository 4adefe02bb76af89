package config

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"mdpenv/env"
	"mdpenv/rng"
	"mdpenv/telemetry"
)

func TestFromYAMLDiscrete(t *testing.T) {
	Convey("Given a discrete engine YAML document", t, func() {
		doc := []byte(`
state_space_type: discrete
action_space_type: discrete
relevant_state_space_size: 10
relevant_action_space_size: 4
completely_connected: true
terminal_state_density: 0.2
sequence_length: 2
reward_density: 0.1
reward_scale: 1.0
seed: 7
`)
		cfg, err := FromYAML(doc, nil)
		So(err, ShouldBeNil)

		Convey("Fields decode onto env.Config one-to-one", func() {
			So(cfg.StateSpaceType, ShouldEqual, env.SpaceDiscrete)
			So(cfg.RelevantStateSize, ShouldEqual, 10)
			So(cfg.RelevantActionSize, ShouldEqual, 4)
			So(cfg.CompletelyConnected, ShouldBeTrue)
			So(cfg.SequenceLength, ShouldEqual, 2)
			So(cfg.Seed, ShouldEqual, 7)
		})

		Convey("The decoded config builds a working engine", func() {
			_, err := env.New(*cfg)
			So(err, ShouldBeNil)
		})
	})
}

func TestFromYAMLNoisePresets(t *testing.T) {
	Convey("Given a continuous config with gaussian transition noise and bernoulli reward noise", t, func() {
		doc := []byte(`
state_space_type: continuous
action_space_type: continuous
state_space_dim: 1
action_space_dim: 1
state_space_max: 10
action_space_max: 10
transition_dynamics_order: 1
inertia: 1
time_unit: 1
sequence_length: 1
reward_function: move_to_a_point
target_point: [0]
target_radius: 0.1
transition_noise_continuous: "gaussian:0.5"
reward_noise: "bernoulli:1"
seed: 3
`)
		cfg, err := FromYAML(doc, nil)
		So(err, ShouldBeNil)

		Convey("Both noise funcs are non-nil and match their named distribution", func() {
			So(cfg.TransitionNoiseContinuous, ShouldNotBeNil)
			So(cfg.RewardNoise, ShouldNotBeNil)

			stream := rng.NewSuite(1).Env
			So(cfg.RewardNoise(stream), ShouldEqual, 1) // p=1 always fires
		})
	})

	Convey("Given an unrecognised noise preset", t, func() {
		_, err := parseNoisePreset("quantum:42")

		Convey("It fails ConfigInvalid", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an empty or \"none\" noise spec", t, func() {
		f1, err1 := parseNoisePreset("")
		f2, err2 := parseNoisePreset("none")

		Convey("Both decode to a nil NoiseFunc", func() {
			So(err1, ShouldBeNil)
			So(f1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(f2, ShouldBeNil)
		})
	})
}

func TestWarnUnknownKeys(t *testing.T) {
	Convey("Given a document with one recognised and one unrecognised key", t, func() {
		var buf bytes.Buffer
		logger := telemetry.NewToWriter(&buf)
		doc := []byte(`
state_space_type: discrete
action_space_type: discrete
totally_made_up_key: 123
`)
		_, err := FromYAML(doc, logger)
		So(err, ShouldBeNil)

		Convey("A warning naming the unknown key is logged", func() {
			So(buf.String(), ShouldContainSubstring, "totally_made_up_key")
		})
	})
}
