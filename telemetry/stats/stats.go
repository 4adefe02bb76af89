// Package stats aggregates cross-goroutine episode statistics for a
// multi-instance engine driver, the way reinforcement.learning.go's State
// values were once updated concurrently by worker agents: a small fixed
// set of running totals (reward sum, step count, noise totals) updated by
// many concurrent engine instances, with the same lock-free primitive
// applying directly.
package stats

import (
	"mdpenv/atomicfloat"
)

// RecordStep, RecordEpisode below rely on AtomicAdd always succeeding
// (atomicfloat retries internally) since these are plain running totals
// with no invariant a lost update could violate.

// Aggregate holds running totals across all engine instances a driver runs.
// Every field is an AtomicFloat64 so instances can update it concurrently
// without a mutex.
type Aggregate struct {
	episodes         *atomicfloat.AtomicFloat64
	steps            *atomicfloat.AtomicFloat64
	totalReward      *atomicfloat.AtomicFloat64
	totalRewardNoise *atomicfloat.AtomicFloat64
	totalTransNoise  *atomicfloat.AtomicFloat64
}

// NewAggregate returns a zeroed Aggregate ready for concurrent use.
func NewAggregate() *Aggregate {
	return &Aggregate{
		episodes:         atomicfloat.NewAtomicFloat64(0),
		steps:            atomicfloat.NewAtomicFloat64(0),
		totalReward:      atomicfloat.NewAtomicFloat64(0),
		totalRewardNoise: atomicfloat.NewAtomicFloat64(0),
		totalTransNoise:  atomicfloat.NewAtomicFloat64(0),
	}
}

// RecordStep folds one engine step into the aggregate. Safe to call from
// any number of concurrent instance goroutines.
func (a *Aggregate) RecordStep(reward, rewardNoiseAbs, transitionNoiseAbs float64) {
	a.steps.AtomicAdd(1)
	a.totalReward.AtomicAdd(reward)
	a.totalRewardNoise.AtomicAdd(rewardNoiseAbs)
	a.totalTransNoise.AtomicAdd(transitionNoiseAbs)
}

// RecordEpisode marks one episode (a Reset after a terminal Step) complete.
func (a *Aggregate) RecordEpisode() {
	a.episodes.AtomicAdd(1)
}

// Snapshot is a point-in-time, non-atomic copy of an Aggregate's totals,
// safe to log or serialize.
type Snapshot struct {
	Episodes           float64 `json:"episodes"`
	Steps              float64 `json:"steps"`
	TotalReward        float64 `json:"total_reward"`
	TotalRewardNoise   float64 `json:"total_reward_noise"`
	TotalTransNoise    float64 `json:"total_transition_noise"`
	MeanRewardPerStep  float64 `json:"mean_reward_per_step"`
}

// Snapshot reads every running total once. Individual fields may be
// momentarily inconsistent with one another under concurrent writers, which
// is acceptable for a progress display.
func (a *Aggregate) Snapshot() Snapshot {
	steps := a.steps.AtomicRead()
	totalReward := a.totalReward.AtomicRead()
	mean := 0.0
	if steps > 0 {
		mean = totalReward / steps
	}
	return Snapshot{
		Episodes:          a.episodes.AtomicRead(),
		Steps:             steps,
		TotalReward:       totalReward,
		TotalRewardNoise:  a.totalRewardNoise.AtomicRead(),
		TotalTransNoise:   a.totalTransNoise.AtomicRead(),
		MeanRewardPerStep: mean,
	}
}
