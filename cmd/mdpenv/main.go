// Command mdpenv runs a configurable toy MDP simulator: it loads an
// engine configuration from YAML, drives nworkers independent engine
// instances concurrently under random policies, fans their step telemetry
// into one running Aggregate, and serves a live view of it over
// websocket. There is no learning or planning here (this exercises an
// environment, not a trainer) — mdpenv watches an agent-less simulator
// the way a progress dashboard watches a training run.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"

	"mdpenv/config"
	"mdpenv/env"
	"mdpenv/rng"
	"mdpenv/telemetry"
	"mdpenv/telemetry/httpview"
	"mdpenv/telemetry/stats"

	channerics "github.com/niceyeti/channerics/channels"
)

var (
	dbg        *bool
	nworkers   *int
	host       *string
	port       *string
	configPath *string
	addr       string
)

func init() {
	dbg = flag.Bool("debug", false, "debug mode: verbose per-step logging")
	nworkers = flag.Int("nworkers", runtime.NumCPU(), "number of concurrent engine instances")
	host = flag.String("host", "", "the host ip")
	port = flag.String("port", "8080", "the host port")
	configPath = flag.String("config", "./config.yaml", "path to the engine config yaml file")
	flag.Parse()
	addr = *host + ":" + *port
}

func runApp() error {
	logger := telemetry.New(log.Default())

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !*dbg {
		cfg.Logger = nil
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	events := make(chan httpview.StepEvent)
	agg := stats.NewAggregate()

	workers := make([]<-chan httpview.StepEvent, 0, *nworkers)
	for i := 0; i < *nworkers; i++ {
		instanceCfg := *cfg
		instanceCfg.Seed = cfg.Seed + int64(i)
		workers = append(workers, runInstance(appCtx.Done(), i, instanceCfg, agg))
	}
	merged := channerics.Merge(appCtx.Done(), workers...)

	go func() {
		for ev := range channerics.OrDone(appCtx.Done(), merged) {
			select {
			case events <- ev:
			case <-appCtx.Done():
				return
			}
		}
	}()

	srv := httpview.NewServer(appCtx, addr, events)
	return srv.Serve()
}

// runInstance builds one engine instance and drives it under a uniform
// random policy forever, emitting one StepEvent per step. Each instance
// owns its own action-sampling stream, independent of the engine's
// internal RNG suite, the same separation of concerns
// rng.Suite.Seeds exists to support.
func runInstance(done <-chan struct{}, id int, cfg env.Config, agg *stats.Aggregate) <-chan httpview.StepEvent {
	out := make(chan httpview.StepEvent)

	go func() {
		defer close(out)

		eng, err := env.New(cfg)
		if err != nil {
			log.Printf("instance %d: failed to build engine: %v", id, err)
			return
		}
		actionStream := rng.NewSuite(cfg.Seed ^ int64(0x5bd1e995)).ActionSpace
		actionSpace := eng.ActionSpace()

		if _, err := eng.Reset(); err != nil {
			log.Printf("instance %d: reset failed: %v", id, err)
			return
		}

		step := 0
		for {
			select {
			case <-done:
				return
			default:
			}

			action := actionSpace.Sample(actionStream)
			obs, reward, isDone, info, err := eng.Step(action)
			if err != nil {
				log.Printf("instance %d: step failed: %v", id, err)
				return
			}

			agg.RecordStep(reward, info.RewardNoiseAbs, info.TransitionNoiseAbs)
			step++

			obsJSON, err := json.Marshal(obs)
			if err != nil {
				obsJSON = nil
			}

			ev := httpview.StepEvent{
				InstanceID: id,
				Step:       step,
				Reward:     reward,
				Done:       isDone,
				Obs:        obsJSON,
				Stats:      agg.Snapshot(),
			}
			select {
			case out <- ev:
			case <-done:
				return
			}

			if isDone {
				agg.RecordEpisode()
				if _, err := eng.Reset(); err != nil {
					log.Printf("instance %d: reset failed: %v", id, err)
					return
				}
			}
		}
	}()

	return out
}

func main() {
	// Seed the package-level math/rand source used anywhere outside the
	// engine's own rng.Suite streams (there is none on the hot path, but
	// this keeps any future ad hoc sampling in main from being
	// accidentally deterministic across runs).
	rand.Seed(int64(os.Getpid()))

	if err := runApp(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
