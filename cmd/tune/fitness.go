package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/bodies/config"
	"github.com/pthm-cable/bodies/game"
	"github.com/pthm-cable/bodies/telemetry"
)

// FitnessEvaluator runs headless evolutions and scores a parameter vector.
type FitnessEvaluator struct {
	params     *ParamVector
	configPath string
	maxTicks   int64
	seeds      []int64

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates an evaluator. Every run loads a fresh config
// from configPath before applying the parameters.
func NewFitnessEvaluator(params *ParamVector, configPath string, maxTicks int64, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		configPath: configPath,
		maxTicks:   maxTicks,
		seeds:      seeds,
	}
}

// LastQuality returns the diversity score of the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// batchTicks bounds every Step so the tick cap is overshot by at most one batch.
const batchTicks = 1000

// runResult is one evolution under one seed.
type runResult struct {
	ticks   int64
	result  game.Result
	windows []telemetry.WindowStats
	species int
	err     error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Evolutions that last long and keep many species alive score best.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runEvolution(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1), r.err
		}
		q := quality(r.windows, r.species)
		totalFitness += -float64(r.ticks) * (1 + 0.2*q)
		totalQuality += q
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()
	return totalFitness / n, nil
}

// runEvolution steps one evolution until it ends or maxTicks have run.
func (fe *FitnessEvaluator) runEvolution(x []float64, seed int64) runResult {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return runResult{err: err}
	}
	fe.params.ApplyToConfig(cfg, x)
	cfg.Pacing.MaxBatchTicks = batchTicks

	var r runResult
	r.species = cfg.Population.Species
	engine := game.New(game.Options{
		Config:   cfg,
		Seed:     seed,
		Controls: game.NewKnobs(time.Hour, false),
		StatsCallback: func(stats telemetry.WindowStats) {
			r.windows = append(r.windows, stats)
		},
	})
	if err := engine.NewRun(); err != nil {
		return runResult{err: err}
	}

	for engine.State().Actions < fe.maxTicks {
		res, err := engine.Step()
		if err != nil {
			return runResult{err: fmt.Errorf("seed %d: %w", seed, err)}
		}
		if res.Terminal() {
			r.result = res
			break
		}
	}
	r.ticks = engine.State().Actions
	return r
}

// quality is the mean share of founding species alive across windows.
func quality(windows []telemetry.WindowStats, founders int) float64 {
	if len(windows) == 0 || founders == 0 {
		return 0
	}
	var sum float64
	for _, w := range windows {
		sum += float64(w.Species) / float64(founders)
	}
	return sum / float64(len(windows))
}
