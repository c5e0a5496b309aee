// Package game runs evolutions: it schedules body actions tick by tick, paces
// ticks against the wall clock, pauses for the operator, and decides when a
// run is over.
package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/config"
	"github.com/pthm-cable/bodies/systems"
	"github.com/pthm-cable/bodies/telemetry"
)

var (
	// ErrNoPopulation is returned when stepping before NewRun seeded a population.
	ErrNoPopulation = errors.New("no population: call NewRun first")
	// ErrRunInProgress is returned when a run is started or reset from inside another.
	ErrRunInProgress = errors.New("a run is already in progress")
)

// Options configures an Engine.
type Options struct {
	Config   *config.Config // nil = config.Cfg()
	Seed     int64          // 0 = time-based
	Controls Controls       // nil = Knobs from config
	Model    systems.Model  // nil = systems.Behavior from config
	Hooks    Hooks
	Output   *telemetry.OutputManager // nil = no CSV output

	// LogStats logs every telemetry window with slog.
	LogStats bool
	// StatsCallback, if set, receives every telemetry window.
	StatsCallback func(telemetry.WindowStats)

	// Now and Sleep replace the wall clock. Tests use them to run without waiting.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Engine owns one population and steps it through successive evolutions.
// It is not safe for concurrent use; only its Controls may be written from
// other goroutines.
type Engine struct {
	cfg      *config.Config
	seed     int64
	rng      *rand.Rand
	controls Controls
	model    systems.Model
	hooks    Hooks

	pop   *Population
	field *systems.Field
	flora *systems.Flora
	state EngineState

	limiter *FrameLimiter
	now     func() time.Time
	sleep   func(time.Duration)
	epoch   time.Time // marker timestamps count from here

	// Telemetry
	collector     *telemetry.Collector
	speciesStats  *telemetry.SpeciesTracker
	bookmarks     *telemetry.BookmarkDetector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Reused per tick
	order    []ecs.Entity
	pending  []pendingDeath
	children []pendingChildren
	removed  map[ecs.Entity]struct{}
	counts   map[uint16]int

	tipFor  ecs.Entity // selection the current pause tip describes
	running bool
}

// New creates an engine. Call NewRun before stepping.
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	controls := opts.Controls
	if controls == nil {
		controls = NewKnobs(cfg.Derived.TimeLapse, cfg.Pause.StartPaused)
	}

	model := opts.Model
	if model == nil {
		model = systems.NewBehavior(cfg)
	}

	perf := telemetry.NewPerfCollector()
	perf.SetClock(now)

	return &Engine{
		cfg:      cfg,
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
		controls: controls,
		model:    model,
		hooks:    opts.Hooks.withDefaults(),

		pop:   NewPopulation(),
		field: systems.NewField(cfg.Derived.WorldW32, cfg.Derived.WorldH32),
		flora: systems.NewFlora(cfg, seed),

		limiter: NewFrameLimiter(cfg.Derived.FrameInterval, now, sleep),
		now:     now,
		sleep:   sleep,
		epoch:   now(),

		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		speciesStats:  telemetry.NewSpeciesTracker(),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		perf:          perf,
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,

		removed: make(map[ecs.Entity]struct{}),
		counts:  make(map[uint16]int),
	}
}

// elapsed returns the nanoseconds since the engine was created. With the
// default clock the difference is taken on the monotonic reading.
func (e *Engine) elapsed() int64 {
	return int64(e.now().Sub(e.epoch))
}

// State returns a copy of the run control state.
func (e *Engine) State() EngineState {
	return e.state
}

// Population returns the live population. Callers must not add or remove
// entities while the engine is stepping.
func (e *Engine) Population() *Population {
	return e.pop
}

// Controls returns the knobs the engine reads.
func (e *Engine) Controls() Controls {
	return e.controls
}

// Seed returns the seed the engine was created with.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Perf returns the tick timing collector.
func (e *Engine) Perf() *telemetry.PerfCollector {
	return e.perf
}
