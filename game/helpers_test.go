package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/config"
	"github.com/pthm-cable/bodies/systems"
	"github.com/pthm-cable/bodies/ui"
)

// fakeClock advances by step on every reading.
type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept += d
	c.t = c.t.Add(d)
}

// recorder implements every hook and remembers what it was told.
type recorder struct {
	frames    int
	tips      []string
	gate      []bool
	polls     int
	renderErr error
	onRender  func(FrameView)
	onPoll    func(h *ui.HoverState, v FrameView)
}

func (r *recorder) Render(v FrameView) error {
	r.frames++
	if r.onRender != nil {
		r.onRender(v)
	}
	return r.renderErr
}

func (r *recorder) ShowTip(tip string) {
	r.tips = append(r.tips, tip)
}

func (r *recorder) SetGuessing(enabled bool) {
	r.gate = append(r.gate, enabled)
}

func (r *recorder) PollPause(h *ui.HoverState, v FrameView) error {
	r.polls++
	if r.onPoll != nil {
		r.onPoll(h, v)
	}
	return nil
}

func (r *recorder) lastTip() string {
	if len(r.tips) == 0 {
		return ""
	}
	return r.tips[len(r.tips)-1]
}

// scriptedModel runs act for every body, or leaves bodies untouched.
type scriptedModel struct {
	calls int
	act   func(b systems.Body, f *systems.Field) (systems.Outcome, error)
}

func (m *scriptedModel) Act(b systems.Body, f *systems.Field, _ *rand.Rand) (systems.Outcome, error) {
	m.calls++
	if m.act == nil {
		return systems.Outcome{}, nil
	}
	return m.act(b, f)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Plant.Initial = 0
	cfg.Plant.SpawnChance = 0
	return cfg
}

type testRig struct {
	engine *Engine
	hooks  *recorder
	clock  *fakeClock
	knobs  *Knobs
	model  *scriptedModel
}

// newRig creates an engine with a started run and fake collaborators.
func newRig(t *testing.T, timeLapse time.Duration, paused bool) *testRig {
	t.Helper()
	rig := &testRig{
		hooks: &recorder{},
		clock: newFakeClock(time.Millisecond),
		knobs: NewKnobs(timeLapse, paused),
		model: &scriptedModel{},
	}
	rig.engine = New(Options{
		Config:   testConfig(t),
		Seed:     1,
		Controls: rig.knobs,
		Model:    rig.model,
		Hooks:    Hooks{Renderer: rig.hooks, Tips: rig.hooks, Gate: rig.hooks, Pause: rig.hooks},
		Now:      rig.clock.Now,
		Sleep:    rig.clock.Sleep,
	})
	if err := rig.engine.NewRun(); err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	return rig
}

// populate replaces the seeded bodies with one body per species entry.
func (r *testRig) populate(species ...uint16) []ecs.Entity {
	r.engine.pop = NewPopulation()
	r.engine.state.OperatorGuess = -1
	r.engine.state.PredictorGuess = -1
	entities := make([]ecs.Entity, len(species))
	for i, sp := range species {
		entities[i] = r.engine.pop.AddBody(
			components.Position{X: float32(100 + 50*i), Y: 100},
			components.Rotation{},
			components.Energy{Value: 100},
			components.Traits{Speed: 1, VisionDistance: 10, ProcreationThreshold: 1000},
			components.Lineage{Species: sp},
			components.Look{Shape: components.ShapeCircle},
		)
	}
	return entities
}

func starveUnless(keep func(systems.Body) bool) func(systems.Body, *systems.Field) (systems.Outcome, error) {
	return func(b systems.Body, _ *systems.Field) (systems.Outcome, error) {
		if keep(b) {
			return systems.Outcome{}, nil
		}
		b.Energy.Value = 0
		return systems.Outcome{Death: systems.Starved}, nil
	}
}
