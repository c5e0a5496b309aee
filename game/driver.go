package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/bodies/ui"
)

// Step advances the evolution by one rendered frame: a batch of internal
// ticks, one render, and the guess-gate check. While paused it polls the
// pause view instead. Once the run is over it returns the final result
// without doing anything.
func (e *Engine) Step() (Result, error) {
	if e.state.Evolution == 0 {
		return ResultRunning, ErrNoPopulation
	}

	switch e.state.Status {
	case StatusWon, StatusDraw:
		return e.state.Result, nil
	case StatusOnPause:
		if e.PollPause() {
			return ResultPaused, nil
		}
		return e.state.Result, nil
	}

	if _, err := e.runBatch(); err != nil {
		return e.state.Result, err
	}
	e.render()
	e.applyGuessGate()

	if e.state.Result.Terminal() {
		e.finishRun()
		return e.state.Result, nil
	}
	if e.controls.Paused() {
		e.enterPause()
		return ResultPaused, nil
	}
	return e.state.Result, nil
}

// RunEvolution steps the current evolution until it ends, ctx is done, or
// an action fails. It sleeps between pause polls and caps the frame rate
// when time-lapse is off. The action counter belongs to the run: NewRun
// zeroes it, and calling RunEvolution again after a cancellation resumes
// counting where it stopped.
func (e *Engine) RunEvolution(ctx context.Context) (Result, error) {
	if e.running {
		return e.state.Result, ErrRunInProgress
	}
	if e.state.Evolution == 0 {
		return ResultRunning, ErrNoPopulation
	}
	e.running = true
	defer func() { e.running = false }()

	e.limiter.Reset()

	for {
		if err := ctx.Err(); err != nil {
			return e.state.Result, err
		}

		res, err := e.Step()
		if err != nil {
			slog.Error("evolution_failed", "run_id", e.state.RunID, "actions", e.state.Actions, "error", err)
			return res, fmt.Errorf("running evolution %d: %w", e.state.Evolution, err)
		}

		switch {
		case res.Terminal():
			return res, nil
		case res == ResultPaused:
			e.sleep(e.cfg.Derived.PollInterval)
		case e.state.Mode == ModeImmediate:
			e.limiter.Wait()
		}
	}
}

// frameView copies what the collaborators need to draw a frame.
func (e *Engine) frameView() FrameView {
	now := e.elapsed()
	bodies := e.pop.AppendViews(make([]ui.Body, 0, e.pop.Len()))
	species := make(map[uint16]struct{})
	for _, b := range bodies {
		species[b.Species] = struct{}{}
	}

	return FrameView{
		Field: ui.Field{
			Width:  e.cfg.Derived.WorldW32,
			Height: e.cfg.Derived.WorldH32,
			Radius: e.cfg.Derived.Radius32,
		},
		Bodies:    bodies,
		Plants:    e.pop.AppendPlants(nil),
		Crosses:   e.pop.AppendCrosses(nil, now, int64(e.cfg.Derived.CrossLifespan)),
		Evolution: e.state.Evolution,
		Actions:   e.state.Actions,
		Species:   len(species),
		Status:    e.state.Status,
		Result:    e.state.Result,
		Mode:      e.state.Mode,
		TimeLapse: e.controls.TimeLapse(),
		Paused:    e.controls.Paused(),

		RenderErrors: e.state.RenderErrors,
	}
}

func (e *Engine) render() {
	e.perf.RecordFrame()
	if err := e.hooks.Renderer.Render(e.frameView()); err != nil {
		e.hookFailed("render", err)
	}
}

// hookFailed logs a collaborator error. The evolution carries on. The first
// failure of a run is also shown as a tip; later ones only raise the count
// the HUD displays.
func (e *Engine) hookFailed(hook string, err error) {
	e.state.RenderErrors++
	slog.Warn("hook_failed", "hook", hook, "run_id", e.state.RunID, "actions", e.state.Actions, "error", err)
	if e.state.RenderErrors == 1 {
		e.hooks.Tips.ShowTip(ui.HookFailedTip(hook, err))
	}
}
