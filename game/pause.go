package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/ui"
)

func (e *Engine) enterPause() {
	e.state.Status = StatusOnPause
	e.state.Result = ResultPaused
	e.state.Hover.Reset()
	e.tipFor = ecs.Entity{}
	e.hooks.Tips.ShowTip(ui.TipPlaceCursor)
	slog.Debug("evolution_paused", "run_id", e.state.RunID, "actions", e.state.Actions)
}

func (e *Engine) exitPause() {
	e.state.Status = StatusEvolution
	e.state.Result = ResultRunning
	e.state.Hover.Reset()
	e.hooks.Tips.ShowTip(ui.EvolutionNumberTip(e.state.Evolution))
	slog.Debug("evolution_resumed", "run_id", e.state.RunID, "actions", e.state.Actions)
}

// PollPause runs one iteration of the pause loop: the pause view updates
// the hover state, a pending click toggles a guess, and the tip follows the
// selection. It reports whether the engine is still paused. Polling with no
// new input changes nothing.
func (e *Engine) PollPause() bool {
	if e.state.Status != StatusOnPause {
		return false
	}

	view := e.frameView()
	if err := e.hooks.Pause.PollPause(&e.state.Hover, view); err != nil {
		e.hookFailed("pause", err)
	}

	if clicked, ok := e.state.Hover.TakeClick(); ok {
		if shape, ok := e.ToggleGuess(clicked); ok {
			e.tipFor = e.state.Hover.Selected
			e.hooks.Tips.ShowTip(ui.TipForShape(shape))
		}
	} else if e.state.Hover.Selected != e.tipFor {
		e.tipFor = e.state.Hover.Selected
		e.hooks.Tips.ShowTip(ui.PauseTip(view.Bodies, &e.state.Hover))
	}

	if e.controls.Paused() {
		return true
	}
	e.exitPause()
	return false
}
