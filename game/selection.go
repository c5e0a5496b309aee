package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/components"
)

// predict places the predictor's guess: the species holding the most total
// energy, marked on its strongest body. Ties go to the lower species id.
func (e *Engine) predict() {
	totals := make(map[uint16]float64)
	e.pop.EnergyBySpecies(totals)

	var best uint16
	bestEnergy := -1.0
	for sp, total := range totals {
		if total > bestEnergy || (total == bestEnergy && sp < best) {
			best, bestEnergy = sp, total
		}
	}
	if bestEnergy < 0 {
		return
	}

	strongest, ok := e.pop.Strongest(best)
	if !ok {
		return
	}
	look := e.pop.Look(strongest)
	look.Shape = look.Shape.WithPredictorGuess()
	e.state.PredictorGuess = int(best)
}

// ToggleGuess applies an operator click on a body and returns its new shape.
// Only one operator guess exists at a time: guessing a body clears the mark
// from every other body, and clicking a guessed body cancels the guess.
// It returns false if e is not a live body.
func (e *Engine) ToggleGuess(entity ecs.Entity) (components.Shape, bool) {
	if !e.pop.IsBody(entity) {
		return components.ShapeCircle, false
	}

	look := e.pop.Look(entity)
	cancel := look.Shape.OperatorGuessed()
	e.pop.UpdateLooks(components.Shape.WithoutOperatorGuess)

	if cancel {
		e.state.OperatorGuess = -1
	} else {
		look.Shape = look.Shape.Toggled()
		e.state.OperatorGuess = int(e.pop.Lineage(entity).Species)
	}
	e.applyGuessGate()
	return look.Shape, true
}

// applyGuessGate tells the guess gate when the last operator-guessed body
// disappears or a guessed body appears again. It never repeats a signal.
func (e *Engine) applyGuessGate() {
	guessing := e.pop.AnyOperatorGuessed()
	if guessing == e.state.guessing {
		return
	}
	e.state.guessing = guessing
	e.hooks.Gate.SetGuessing(guessing)
}
