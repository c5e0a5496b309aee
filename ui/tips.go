package ui

import (
	"fmt"

	"github.com/pthm-cable/bodies/components"
)

// Tips shown in the tip area.
const (
	TipPlaceCursor = "Place your cursor on a body."
	TipHowToGuess  = "Place your cursor on a body.\nYou can click the body the species of which you think will survive the evolution."
	TipExtinction  = "Every body died. Nobody won this evolution."
)

// HookFailedTip tells the operator that drawing or polling failed while the
// evolution keeps running.
func HookFailedTip(hook string, err error) string {
	return fmt.Sprintf("Something went wrong in %s: %v. The evolution goes on.", hook, err)
}

// EvolutionNumberTip announces the running evolution.
func EvolutionNumberTip(n int) string {
	return fmt.Sprintf("The number of the evolution is %d.", n)
}

// TipForShape explains what clicking a body of shape s does.
func TipForShape(s components.Shape) string {
	switch s {
	case components.ShapeCircle:
		return "Click the body the species of which you think will turn out to survive the evolution.\nThe body you select will become a triangle."
	case components.ShapeTriangle:
		return "Click this body to turn it back into a circle and cancel your guess."
	case components.ShapeSquare:
		return "Click this body to turn it into a rhombus. This rhombus means that\nboth AI and you think the species of this body will survive the evolution."
	case components.ShapeRhombus:
		return "Click this body to turn it back into a square and cancel\nyour guess."
	}
	return TipPlaceCursor
}

// PauseTip is the tip shown while paused for the given selection.
func PauseTip(bodies []Body, h *HoverState) string {
	if b, ok := Find(bodies, h.Selected); ok {
		return TipForShape(b.Shape)
	}
	return TipPlaceCursor
}

// OutcomeTip reports how the guesses fared once a species has won.
func OutcomeTip(operatorGuessed, operatorRight, predictorRight bool) string {
	var you string
	switch {
	case !operatorGuessed:
		you = "You did not guess."
	case operatorRight:
		you = "Your guess was right!"
	default:
		you = "Your guess was wrong."
	}
	ai := "The AI's guess was wrong."
	if predictorRight {
		ai = "The AI's guess was right."
	}
	return you + " " + ai
}
