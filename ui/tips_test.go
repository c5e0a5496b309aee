package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/pthm-cable/bodies/components"
)

func TestTipForShapeCoversEveryShape(t *testing.T) {
	seen := make(map[string]components.Shape)
	for _, s := range components.AllShapes {
		tip := TipForShape(s)
		if tip == "" || tip == TipPlaceCursor {
			t.Errorf("%v: got generic tip %q", s, tip)
		}
		if other, dup := seen[tip]; dup {
			t.Errorf("%v and %v share a tip", s, other)
		}
		seen[tip] = s
	}
}

func TestTipForShapeMentionsResult(t *testing.T) {
	tests := []struct {
		shape components.Shape
		want  string
	}{
		{components.ShapeCircle, "triangle"},
		{components.ShapeTriangle, "circle"},
		{components.ShapeSquare, "rhombus"},
		{components.ShapeRhombus, "square"},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			if tip := TipForShape(tt.shape); !strings.Contains(tip, tt.want) {
				t.Errorf("got %q, want mention of %q", tip, tt.want)
			}
		})
	}
}

func TestEvolutionNumberTip(t *testing.T) {
	if got, want := EvolutionNumberTip(3), "The number of the evolution is 3."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPauseTip(t *testing.T) {
	es := newEntities(2)
	bodies := []Body{
		{Entity: es[0], Shape: components.ShapeSquare},
		{Entity: es[1], Shape: components.ShapeCircle},
	}

	var h HoverState
	if got := PauseTip(bodies, &h); got != TipPlaceCursor {
		t.Errorf("no selection: got %q, want %q", got, TipPlaceCursor)
	}
	h.Selected = es[0]
	if got, want := PauseTip(bodies, &h), TipForShape(components.ShapeSquare); got != want {
		t.Errorf("square selected: got %q, want %q", got, want)
	}
}

func TestOutcomeTip(t *testing.T) {
	tests := []struct {
		name                                   string
		guessed, operatorRight, predictorRight bool
		want                                   string
	}{
		{"no guess", false, false, true, "You did not guess. The AI's guess was right."},
		{"both right", true, true, true, "Your guess was right! The AI's guess was right."},
		{"operator wrong", true, false, false, "Your guess was wrong. The AI's guess was wrong."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutcomeTip(tt.guessed, tt.operatorRight, tt.predictorRight); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHookFailedTip(t *testing.T) {
	got := HookFailedTip("render", errors.New("window lost"))
	for _, want := range []string{"render", "window lost", "goes on"} {
		if !strings.Contains(got, want) {
			t.Errorf("got %q, want it to mention %q", got, want)
		}
	}
}
