package ui

import (
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/components"
)

func newEntities(n int) []ecs.Entity {
	w := ecs.NewWorld()
	m := ecs.NewMap1[components.Position](w)
	es := make([]ecs.Entity, 0, n)
	for range n {
		es = append(es, m.NewEntity(&components.Position{}))
	}
	return es
}

func TestHoverStateReset(t *testing.T) {
	es := newEntities(1)
	h := HoverState{Previous: es[0], Since: time.Now(), Selected: es[0], ShownFor: es[0], Clicked: es[0]}
	h.Reset()

	if h != (HoverState{}) {
		t.Errorf("got %+v, want zero state", h)
	}
	if !h.Since.IsZero() {
		t.Error("hover start should be unset")
	}
	if h.HasSelection() {
		t.Error("nothing should be selected")
	}
}

func TestHoverStateSelectsAfterDelay(t *testing.T) {
	es := newEntities(2)
	delay := 300 * time.Millisecond
	t0 := time.Unix(100, 0)
	var h HoverState

	steps := []struct {
		name         string
		hovered      ecs.Entity
		at           time.Duration
		wantSelected ecs.Entity
	}{
		{"first hover starts the clock", es[0], 0, ecs.Entity{}},
		{"too early", es[0], 100 * time.Millisecond, ecs.Entity{}},
		{"delay reached", es[0], 300 * time.Millisecond, es[0]},
		{"still hovered", es[0], time.Second, es[0]},
		{"other body restarts the clock", es[1], 1100 * time.Millisecond, ecs.Entity{}},
		{"other body selected", es[1], 1400 * time.Millisecond, es[1]},
		{"cursor leaves", ecs.Entity{}, 1500 * time.Millisecond, ecs.Entity{}},
	}

	for _, s := range steps {
		h.Update(s.hovered, t0.Add(s.at), delay)
		if h.Selected != s.wantSelected {
			t.Errorf("%s: got selected %v, want %v", s.name, h.Selected, s.wantSelected)
		}
	}
}

func TestHoverStateRefreshInfo(t *testing.T) {
	es := newEntities(1)
	var h HoverState

	if h.RefreshInfo() {
		t.Error("nothing selected and nothing shown: no redraw expected")
	}
	h.Selected = es[0]
	if !h.RefreshInfo() {
		t.Error("new selection should be drawn")
	}
	if h.RefreshInfo() {
		t.Error("same selection should not be redrawn")
	}
	h.Selected = ecs.Entity{}
	if !h.RefreshInfo() {
		t.Error("cleared selection should erase the box")
	}
	if h.ShownFor != (ecs.Entity{}) {
		t.Errorf("got shown-for %v, want none", h.ShownFor)
	}
}

func TestHoverStateTakeClick(t *testing.T) {
	es := newEntities(1)
	h := HoverState{Clicked: es[0]}

	e, ok := h.TakeClick()
	if !ok || e != es[0] {
		t.Errorf("got (%v, %v), want (%v, true)", e, ok, es[0])
	}
	if _, ok := h.TakeClick(); ok {
		t.Error("click should be consumed")
	}
}
