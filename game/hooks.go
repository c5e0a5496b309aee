package game

import (
	"time"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/ui"
)

// CrossView is a death marker as drawn on the field.
type CrossView struct {
	X, Y    float32
	Species uint16
	Fade    float32 // 0 when fresh, approaching 1 at the end of its lifespan
}

// FrameView is everything a frame needs to be drawn. It is a copy;
// collaborators may keep it but changes do not reach the engine.
type FrameView struct {
	Field   ui.Field
	Bodies  []ui.Body
	Plants  []components.Position
	Crosses []CrossView

	Evolution int
	Actions   int64
	Species   int
	Status    Status
	Result    Result
	Mode      Mode
	TimeLapse time.Duration
	Paused    bool

	RenderErrors int // collaborator failures so far in this run
}

// Renderer draws the field once per rendered frame.
type Renderer interface {
	Render(view FrameView) error
}

// TipSink displays human-readable tips.
type TipSink interface {
	ShowTip(tip string)
}

// GuessGate enables or disables the guess controls. It is called only when
// the "no guessed bodies remain" condition changes.
type GuessGate interface {
	SetGuessing(enabled bool)
}

// PauseView runs one UI event-loop iteration while paused. It updates the
// hover bookkeeping in state, and records an operator click in state.Clicked.
type PauseView interface {
	PollPause(state *ui.HoverState, view FrameView) error
}

// Hooks bundles the external collaborators. Nil members are replaced by no-ops.
type Hooks struct {
	Renderer Renderer
	Tips     TipSink
	Gate     GuessGate
	Pause    PauseView
}

type nopHooks struct{}

func (nopHooks) Render(FrameView) error                    { return nil }
func (nopHooks) ShowTip(string)                            {}
func (nopHooks) SetGuessing(bool)                          {}
func (nopHooks) PollPause(*ui.HoverState, FrameView) error { return nil }

func (h Hooks) withDefaults() Hooks {
	if h.Renderer == nil {
		h.Renderer = nopHooks{}
	}
	if h.Tips == nil {
		h.Tips = nopHooks{}
	}
	if h.Gate == nil {
		h.Gate = nopHooks{}
	}
	if h.Pause == nil {
		h.Pause = nopHooks{}
	}
	return h
}
