package ui

import (
	"time"

	"github.com/mlange-42/ark/ecs"
)

// HoverState is the hover and selection bookkeeping used while paused.
// A zero entity means none; a zero Since means the hover never started.
type HoverState struct {
	Previous ecs.Entity // body under the cursor on the last poll
	Since    time.Time  // when Previous was first hovered
	Selected ecs.Entity // body hovered for at least the hover delay
	ShownFor ecs.Entity // body the info box currently describes

	// Clicked is set by the pause view when the operator clicks a body.
	// The engine consumes and clears it after each poll.
	Clicked ecs.Entity
}

// Reset forgets everything: no hovered, selected or shown body, and a hover
// start infinitely far in the past.
func (h *HoverState) Reset() {
	*h = HoverState{}
}

// Update feeds the body currently under the cursor (zero for none).
// A body becomes selected once it has been hovered for delay.
func (h *HoverState) Update(hovered ecs.Entity, now time.Time, delay time.Duration) {
	switch {
	case isNone(hovered):
		h.Previous = ecs.Entity{}
		h.Selected = ecs.Entity{}
	case hovered == h.Previous:
		if !h.Since.IsZero() && now.Sub(h.Since) >= delay {
			h.Selected = hovered
		}
	default:
		h.Previous = hovered
		h.Since = now
		h.Selected = ecs.Entity{}
	}
}

// HasSelection reports whether a body is selected.
func (h *HoverState) HasSelection() bool {
	return !isNone(h.Selected)
}

// RefreshInfo reconciles the info box with the selection. It returns true
// when the box must be redrawn, either for a new body or to be erased.
func (h *HoverState) RefreshInfo() bool {
	if h.ShownFor == h.Selected {
		return false
	}
	h.ShownFor = h.Selected
	return true
}

// TakeClick returns and clears the pending click.
func (h *HoverState) TakeClick() (ecs.Entity, bool) {
	e := h.Clicked
	h.Clicked = ecs.Entity{}
	return e, !isNone(e)
}
