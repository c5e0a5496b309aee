package renderer

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodies/game"
)

const (
	controlsWidth  = 220
	controlsHeight = 150
	controlRow     = 30
)

// controlsBounds returns the control panel rectangle for a screen size.
func controlsBounds(screenW, screenH float32) rl.Rectangle {
	return rl.Rectangle{X: screenW - controlsWidth - 10, Y: 10, Width: controlsWidth, Height: controlsHeight}
}

func (r *Raylib) overControls(p rl.Vector2) bool {
	b := controlsBounds(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	return p.X >= b.X && p.X <= b.X+b.Width && p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// drawControls runs the operator panel: pause, time-lapse, guess highlight
// and new evolution.
func (r *Raylib) drawControls(view game.FrameView) {
	b := controlsBounds(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	r.theme.drawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	x := b.X + float32(r.theme.Padding)
	y := b.Y + float32(r.theme.Padding)
	w := b.Width - 2*float32(r.theme.Padding)

	label := "Pause"
	if view.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, label) {
		r.knobs.TogglePause()
	}
	y += controlRow

	lapse := float32(r.knobs.TimeLapse().Seconds())
	rl.DrawText(fmt.Sprintf("Time-lapse %.2fs", lapse), int32(x), int32(y), r.theme.FontSize, r.theme.Text)
	y += float32(r.theme.LineHeight)
	next := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: w, Height: 16}, "", "", lapse, 0, r.maxTimeLapse)
	if next != lapse {
		r.knobs.SetTimeLapse(time.Duration(float64(next) * float64(time.Second)))
	}
	y += controlRow - 6

	if !r.guessing {
		gui.Disable()
	}
	r.highlight = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Highlight my guess", r.highlight) && r.guessing
	gui.Enable()
	y += controlRow - 4

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "New evolution") {
		r.abortRun()
	}
}
