package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodies/camera"
	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/config"
	"github.com/pthm-cable/bodies/game"
	"github.com/pthm-cable/bodies/ui"
)

// ErrNoWindow is returned when drawing before the window is open.
var ErrNoWindow = errors.New("raylib window is not open")

// Raylib draws frames and reads operator input. It implements the engine's
// Renderer, TipSink, GuessGate and PauseView hooks and must be used from
// the goroutine that opened the window.
type Raylib struct {
	theme  Theme
	cam    *camera.Camera
	knobs  *game.Knobs
	radius float32

	hoverDelay   time.Duration
	maxTimeLapse float32 // seconds

	tip       string
	guessing  bool
	highlight bool

	last  game.FrameView
	hover *ui.HoverState

	cancelRun context.CancelFunc
	quit      bool
	ghosts    []camera.Point
}

// New creates a renderer for an open window.
func New(cfg *config.Config, knobs *game.Knobs) *Raylib {
	return &Raylib{
		theme: DefaultTheme(),
		cam: camera.New(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()),
			cfg.Derived.WorldW32, cfg.Derived.WorldH32, float32(cfg.Pacing.MaxZoom)),
		knobs:        knobs,
		radius:       cfg.Derived.Radius32,
		hoverDelay:   cfg.Derived.HoverDelay,
		maxTimeLapse: float32(max(cfg.Pacing.TimeLapse, 1)),
		guessing:     true,
	}
}

// SetRunCancel registers the function that aborts the current run when the
// operator asks for a new evolution or closes the window.
func (r *Raylib) SetRunCancel(cancel context.CancelFunc) {
	r.cancelRun = cancel
}

// Quit reports whether the operator closed the window.
func (r *Raylib) Quit() bool {
	return r.quit
}

// ShowTip implements game.TipSink.
func (r *Raylib) ShowTip(tip string) {
	r.tip = tip
}

// SetGuessing implements game.GuessGate.
func (r *Raylib) SetGuessing(enabled bool) {
	r.guessing = enabled
	if !enabled {
		r.highlight = false
	}
}

// Render implements game.Renderer.
func (r *Raylib) Render(view game.FrameView) error {
	r.hover = nil
	return r.frame(view)
}

// PollPause implements game.PauseView. It draws the frozen field, tracks
// the body under the cursor and reports clicks on it.
func (r *Raylib) PollPause(h *ui.HoverState, view game.FrameView) error {
	mouse := rl.GetMousePosition()
	hovered := ui.Body{}
	if !r.overControls(mouse) {
		wx, wy := r.cam.ScreenToWorld(mouse.X, mouse.Y)
		hovered, _ = ui.BodyAt(view.Bodies, view.Field, wx, wy)
	}
	h.Update(hovered.Entity, time.Now(), r.hoverDelay)
	h.RefreshInfo()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && h.HasSelection() && h.Selected == hovered.Entity {
		h.Clicked = h.Selected
	}

	r.hover = h
	return r.frame(view)
}

// Linger keeps drawing the last frame, so the operator can read the
// outcome, until d has passed, ctx is done, or the operator asks for the
// next evolution.
func (r *Raylib) Linger(ctx context.Context, d time.Duration) error {
	deadline := time.Now().Add(d)
	next := false
	r.cancelRun = func() { next = true }
	r.hover = nil
	for !next && !r.quit && ctx.Err() == nil && time.Now().Before(deadline) {
		if err := r.frame(r.last); err != nil {
			return err
		}
	}
	return nil
}

func (r *Raylib) frame(view game.FrameView) error {
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	r.last = view
	r.handleInput()

	rl.BeginDrawing()
	rl.ClearBackground(r.theme.Background)
	r.drawField(view)
	r.drawHUD(view)
	r.drawInfo(view)
	r.drawTip()
	r.drawControls(view)
	rl.EndDrawing()

	if rl.WindowShouldClose() {
		r.quit = true
		r.abortRun()
	}
	return nil
}

func (r *Raylib) abortRun() {
	if r.cancelRun != nil {
		r.cancelRun()
	}
}

func (r *Raylib) handleInput() {
	if rl.IsWindowResized() {
		r.cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		r.knobs.TogglePause()
	}

	pan := 8 / r.cam.Zoom
	if rl.IsKeyDown(rl.KeyRight) {
		r.cam.Pan(pan, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		r.cam.Pan(-pan, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		r.cam.Pan(0, pan)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		r.cam.Pan(0, -pan)
	}

	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		r.cam.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		r.cam.ToggleZoom(mouse.X, mouse.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		r.cam.Reset()
	}
}

func (r *Raylib) drawField(view game.FrameView) {
	for _, p := range view.Plants {
		r.each(p.X, p.Y, r.radius, func(s rl.Vector2) {
			rl.DrawPoly(s, 3, r.radius*0.7*r.cam.Zoom, -90, r.theme.Plant)
		})
	}

	for _, c := range view.Crosses {
		col := speciesColor(c.Species, 1-c.Fade)
		arm := r.radius * r.cam.Zoom
		r.each(c.X, c.Y, r.radius, func(s rl.Vector2) {
			rl.DrawLineEx(rl.Vector2{X: s.X - arm, Y: s.Y - arm}, rl.Vector2{X: s.X + arm, Y: s.Y + arm}, 2, col)
			rl.DrawLineEx(rl.Vector2{X: s.X - arm, Y: s.Y + arm}, rl.Vector2{X: s.X + arm, Y: s.Y - arm}, 2, col)
		})
	}

	for i := range view.Bodies {
		b := &view.Bodies[i]
		col := speciesColor(b.Species, 1)
		size := r.radius * r.cam.Zoom
		r.each(b.X, b.Y, r.radius, func(s rl.Vector2) {
			drawShape(s, size, b.Shape, col)
			if r.highlight && b.Shape.OperatorGuessed() {
				rl.DrawCircleLinesV(s, size*1.8, r.theme.Highlight)
			}
		})
	}

	if r.hover != nil {
		if b, ok := ui.Find(view.Bodies, r.hover.Selected); ok {
			s := r.screen(b.X, b.Y)
			rl.DrawCircleLinesV(s, b.VisionDistance*r.cam.Zoom, rl.Fade(speciesColor(b.Species, 1), 0.5))
			rl.DrawCircleLinesV(s, r.radius*ui.HitScale*r.cam.Zoom, r.theme.Highlight)
		}
	}
}

// each calls draw for every screen copy of a field position that is visible.
func (r *Raylib) each(wx, wy, radius float32, draw func(rl.Vector2)) {
	if r.cam.IsVisible(wx, wy, radius) {
		draw(r.screen(wx, wy))
	}
	r.ghosts = r.cam.Ghosts(r.ghosts[:0], wx, wy, radius)
	for _, g := range r.ghosts {
		draw(rl.Vector2{X: g.X, Y: g.Y})
	}
}

func (r *Raylib) screen(wx, wy float32) rl.Vector2 {
	sx, sy := r.cam.WorldToScreen(wx, wy)
	return rl.Vector2{X: sx, Y: sy}
}

func drawShape(s rl.Vector2, size float32, shape components.Shape, col rl.Color) {
	switch shape {
	case components.ShapeCircle:
		rl.DrawCircleV(s, size, col)
	case components.ShapeTriangle:
		rl.DrawPoly(s, 3, size*1.3, -90, col)
	case components.ShapeSquare:
		rl.DrawPoly(s, 4, size*1.3, 45, col)
	case components.ShapeRhombus:
		rl.DrawPoly(s, 4, size*1.4, 0, col)
	}
}

func (r *Raylib) drawHUD(view game.FrameView) {
	mode := view.Mode.String()
	if view.Mode == game.ModeTimeLapse {
		mode = fmt.Sprintf("%s %.2fs", mode, view.TimeLapse.Seconds())
	}
	lines := []string{
		fmt.Sprintf("Status: %s", view.Status),
		fmt.Sprintf("Actions: %d", view.Actions),
		fmt.Sprintf("Bodies: %d  Species: %d", len(view.Bodies), view.Species),
		fmt.Sprintf("Plants: %d", len(view.Plants)),
		fmt.Sprintf("Mode: %s", mode),
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
	}
	if view.RenderErrors > 0 {
		lines = append(lines, fmt.Sprintf("Drawing errors: %d", view.RenderErrors))
	}
	r.theme.drawLines(10, 10, fmt.Sprintf("Evolution %d", view.Evolution), lines)
}

func (r *Raylib) drawInfo(view game.FrameView) {
	if r.hover == nil || !r.hover.HasSelection() {
		return
	}
	b, ok := ui.Find(view.Bodies, r.hover.Selected)
	if !ok {
		return
	}
	mouse := rl.GetMousePosition()
	r.theme.drawLines(int32(mouse.X)+16, int32(mouse.Y)+16, b.Shape.String(), ui.InfoLines(b, view.Bodies))
}

func (r *Raylib) drawTip() {
	if r.tip == "" {
		return
	}
	y := int32(rl.GetScreenHeight()) - 3*r.theme.LineHeight - r.theme.Padding
	rl.DrawText(r.tip, r.theme.Padding, y, r.theme.HeaderSize, r.theme.Tip)
}
