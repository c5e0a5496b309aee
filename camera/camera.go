// Package camera maps the wrap-around evolution field onto the window.
package camera

import "github.com/pthm-cable/bodies/systems"

// Point is a screen position.
type Point struct{ X, Y float32 }

// Camera is the viewport into the evolution field. X and Y are the field
// position shown at the window center.
type Camera struct {
	X, Y float32
	Zoom float32 // 1 = one field unit per pixel

	ViewportW, ViewportH float32
	WorldW, WorldH       float32

	MinZoom, MaxZoom float32
}

// New creates a camera that shows the whole field.
func New(viewportW, viewportH, worldW, worldH, maxZoom float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   maxZoom,
	}
	c.MinZoom = c.fitZoom()
	c.MaxZoom = max(c.MaxZoom, c.MinZoom)
	c.Reset()
	return c
}

// fitZoom is the zoom at which the field just covers the viewport.
func (c *Camera) fitZoom() float32 {
	return max(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// Zoomed reports whether the camera shows less than the whole field.
func (c *Camera) Zoomed() bool {
	return c.Zoom > c.MinZoom
}

// WorldToScreen converts a field position to the screen, taking the
// shortest way around the field from the camera center.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx, dy := systems.ToroidalDelta(c.X, c.Y, wx, wy, c.WorldW, c.WorldH)
	return c.ViewportW/2 + dx*c.Zoom, c.ViewportH/2 + dy*c.Zoom
}

// ScreenToWorld converts a screen position to the field.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = systems.Wrap(c.X+(sx-c.ViewportW/2)/c.Zoom, c.WorldW)
	wy = systems.Wrap(c.Y+(sy-c.ViewportH/2)/c.Zoom, c.WorldH)
	return wx, wy
}

// IsVisible reports whether a circle at a field position may reach the screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	dx, dy := systems.ToroidalDelta(c.X, c.Y, wx, wy, c.WorldW, c.WorldH)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return dx >= -halfW && dx <= halfW && dy >= -halfH && dy <= halfH
}

// Ghosts returns the extra screen positions of a circle that straddles the
// edge of the view, so it shows on both sides of the seam.
func (c *Camera) Ghosts(dst []Point, wx, wy, radius float32) []Point {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	dx, dy := systems.ToroidalDelta(c.X, c.Y, wx, wy, c.WorldW, c.WorldH)

	sx, sy := c.ViewportW/2+dx*c.Zoom, c.ViewportH/2+dy*c.Zoom
	gx, okX := c.ghost(dx, halfW, radius, c.WorldW, c.ViewportW)
	gy, okY := c.ghost(dy, halfH, radius, c.WorldH, c.ViewportH)

	if okX {
		dst = append(dst, Point{gx, sy})
	}
	if okY {
		dst = append(dst, Point{sx, gy})
	}
	if okX && okY {
		dst = append(dst, Point{gx, gy})
	}
	return dst
}

func (c *Camera) ghost(d, half, radius, world, viewport float32) (float32, bool) {
	switch {
	case d > half-radius && d < half+radius:
		return viewport/2 + (d-world)*c.Zoom, true
	case d < -half+radius && d > -half-radius:
		return viewport/2 + (d+world)*c.Zoom, true
	}
	return 0, false
}

// Resize adapts the camera to a new window size.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.MinZoom = c.fitZoom()
	c.MaxZoom = max(c.MaxZoom, c.MinZoom)
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by a screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.X = systems.Wrap(c.X+dx/c.Zoom, c.WorldW)
	c.Y = systems.Wrap(c.Y+dy/c.Zoom, c.WorldH)
}

// SetZoom sets the zoom, clamped to the allowed range.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
}

// ZoomAt multiplies the zoom by factor while keeping the field point under
// the screen position (sx, sy) in place.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)
	c.X = systems.Wrap(wx-(sx-c.ViewportW/2)/c.Zoom, c.WorldW)
	c.Y = systems.Wrap(wy-(sy-c.ViewportH/2)/c.Zoom, c.WorldH)
}

// ToggleZoom zooms all the way in on the screen position (sx, sy), or back
// out to the whole field if already zoomed.
func (c *Camera) ToggleZoom(sx, sy float32) {
	if c.Zoomed() {
		c.Reset()
		return
	}
	wx, wy := c.ScreenToWorld(sx, sy)
	c.X, c.Y = wx, wy
	c.Zoom = c.MaxZoom
}

// Reset shows the whole field.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = c.MinZoom
}
