package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewShowsWholeField(t *testing.T) {
	tests := []struct {
		name                 string
		vw, vh, ww, wh, want float32
	}{
		{"field matches window", 1280, 800, 1280, 800, 1},
		{"field twice the window", 1280, 720, 2560, 1440, 0.5},
		{"wide window", 1600, 800, 1280, 800, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.vw, tt.vh, tt.ww, tt.wh, 4)
			if !near(cam.Zoom, tt.want) {
				t.Errorf("zoom: got %v, want %v", cam.Zoom, tt.want)
			}
			if cam.X != tt.ww/2 || cam.Y != tt.wh/2 {
				t.Errorf("center: got (%v, %v), want (%v, %v)", cam.X, cam.Y, tt.ww/2, tt.wh/2)
			}
			if cam.Zoomed() {
				t.Error("Zoomed: got true, want false")
			}
		})
	}
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, 4)
	cam.SetZoom(2)
	cam.X, cam.Y = 100, 1400

	for _, p := range []Point{{640, 360}, {100, 100}, {1200, 600}} {
		wx, wy := cam.ScreenToWorld(p.X, p.Y)
		if wx < 0 || wx >= cam.WorldW || wy < 0 || wy >= cam.WorldH {
			t.Errorf("(%v, %v): world point (%v, %v) off the field", p.X, p.Y, wx, wy)
		}
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, p.X) || !near(sy, p.Y) {
			t.Errorf("round trip: got (%v, %v), want (%v, %v)", sx, sy, p.X, p.Y)
		}
	}
}

func TestWorldToScreenWraps(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, 4)
	cam.SetZoom(1)
	cam.X = 100

	sx, _ := cam.WorldToScreen(2500, 720)
	if want := float32(640 - 160); !near(sx, want) {
		t.Errorf("got x=%v, want %v", sx, want)
	}
}

func TestSetZoomClamps(t *testing.T) {
	cam := New(1280, 800, 1280, 800, 4)

	cam.SetZoom(100)
	if cam.Zoom != 4 {
		t.Errorf("zoom above max: got %v, want 4", cam.Zoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != 1 {
		t.Errorf("zoom below min: got %v, want 1", cam.Zoom)
	}
}

func TestZoomAtKeepsPointUnderCursor(t *testing.T) {
	cam := New(1280, 800, 1280, 800, 4)
	wx, wy := cam.ScreenToWorld(300, 200)

	cam.ZoomAt(300, 200, 2)
	gx, gy := cam.ScreenToWorld(300, 200)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("point under cursor: got (%v, %v), want (%v, %v)", gx, gy, wx, wy)
	}
}

func TestToggleZoom(t *testing.T) {
	cam := New(1280, 800, 1280, 800, 4)

	cam.ToggleZoom(320, 200)
	if cam.Zoom != 4 || !cam.Zoomed() {
		t.Errorf("zoom in: got %v, want 4", cam.Zoom)
	}
	if !near(cam.X, 320) || !near(cam.Y, 200) {
		t.Errorf("center: got (%v, %v), want (320, 200)", cam.X, cam.Y)
	}

	cam.ToggleZoom(0, 0)
	if cam.Zoomed() || cam.X != 640 || cam.Y != 400 {
		t.Errorf("zoom out: got zoom %v center (%v, %v), want whole field", cam.Zoom, cam.X, cam.Y)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(1280, 800, 1280, 800, 4)
	cam.Pan(-700, 500)

	if !near(cam.X, 1220) || !near(cam.Y, 100) {
		t.Errorf("got (%v, %v), want (1220, 100)", cam.X, cam.Y)
	}
}

func TestGhosts(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000, 4)

	tests := []struct {
		name   string
		wx, wy float32
		want   int
	}{
		{"center", 500, 500, 0},
		{"left edge", 2, 500, 1},
		{"top edge", 500, 998, 1},
		{"corner", 2, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(cam.Ghosts(nil, tt.wx, tt.wy, 6)); got != tt.want {
				t.Errorf("got %d ghosts, want %d", got, tt.want)
			}
		})
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 800, 2560, 1600, 4)
	cam.SetZoom(2)

	if !cam.IsVisible(1280, 800, 6) {
		t.Error("center: got false, want true")
	}
	if cam.IsVisible(0, 0, 6) {
		t.Error("far corner: got true, want false")
	}
}
