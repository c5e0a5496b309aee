package systems

import (
	"testing"
)

func TestToroidalDelta(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float32
		wantDX, wantDY float32
	}{
		{"direct", 10, 10, 20, 30, 10, 20},
		{"wrap right edge", 95, 50, 5, 50, 10, 0},
		{"wrap left edge", 5, 50, 95, 50, -10, 0},
		{"wrap bottom edge", 50, 98, 50, 2, 0, 4},
		{"same point", 40, 40, 40, 40, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := ToroidalDelta(tt.x1, tt.y1, tt.x2, tt.y2, 100, 100)
			if dx != tt.wantDX || dy != tt.wantDY {
				t.Errorf("got (%v, %v), want (%v, %v)", dx, dy, tt.wantDX, tt.wantDY)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, want float32
	}{
		{50, 50},
		{-10, 90},
		{100, 0},
		{230, 30},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, 100); got != tt.want {
			t.Errorf("Wrap(%v, 100): got %v, want %v", tt.v, got, tt.want)
		}
	}
}

func acceptAll(int32) bool { return true }

func TestNearest(t *testing.T) {
	g := NewSpatialGrid(640, 480, GridCellSize)
	g.Insert(0, 100, 100)
	g.Insert(1, 110, 100)
	g.Insert(2, 300, 300)
	g.Insert(3, 635, 100) // across the left edge from index 4
	g.Insert(4, 5, 100)

	got, ok := g.Nearest(100, 100, 20, func(i int32) bool { return i != 0 })
	if !ok || got.Index != 1 {
		t.Fatalf("got %+v (found %v), want index 1", got, ok)
	}
	if got.DX != 10 || got.DistSq != 100 {
		t.Errorf("got DX=%v DistSq=%v, want DX=10 DistSq=100", got.DX, got.DistSq)
	}

	got, ok = g.Nearest(5, 100, 20, func(i int32) bool { return i != 4 })
	if !ok || got.Index != 3 {
		t.Fatalf("got %+v (found %v), want index 3 across the edge", got, ok)
	}
	if got.DX != -10 {
		t.Errorf("got DX=%v, want -10", got.DX)
	}

	g.Clear()
	if _, ok := g.Nearest(100, 100, 500, acceptAll); ok {
		t.Error("found a point after Clear")
	}
}

func TestNearestSmallGridWrapsOnce(t *testing.T) {
	g := NewSpatialGrid(100, 100, GridCellSize)
	g.Insert(0, 10, 10)
	g.Insert(1, 90, 90)

	got, ok := g.Nearest(2, 2, 200, func(i int32) bool { return i == 1 })
	if !ok || got.Index != 1 {
		t.Fatalf("got %+v (found %v), want index 1 across the corner", got, ok)
	}
	if got.DX != -12 || got.DY != -12 || got.DistSq != 288 {
		t.Errorf("got DX=%v DY=%v DistSq=%v, want -12 -12 288", got.DX, got.DY, got.DistSq)
	}
}

func TestNearestInDenseCell(t *testing.T) {
	const dense = 140
	g := NewSpatialGrid(640, 480, GridCellSize)
	for i := range dense {
		g.Insert(int32(i), 200+float32(i%20), 200+float32(i/20)) // block within 30 units
	}
	near := int32(dense)
	g.Insert(near, 199, 190)

	got, ok := g.Nearest(199, 191, 60, acceptAll)
	if !ok || got.Index != near || got.DistSq != 1 {
		t.Errorf("got %+v (found %v), want index %d at DistSq 1", got, ok, near)
	}

	got, ok = g.Nearest(199, 191, 60, func(i int32) bool { return i != near })
	if !ok || got.Index == near {
		t.Errorf("got %+v (found %v), want a point other than the rejected one", got, ok)
	}

	if _, ok := g.Nearest(600, 20, 5, acceptAll); ok {
		t.Error("found a point in an empty neighbourhood")
	}
}
