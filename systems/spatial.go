// Package systems provides the body action model and the perception structures it runs on.
package systems

import "math"

// GridCellSize is the default spatial grid cell size in world units.
const GridCellSize = 64.0

// Neighbor holds a nearby point with precomputed spatial data.
type Neighbor struct {
	Index  int32   // index into the slice the grid was built from
	DX, DY float32 // Toroidal delta from query origin
	DistSq float32 // Squared distance (avoid sqrt in hot path)
}

type gridPoint struct {
	index int32
	x, y  float32
}

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid.
// It stores positions by value, so queries see the field as it was when the
// grid was filled even if the bodies move afterwards.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	width    float32
	height   float32
	cells    [][]gridPoint
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	// Cells tile the field exactly so that wrapping a column index lands on
	// the cell across the edge.
	cols := max(int(math.Ceil(float64(width/cellSize))), 1)
	rows := max(int(math.Ceil(float64(height/cellSize))), 1)

	cells := make([][]gridPoint, cols*rows)
	for i := range cells {
		cells[i] = make([]gridPoint, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		cells:    cells,
	}
}

// Clear removes all points from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a point to the grid.
func (g *SpatialGrid) Insert(index int32, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], gridPoint{index: index, x: x, y: y})
}

// Nearest returns the closest point within radius for which accept reports
// true. Every cell in range is scanned, so the result does not depend on how
// crowded the neighbourhood is.
func (g *SpatialGrid) Nearest(x, y, radius float32, accept func(index int32) bool) (Neighbor, bool) {
	cellRadius, rowRadius := g.span(radius)
	centerCol := int(x / g.cellSize)
	centerRow := int(y / g.cellSize)
	radiusSq := radius * radius

	var best Neighbor
	found := false
	for dc := -cellRadius; dc <= cellRadius; dc++ {
		for dr := -rowRadius; dr <= rowRadius; dr++ {
			col := ((centerCol+dc)%g.cols + g.cols) % g.cols
			row := ((centerRow+dr)%g.rows + g.rows) % g.rows

			for _, p := range g.cells[row*g.cols+col] {
				dx, dy := ToroidalDelta(x, y, p.x, p.y, g.width, g.height)
				distSq := dx*dx + dy*dy
				if distSq > radiusSq || (found && distSq >= best.DistSq) {
					continue
				}
				if !accept(p.index) {
					continue
				}
				best = Neighbor{Index: p.index, DX: dx, DY: dy, DistSq: distSq}
				found = true
			}
		}
	}
	return best, found
}

// span returns how many cells a query of radius reaches in each direction,
// limited so a wrapped query does not lap the grid.
func (g *SpatialGrid) span(radius float32) (cols, rows int) {
	cols = int(radius/g.cellSize) + 1
	if limit := g.cols/2 + 1; cols > limit {
		cols = limit
	}
	rows = int(radius/g.cellSize) + 1
	if limit := g.rows/2 + 1; rows > limit {
		rows = limit
	}
	return cols, rows
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}

// ToroidalDelta returns the shortest path delta from (x1,y1) to (x2,y2).
func ToroidalDelta(x1, y1, x2, y2, w, h float32) (dx, dy float32) {
	dx = x2 - x1
	dy = y2 - y1

	if dx > w/2 {
		dx -= w
	} else if dx < -w/2 {
		dx += w
	}
	if dy > h/2 {
		dy -= h
	} else if dy < -h/2 {
		dy += h
	}

	return dx, dy
}

// Wrap maps a coordinate back onto [0, size).
func Wrap(v, size float32) float32 {
	for v < 0 {
		v += size
	}
	for v >= size {
		v -= size
	}
	return v
}
