package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// BodySighting is what other bodies can see of a body: where it stood and how
// much energy it had when the tick began.
type BodySighting struct {
	Entity  ecs.Entity
	X, Y    float32
	Energy  float32
	Species uint16
}

// PlantSighting is a plant as seen at tick start.
type PlantSighting struct {
	Entity ecs.Entity
	X, Y   float32
	Energy float32
}

// Field is the perception snapshot for one internal tick. It is filled once
// before any body acts and is read-only afterwards, except for claims.
// A claim marks a plant or body as eaten; the first claim wins.
type Field struct {
	Width, Height float32

	Bodies []BodySighting
	Plants []PlantSighting

	bodyGrid  *SpatialGrid
	plantGrid *SpatialGrid
	claimed   map[ecs.Entity]struct{}
	claims    []ecs.Entity
}

// NewField creates an empty perception snapshot for a world of the given size.
func NewField(width, height float32) *Field {
	return &Field{
		Width:     width,
		Height:    height,
		bodyGrid:  NewSpatialGrid(width, height, GridCellSize),
		plantGrid: NewSpatialGrid(width, height, GridCellSize),
		claimed:   make(map[ecs.Entity]struct{}),
	}
}

// Reset empties the snapshot so it can be refilled for the next tick.
func (f *Field) Reset() {
	f.Bodies = f.Bodies[:0]
	f.Plants = f.Plants[:0]
	f.bodyGrid.Clear()
	f.plantGrid.Clear()
	clear(f.claimed)
	f.claims = f.claims[:0]
}

// AddBody records a body in the snapshot.
func (f *Field) AddBody(b BodySighting) {
	f.bodyGrid.Insert(int32(len(f.Bodies)), b.X, b.Y)
	f.Bodies = append(f.Bodies, b)
}

// AddPlant records a plant in the snapshot.
func (f *Field) AddPlant(p PlantSighting) {
	f.plantGrid.Insert(int32(len(f.Plants)), p.X, p.Y)
	f.Plants = append(f.Plants, p)
}

// Claim marks e as eaten. It returns false if someone claimed it first.
func (f *Field) Claim(e ecs.Entity) bool {
	if _, ok := f.claimed[e]; ok {
		return false
	}
	f.claimed[e] = struct{}{}
	f.claims = append(f.claims, e)
	return true
}

// Claimed reports whether e was eaten earlier in this tick.
func (f *Field) Claimed(e ecs.Entity) bool {
	_, ok := f.claimed[e]
	return ok
}

// ClaimCount returns the number of entities eaten so far in this tick.
func (f *Field) ClaimCount() int {
	return len(f.claims)
}

// Claims returns the eaten entities in claim order.
// The slice is reused by the next Reset.
func (f *Field) Claims() []ecs.Entity {
	return f.claims
}

// Target is a food item found by a search, with the toroidal delta from the seeker.
type Target struct {
	Entity ecs.Entity
	DX, DY float32
	DistSq float32
	Energy float32 // energy the item held at tick start
	Body   bool    // true for prey, false for a plant
}

// NearestPlant returns the closest unclaimed plant within radius.
func (f *Field) NearestPlant(x, y, radius float32) (Target, bool) {
	n, ok := f.plantGrid.Nearest(x, y, radius, func(i int32) bool {
		return !f.Claimed(f.Plants[i].Entity)
	})
	if !ok {
		return Target{}, false
	}
	p := &f.Plants[n.Index]
	return Target{Entity: p.Entity, DX: n.DX, DY: n.DY, DistSq: n.DistSq, Energy: p.Energy}, true
}

// NearestPrey returns the closest unclaimed body within radius that belongs to
// another species and had less energy than maxEnergy at tick start.
func (f *Field) NearestPrey(self ecs.Entity, x, y, radius float32, species uint16, maxEnergy float32) (Target, bool) {
	n, ok := f.bodyGrid.Nearest(x, y, radius, func(i int32) bool {
		b := &f.Bodies[i]
		if b.Entity == self || b.Species == species || b.Energy >= maxEnergy {
			return false
		}
		return !f.Claimed(b.Entity)
	})
	if !ok {
		return Target{}, false
	}
	b := &f.Bodies[n.Index]
	return Target{Entity: b.Entity, DX: n.DX, DY: n.DY, DistSq: n.DistSq, Energy: b.Energy, Body: true}, true
}
