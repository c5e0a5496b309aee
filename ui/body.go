// Package ui holds the operator-facing state of the evolution field:
// hover and selection bookkeeping, tip texts, and the body info box.
// It does no drawing; the renderer turns this state into pixels.
package ui

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/systems"
)

// HitScale enlarges a body's radius for cursor hit-testing.
const HitScale = 1.2

// Body is a read-only copy of one body for display.
type Body struct {
	Entity               ecs.Entity
	X, Y                 float32
	Energy               float32
	Speed                float32
	VisionDistance       float32
	ProcreationThreshold float32
	Food                 components.FoodPreference
	Passive              bool
	Generation           uint32
	Species              uint16
	Shape                components.Shape
}

// Field describes the evolution field the bodies live on.
type Field struct {
	Width, Height float32
	Radius        float32 // body radius
}

// BodyAt returns the body closest to (x, y) whose enlarged radius covers the point.
// Coordinates are world coordinates; the field wraps around.
func BodyAt(bodies []Body, f Field, x, y float32) (Body, bool) {
	hit := f.Radius * HitScale
	hitSq := hit * hit

	var best Body
	bestSq := float32(-1)
	for i := range bodies {
		dx, dy := systems.ToroidalDelta(x, y, bodies[i].X, bodies[i].Y, f.Width, f.Height)
		d := dx*dx + dy*dy
		if d <= hitSq && (bestSq < 0 || d < bestSq) {
			best, bestSq = bodies[i], d
		}
	}
	return best, bestSq >= 0
}

// Find returns the body with entity e.
func Find(bodies []Body, e ecs.Entity) (Body, bool) {
	if isNone(e) {
		return Body{}, false
	}
	for i := range bodies {
		if bodies[i].Entity == e {
			return bodies[i], true
		}
	}
	return Body{}, false
}

// SpeciesCount returns how many bodies belong to species.
func SpeciesCount(bodies []Body, species uint16) int {
	n := 0
	for i := range bodies {
		if bodies[i].Species == species {
			n++
		}
	}
	return n
}

func isNone(e ecs.Entity) bool {
	return e == ecs.Entity{}
}
