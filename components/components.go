// Package components defines ECS components for the simulation.
package components

// Position represents an entity's position on the evolution field.
type Position struct {
	X, Y float32
}

// Rotation holds the heading a wandering body keeps until it finds food.
type Rotation struct {
	Heading   float32
	Wandering bool
}

// Energy is a body's budget. It is spent by living and moving and gained by eating.
// A body whose energy drops to zero or below dies in the same tick.
type Energy struct {
	Value float32
}

// FoodPreference selects what a body hunts for.
type FoodPreference uint8

const (
	FoodPlants FoodPreference = iota
	FoodBodies
	FoodAnything
)

// String returns the display name for a FoodPreference.
func (f FoodPreference) String() string {
	switch f {
	case FoodPlants:
		return "plants"
	case FoodBodies:
		return "bodies"
	case FoodAnything:
		return "plants and bodies"
	}
	return "unknown"
}

// EatsPlants reports whether plants are food.
func (f FoodPreference) EatsPlants() bool {
	return f == FoodPlants || f == FoodAnything
}

// EatsBodies reports whether other bodies are food.
func (f FoodPreference) EatsBodies() bool {
	return f == FoodBodies || f == FoodAnything
}

// Traits holds heritable behavior parameters.
type Traits struct {
	Speed                float32 // distance moved per tick
	VisionDistance       float32
	ProcreationThreshold float32 // energy above which the body divides
	Food                 FoodPreference
	Passive              bool // stands still when no food is in sight
}

// Lineage ties a body to its species and records its depth in the family tree.
type Lineage struct {
	ID         uint32
	Species    uint16
	Generation uint32
}

// Look holds display-only state. The simulation never reads it,
// but children inherit it and it must survive every tick.
type Look struct {
	Shape Shape
}

// Plant marks a resource entity. Plants are eaten at most once.
type Plant struct {
	Energy float32
}

// Cross marks where a body died. It fades after a configured lifespan.
type Cross struct {
	Species uint16
	BornAt  int64 // nanoseconds since the engine started
}
