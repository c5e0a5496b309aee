package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/bodies/components"
)

func TestDeviateStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for range 1000 {
		v := Deviate(100, 0.1, rng)
		if v < 89.99 || v > 110.01 {
			t.Fatalf("got %v, want value in [90, 110]", v)
		}
	}
	if got := Deviate(100, 0, rng); got != 100 {
		t.Errorf("zero deviation: got %v, want 100", got)
	}
}

func TestInheritKeepsDiscreteTraits(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	parent := components.Traits{Speed: 3, VisionDistance: 80, ProcreationThreshold: 500, Food: components.FoodAnything, Passive: true}

	child := Inherit(parent, 0.2, rng)
	if child.Food != parent.Food || child.Passive != parent.Passive {
		t.Errorf("got food=%v passive=%v, want food=%v passive=%v", child.Food, child.Passive, parent.Food, parent.Passive)
	}
}

func TestFounderTraitsFoodMix(t *testing.T) {
	cfg := testFloraConfig(t)
	cfg.Population.CarnivoreChance = 1
	cfg.Population.OmnivoreChance = 0
	rng := rand.New(rand.NewSource(8))
	if got := FounderTraits(cfg, rng).Food; got != components.FoodBodies {
		t.Errorf("got food %v, want bodies", got)
	}

	cfg.Population.CarnivoreChance = 0
	if got := FounderTraits(cfg, rng).Food; got != components.FoodPlants {
		t.Errorf("got food %v, want plants", got)
	}
}

func TestDivideWrapsChildren(t *testing.T) {
	es := newEntities(1)
	b := makeBody(es[0], 1, 1, 80, grazer, 2)
	children := Divide(b, 0, 200, 200, rand.New(rand.NewSource(6)))
	for i, c := range children {
		if c.Pos.X < 0 || c.Pos.X >= 200 || c.Pos.Y < 0 || c.Pos.Y >= 200 {
			t.Errorf("child %d at (%v, %v) is off the field", i, c.Pos.X, c.Pos.Y)
		}
	}
}
