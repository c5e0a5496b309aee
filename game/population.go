package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/systems"
	"github.com/pthm-cable/bodies/telemetry"
	"github.com/pthm-cable/bodies/ui"
)

// Population is the store of live bodies, plants and death crosses.
// Structural changes (adding or removing entities) must not happen while a
// query is open; the tick collects them and applies them after each pass.
type Population struct {
	world *ecs.World

	bodyMapper *ecs.Map6[
		components.Position,
		components.Rotation,
		components.Energy,
		components.Traits,
		components.Lineage,
		components.Look,
	]
	bodyFilter *ecs.Filter6[
		components.Position,
		components.Rotation,
		components.Energy,
		components.Traits,
		components.Lineage,
		components.Look,
	]

	plantMapper *ecs.Map2[components.Position, components.Plant]
	plantFilter *ecs.Filter2[components.Position, components.Plant]
	plantMap    *ecs.Map[components.Plant]

	crossMapper *ecs.Map2[components.Position, components.Cross]
	crossFilter *ecs.Filter2[components.Position, components.Cross]

	lookMap    *ecs.Map[components.Look]
	lineageMap *ecs.Map[components.Lineage]

	nextID     uint32
	bodyCount  int
	plantCount int
}

// NewPopulation creates an empty population.
func NewPopulation() *Population {
	world := ecs.NewWorld()
	return &Population{
		world: world,
		bodyMapper: ecs.NewMap6[
			components.Position,
			components.Rotation,
			components.Energy,
			components.Traits,
			components.Lineage,
			components.Look,
		](world),
		bodyFilter: ecs.NewFilter6[
			components.Position,
			components.Rotation,
			components.Energy,
			components.Traits,
			components.Lineage,
			components.Look,
		](world),
		plantMapper: ecs.NewMap2[components.Position, components.Plant](world),
		plantFilter: ecs.NewFilter2[components.Position, components.Plant](world),
		plantMap:    ecs.NewMap[components.Plant](world),
		crossMapper: ecs.NewMap2[components.Position, components.Cross](world),
		crossFilter: ecs.NewFilter2[components.Position, components.Cross](world),
		lookMap:     ecs.NewMap[components.Look](world),
		lineageMap:  ecs.NewMap[components.Lineage](world),
	}
}

// Len returns the number of live bodies.
func (p *Population) Len() int {
	return p.bodyCount
}

// PlantCount returns the number of plants on the field.
func (p *Population) PlantCount() int {
	return p.plantCount
}

// AddBody adds a body and assigns it a fresh lineage id.
func (p *Population) AddBody(pos components.Position, rot components.Rotation, energy components.Energy,
	traits components.Traits, lineage components.Lineage, look components.Look) ecs.Entity {
	p.nextID++
	lineage.ID = p.nextID
	p.bodyCount++
	return p.bodyMapper.NewEntity(&pos, &rot, &energy, &traits, &lineage, &look)
}

// AddChild adds a body produced by division.
func (p *Population) AddChild(c systems.Child, heading float32) ecs.Entity {
	return p.AddBody(c.Pos, components.Rotation{Heading: heading}, c.Energy, c.Traits, c.Lineage, c.Look)
}

// AddPlant adds a plant.
func (p *Population) AddPlant(pos components.Position, energy float32) ecs.Entity {
	p.plantCount++
	return p.plantMapper.NewEntity(&pos, &components.Plant{Energy: energy})
}

// AddCross leaves a death marker.
func (p *Population) AddCross(pos components.Position, species uint16, bornAt int64) ecs.Entity {
	return p.crossMapper.NewEntity(&pos, &components.Cross{Species: species, BornAt: bornAt})
}

// IsBody reports whether e is a live body.
func (p *Population) IsBody(e ecs.Entity) bool {
	return p.world.Alive(e) && p.lookMap.Has(e)
}

// IsPlant reports whether e is a plant on the field.
func (p *Population) IsPlant(e ecs.Entity) bool {
	return p.world.Alive(e) && p.plantMap.Has(e)
}

// Body returns the mutable view of a live body.
func (p *Population) Body(e ecs.Entity) systems.Body {
	pos, rot, energy, traits, lineage, look := p.bodyMapper.Get(e)
	return systems.Body{
		Entity:  e,
		Pos:     pos,
		Rot:     rot,
		Energy:  energy,
		Traits:  traits,
		Lineage: lineage,
		Look:    look,
	}
}

// Look returns the display component of a live body.
func (p *Population) Look(e ecs.Entity) *components.Look {
	return p.lookMap.Get(e)
}

// Lineage returns the lineage component of a live body.
func (p *Population) Lineage(e ecs.Entity) *components.Lineage {
	return p.lineageMap.Get(e)
}

// RemoveBody removes a live body.
func (p *Population) RemoveBody(e ecs.Entity) {
	p.world.RemoveEntity(e)
	p.bodyCount--
}

// RemovePlant removes a plant.
func (p *Population) RemovePlant(e ecs.Entity) {
	p.world.RemoveEntity(e)
	p.plantCount--
}

// Snapshot fills the perception field with every body and plant as they are
// now, and appends the bodies to order in iteration order.
func (p *Population) Snapshot(f *systems.Field, order []ecs.Entity) []ecs.Entity {
	query := p.bodyFilter.Query()
	for query.Next() {
		e := query.Entity()
		pos, _, energy, _, lineage, _ := query.Get()
		f.AddBody(systems.BodySighting{
			Entity:  e,
			X:       pos.X,
			Y:       pos.Y,
			Energy:  energy.Value,
			Species: lineage.Species,
		})
		order = append(order, e)
	}

	plants := p.plantFilter.Query()
	for plants.Next() {
		pos, plant := plants.Get()
		f.AddPlant(systems.PlantSighting{Entity: plants.Entity(), X: pos.X, Y: pos.Y, Energy: plant.Energy})
	}
	return order
}

// SpeciesCounts fills counts with the number of bodies per species.
func (p *Population) SpeciesCounts(counts map[uint16]int) {
	clear(counts)
	query := p.bodyFilter.Query()
	for query.Next() {
		_, _, _, _, lineage, _ := query.Get()
		counts[lineage.Species]++
	}
}

// DistinctSpecies returns the number of distinct species among live bodies,
// stopping once limit species have been seen. A limit <= 0 counts them all.
func (p *Population) DistinctSpecies(limit int) int {
	var seen []uint16
	query := p.bodyFilter.Query()
	for query.Next() {
		_, _, _, _, lineage, _ := query.Get()
		if !containsSpecies(seen, lineage.Species) {
			seen = append(seen, lineage.Species)
			if limit > 0 && len(seen) >= limit {
				query.Close()
				break
			}
		}
	}
	return len(seen)
}

func containsSpecies(seen []uint16, sp uint16) bool {
	for _, s := range seen {
		if s == sp {
			return true
		}
	}
	return false
}

// AnySpecies returns the species of some live body.
func (p *Population) AnySpecies() (uint16, bool) {
	query := p.bodyFilter.Query()
	if !query.Next() {
		return 0, false
	}
	_, _, _, _, lineage, _ := query.Get()
	sp := lineage.Species
	query.Close()
	return sp, true
}

// AnyOperatorGuessed reports whether some live body carries the operator's guess.
func (p *Population) AnyOperatorGuessed() bool {
	query := p.bodyFilter.Query()
	for query.Next() {
		_, _, _, _, _, look := query.Get()
		if look.Shape.OperatorGuessed() {
			query.Close()
			return true
		}
	}
	return false
}

// UpdateLooks applies fn to the shape of every live body.
func (p *Population) UpdateLooks(fn func(components.Shape) components.Shape) {
	query := p.bodyFilter.Query()
	for query.Next() {
		_, _, _, _, _, look := query.Get()
		look.Shape = fn(look.Shape)
	}
}

// AppendViews appends a display copy of every live body to dst.
func (p *Population) AppendViews(dst []ui.Body) []ui.Body {
	query := p.bodyFilter.Query()
	for query.Next() {
		pos, _, energy, traits, lineage, look := query.Get()
		dst = append(dst, ui.Body{
			Entity:               query.Entity(),
			X:                    pos.X,
			Y:                    pos.Y,
			Energy:               energy.Value,
			Speed:                traits.Speed,
			VisionDistance:       traits.VisionDistance,
			ProcreationThreshold: traits.ProcreationThreshold,
			Food:                 traits.Food,
			Passive:              traits.Passive,
			Generation:           lineage.Generation,
			Species:              lineage.Species,
			Shape:                look.Shape,
		})
	}
	return dst
}

// AppendPlants appends the position of every plant to dst.
func (p *Population) AppendPlants(dst []components.Position) []components.Position {
	query := p.plantFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		dst = append(dst, *pos)
	}
	return dst
}

// AppendCrosses appends every death cross to dst. Fade is the fraction of
// lifespan elapsed at now, clamped to [0, 1]. Times are engine nanoseconds.
func (p *Population) AppendCrosses(dst []CrossView, now, lifespan int64) []CrossView {
	query := p.crossFilter.Query()
	for query.Next() {
		pos, cross := query.Get()
		var fade float32
		if lifespan > 0 {
			fade = min(max(float32(now-cross.BornAt)/float32(lifespan), 0), 1)
		}
		dst = append(dst, CrossView{X: pos.X, Y: pos.Y, Species: cross.Species, Fade: fade})
	}
	return dst
}

// ExpireCrosses removes crosses born at or before cutoff (engine nanoseconds).
// It returns the number removed.
func (p *Population) ExpireCrosses(cutoff int64) int {
	var expired []ecs.Entity
	query := p.crossFilter.Query()
	for query.Next() {
		_, cross := query.Get()
		if cross.BornAt <= cutoff {
			expired = append(expired, query.Entity())
		}
	}
	for _, e := range expired {
		p.world.RemoveEntity(e)
	}
	return len(expired)
}

// Sample collects the distributions telemetry reports at the end of a window.
func (p *Population) Sample(counts map[uint16]int) telemetry.Population {
	clear(counts)
	s := telemetry.Population{
		Bodies:   p.bodyCount,
		Plants:   p.plantCount,
		Energies: make([]float64, 0, p.bodyCount),
		Speeds:   make([]float64, 0, p.bodyCount),
		Visions:  make([]float64, 0, p.bodyCount),
	}

	query := p.bodyFilter.Query()
	for query.Next() {
		_, _, energy, traits, lineage, _ := query.Get()
		s.Energies = append(s.Energies, float64(energy.Value))
		s.Speeds = append(s.Speeds, float64(traits.Speed))
		s.Visions = append(s.Visions, float64(traits.VisionDistance))
		s.MaxGeneration = max(s.MaxGeneration, lineage.Generation)
		counts[lineage.Species]++
	}
	s.Species = len(counts)
	return s
}

// EnergyBySpecies fills totals with the summed energy of each species.
func (p *Population) EnergyBySpecies(totals map[uint16]float64) {
	clear(totals)
	query := p.bodyFilter.Query()
	for query.Next() {
		_, _, energy, _, lineage, _ := query.Get()
		totals[lineage.Species] += float64(energy.Value)
	}
}

// Strongest returns the body of a species holding the most energy.
// Ties go to the body met first.
func (p *Population) Strongest(species uint16) (ecs.Entity, bool) {
	var best ecs.Entity
	var bestEnergy float32
	found := false
	query := p.bodyFilter.Query()
	for query.Next() {
		_, _, energy, _, lineage, _ := query.Get()
		if lineage.Species != species {
			continue
		}
		if !found || energy.Value > bestEnergy {
			best, bestEnergy, found = query.Entity(), energy.Value, true
		}
	}
	return best, found
}
