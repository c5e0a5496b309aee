package telemetry

import "github.com/pthm-cable/bodies/systems"

// Population is the state of the field sampled at the end of a window.
type Population struct {
	Bodies        int
	Plants        int
	Species       int
	Energies      []float64
	Speeds        []float64
	Visions       []float64
	MaxGeneration uint32
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	runID     string
	evolution int

	// Event counters for current window
	births        int
	divisions     int
	starved       int
	eaten         int
	plantsEaten   int
	plantsSpawned int
}

// NewCollector creates a collector that flushes every windowTicks internal ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// StartRun resets the collector for a new evolution.
func (c *Collector) StartRun(runID string, evolution int) {
	*c = Collector{windowTicks: c.windowTicks, runID: runID, evolution: evolution}
}

// RecordBirths records bodies added by division.
func (c *Collector) RecordBirths(n int) {
	c.births += n
}

// RecordDeath records a body removed by its own action.
func (c *Collector) RecordDeath(cause systems.DeathCause) {
	switch cause {
	case systems.Starved:
		c.starved++
	case systems.Divided:
		c.divisions++
	}
}

// RecordEaten records a body eaten by another.
func (c *Collector) RecordEaten() {
	c.eaten++
}

// RecordPlantEaten records a plant consumed.
func (c *Collector) RecordPlantEaten() {
	c.plantsEaten++
}

// RecordPlantSpawned records a plant added to the field.
func (c *Collector) RecordPlantSpawned() {
	c.plantsSpawned++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, pop Population) WindowStats {
	energy := Summarize(pop.Energies)
	speed := Summarize(pop.Speeds)
	vision := Summarize(pop.Visions)

	stats := WindowStats{
		RunID:           c.runID,
		Evolution:       c.evolution,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Bodies:  pop.Bodies,
		Plants:  pop.Plants,
		Species: pop.Species,

		Births:        c.births,
		Divisions:     c.divisions,
		Starved:       c.starved,
		Eaten:         c.eaten,
		PlantsEaten:   c.plantsEaten,
		PlantsSpawned: c.plantsSpawned,

		EnergyMean: energy.Mean,
		EnergyStd:  energy.Std,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,
		SpeedMean:  speed.Mean,
		SpeedStd:   speed.Std,
		VisionMean: vision.Mean,
		VisionStd:  vision.Std,

		MaxGeneration: pop.MaxGeneration,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.divisions = 0
	c.starved = 0
	c.eaten = 0
	c.plantsEaten = 0
	c.plantsSpawned = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
