package telemetry

import "sort"

// SpeciesStats tracks one species over an evolution.
type SpeciesStats struct {
	Species     uint16
	Founders    int
	Peak        int
	PeakTick    int64
	ExtinctTick int64 // -1 while alive
}

// SpeciesTracker follows head-counts per species across an evolution.
type SpeciesTracker struct {
	stats map[uint16]*SpeciesStats
}

// NewSpeciesTracker creates an empty tracker.
func NewSpeciesTracker() *SpeciesTracker {
	return &SpeciesTracker{stats: make(map[uint16]*SpeciesStats)}
}

// Reset forgets every species.
func (st *SpeciesTracker) Reset() {
	clear(st.stats)
}

// Found registers a seeded species with its founder count.
func (st *SpeciesTracker) Found(species uint16, founders int) {
	st.stats[species] = &SpeciesStats{
		Species:     species,
		Founders:    founders,
		Peak:        founders,
		ExtinctTick: -1,
	}
}

// Observe updates peaks and extinctions from the head-counts at tick.
// It returns the species that went extinct since the last observation,
// in ascending order.
func (st *SpeciesTracker) Observe(tick int64, counts map[uint16]int) []uint16 {
	var extinct []uint16
	for sp, s := range st.stats {
		n := counts[sp]
		if n > s.Peak {
			s.Peak = n
			s.PeakTick = tick
		}
		if n == 0 && s.ExtinctTick < 0 {
			s.ExtinctTick = tick
			extinct = append(extinct, sp)
		}
	}
	sort.Slice(extinct, func(i, j int) bool { return extinct[i] < extinct[j] })
	return extinct
}

// Get returns the stats for a species, or nil if not found.
func (st *SpeciesTracker) Get(species uint16) *SpeciesStats {
	return st.stats[species]
}

// Alive returns the number of species not yet extinct.
func (st *SpeciesTracker) Alive() int {
	n := 0
	for _, s := range st.stats {
		if s.ExtinctTick < 0 {
			n++
		}
	}
	return n
}
