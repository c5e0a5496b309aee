package game

// Census is what the termination detector needs to know about a population.
type Census interface {
	Len() int
	// DistinctSpecies counts species, stopping at limit (<= 0 for no limit).
	DistinctSpecies(limit int) int
}

// Detect classifies a population after a tick. Extinction is checked
// first, so an empty population is never a monoculture. A single
// surviving body is a monoculture.
func Detect(c Census) Result {
	if c.Len() == 0 {
		return ResultExtinction
	}
	if c.DistinctSpecies(2) == 1 {
		return ResultMonoculture
	}
	return ResultRunning
}
