package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSpeciesLost         BookmarkType = "species_lost"
	BookmarkFinalTwo            BookmarkType = "final_two"
	BookmarkPopulationCrash     BookmarkType = "population_crash"
	BookmarkPredationSurge      BookmarkType = "predation_surge"
	BookmarkGenerationMilestone BookmarkType = "generation_milestone"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	RunID       string       `csv:"run_id"`
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"run_id", b.RunID,
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// generationStep is the spacing of generation milestones.
const generationStep = 10

// BookmarkDetector detects interesting moments in an evolution.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	prevSpecies   int
	recentPeak    int
	finalTwoSeen  bool
	nextMilestone uint32
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	bd := &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
	bd.Reset()
	return bd
}

// Reset clears history for a new evolution.
func (bd *BookmarkDetector) Reset() {
	clear(bd.history)
	bd.historyIdx = 0
	bd.historyFull = false
	bd.prevSpecies = 0
	bd.recentPeak = 0
	bd.finalTwoSeen = false
	bd.nextMilestone = generationStep
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(t BookmarkType, format string, args ...any) {
		bookmarks = append(bookmarks, Bookmark{
			RunID:       stats.RunID,
			Type:        t,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if bd.prevSpecies > 0 && stats.Species < bd.prevSpecies {
		add(BookmarkSpeciesLost, "Species count fell from %d to %d", bd.prevSpecies, stats.Species)
	}

	if stats.Species == 2 && !bd.finalTwoSeen {
		bd.finalTwoSeen = true
		add(BookmarkFinalTwo, "Two species remain with %d bodies", stats.Bodies)
	}

	// Population crash: dropped >30% from recent peak
	if bd.recentPeak >= 10 && float64(stats.Bodies) < float64(bd.recentPeak)*0.7 {
		add(BookmarkPopulationCrash, "Population fell from peak %d to %d", bd.recentPeak, stats.Bodies)
		bd.recentPeak = stats.Bodies
	}

	if b, ok := bd.checkPredationSurge(stats); ok {
		bookmarks = append(bookmarks, b)
	}

	if stats.MaxGeneration >= bd.nextMilestone {
		add(BookmarkGenerationMilestone, "Generation %d reached", stats.MaxGeneration)
		for bd.nextMilestone <= stats.MaxGeneration {
			bd.nextMilestone += generationStep
		}
	}

	bd.addToHistory(stats)
	bd.prevSpecies = stats.Species
	if stats.Bodies > bd.recentPeak {
		bd.recentPeak = stats.Bodies
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkPredationSurge fires when bodies are eaten at more than twice the rolling average.
func (bd *BookmarkDetector) checkPredationSurge(stats WindowStats) (Bookmark, bool) {
	history := bd.getHistory()
	if len(history) < 3 || stats.Eaten < 3 {
		return Bookmark{}, false
	}

	var total int
	for _, h := range history {
		total += h.Eaten
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || float64(stats.Eaten) <= avg*2 {
		return Bookmark{}, false
	}

	return Bookmark{
		RunID:       stats.RunID,
		Type:        BookmarkPredationSurge,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d bodies eaten is %.1fx average (%.1f)", stats.Eaten, float64(stats.Eaten)/avg, avg),
	}, true
}
