// ABOUTME: Statistics aggregator: daily habit-completion history and trailing series.
// ABOUTME: Snapshots are written only when today's rounded percent changes.
package stats

import (
	"iter"
	"maps"
	"math"
	"sync"

	"github.com/harperreed/betterself/internal/challenges"
	"github.com/harperreed/betterself/internal/daily"
	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/models"
)

// Key is the persisted key for the history map.
const Key = "habitHistory"

// Series lengths used by the statistics view.
const (
	TrendDays     = 12
	ChallengeDays = 7
)

// History maps day key to habit completion percent in [0,100].
type History map[string]int

// Aggregator owns the history snapshot map.
type Aggregator struct {
	kv    *kv.Adapter
	clock daykey.Clock

	mu      sync.Mutex
	history History
}

// New creates an aggregator. A nil clock means the system clock.
func New(adapter *kv.Adapter, clock daykey.Clock) *Aggregator {
	if clock == nil {
		clock = daykey.System
	}
	return &Aggregator{kv: adapter, clock: clock, history: History{}}
}

// Load reads the persisted history. Absent or malformed data leaves it empty.
func (a *Aggregator) Load() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if v, ok := kv.GetJSON[History](a.kv, Key); ok && v != nil {
		a.history = v
	}
}

// SnapshotToday records round(percent) for today, clamped to [0,100].
// It reports whether anything was written. Non-finite input is ignored.
func (a *Aggregator) SnapshotToday(percent float64) bool {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return false
	}
	v := clampPercent(int(math.Round(percent)))

	a.mu.Lock()
	defer a.mu.Unlock()
	today := a.clock.Today()
	if old, ok := a.history[today]; ok && old == v {
		return false
	}
	a.history[today] = v
	a.kv.SetJSONAsync(Key, a.history)
	return true
}

// History returns a copy of every snapshot.
func (a *Aggregator) History() History {
	a.mu.Lock()
	defer a.mu.Unlock()
	return maps.Clone(a.history)
}

// Series yields (day, percent) for the trailing n days ending today,
// oldest first. Missing days yield 0. Each range re-reads the history.
func (a *Aggregator) Series(n int) iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for day := range daykey.Trailing(a.clock(), n) {
			a.mu.Lock()
			v := clampPercent(a.history[day])
			a.mu.Unlock()
			if !yield(day, v) {
				return
			}
		}
	}
}

// ChallengeSeries yields, for the trailing n days, how many challenges in
// list were marked on each day.
func (a *Aggregator) ChallengeSeries(n int, list []models.MultiDayChallenge) iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for day := range daykey.Trailing(a.clock(), n) {
			if !yield(day, challenges.MarksOn(list, day)) {
				return
			}
		}
	}
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// HabitPercent converts today's habit fraction to a percent.
func HabitPercent(p daily.Progress) float64 {
	return p.Habits * 100
}
