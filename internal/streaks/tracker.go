// ABOUTME: Streak tracker for "days since" monitors of habits the user wants to break.
// ABOUTME: A relapse moves lastResetISO to today; the marker never moves backwards.
package streaks

import (
	"slices"
	"sync"

	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/models"
)

// Key is the persisted key for the monitor list.
const Key = "streaks"

// Tracker holds every StreakMonitor, newest first.
type Tracker struct {
	kv    *kv.Adapter
	clock daykey.Clock

	mu       sync.Mutex
	monitors []models.StreakMonitor
}

// New creates a tracker. A nil clock means the system clock.
func New(adapter *kv.Adapter, clock daykey.Clock) *Tracker {
	if clock == nil {
		clock = daykey.System
	}
	return &Tracker{kv: adapter, clock: clock, monitors: []models.StreakMonitor{}}
}

// Load reads the persisted monitors. Absent or malformed data leaves the list empty.
func (t *Tracker) Load() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := kv.GetJSON[[]models.StreakMonitor](t.kv, Key); ok && v != nil {
		t.monitors = v
	}
}

func (t *Tracker) persist() {
	t.kv.SetJSONAsync(Key, t.monitors)
}

// Add starts a monitor at today. Blank names are ignored.
func (t *Tracker) Add(name string) (models.StreakMonitor, bool) {
	n, ok := models.CleanTitle(name)
	if !ok {
		return models.StreakMonitor{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	m := models.StreakMonitor{ID: models.NewID("s"), Name: n, LastResetISO: t.clock.Today()}
	t.monitors = append([]models.StreakMonitor{m}, t.monitors...)
	t.persist()
	return m, true
}

// Relapse records that the monitored event happened today.
func (t *Tracker) Relapse(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return false
	}
	today := t.clock.Today()
	// Day keys sort by date. A clock set back must not rewind the marker.
	if !daykey.Valid(t.monitors[i].LastResetISO) || t.monitors[i].LastResetISO < today {
		t.monitors[i].LastResetISO = today
	}
	t.persist()
	return true
}

// Rename changes a monitor's name. Blank names are ignored.
func (t *Tracker) Rename(id, name string) bool {
	n, ok := models.CleanTitle(name)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.monitors[i].Name = n
	t.persist()
	return true
}

func (t *Tracker) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.monitors = slices.Delete(t.monitors, i, i+1)
	t.persist()
	return true
}

func (t *Tracker) index(id string) int {
	return slices.IndexFunc(t.monitors, func(m models.StreakMonitor) bool { return m.ID == id })
}

// List returns a copy of all monitors, newest first.
func (t *Tracker) List() []models.StreakMonitor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.monitors)
}

func (t *Tracker) Get(id string) (models.StreakMonitor, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return models.StreakMonitor{}, false
	}
	return t.monitors[i], true
}

// ElapsedDays is m.ElapsedDays against the tracker's clock.
func (t *Tracker) ElapsedDays(m models.StreakMonitor) int {
	return m.ElapsedDays(t.clock.Today())
}

// Best returns the monitor with the most elapsed days. ok is false when empty.
func (t *Tracker) Best() (best models.StreakMonitor, days int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	today := t.clock.Today()
	for _, m := range t.monitors {
		if d := m.ElapsedDays(today); !ok || d > days {
			best, days, ok = m, d, true
		}
	}
	return best, days, ok
}
