// ABOUTME: Multi-day challenge tracker: target-day challenges marked at most once per day.
// ABOUTME: Marks are monotone; cancelling freezes marking but keeps the log.
package challenges

import (
	"maps"
	"slices"
	"sync"

	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/models"
)

// Key is the persisted key for the challenge list.
const Key = "challenges"

// Tracker holds every MultiDayChallenge, newest first.
type Tracker struct {
	kv    *kv.Adapter
	clock daykey.Clock

	mu   sync.Mutex
	list []models.MultiDayChallenge
}

// New creates a tracker. A nil clock means the system clock.
func New(adapter *kv.Adapter, clock daykey.Clock) *Tracker {
	if clock == nil {
		clock = daykey.System
	}
	return &Tracker{kv: adapter, clock: clock, list: []models.MultiDayChallenge{}}
}

// Load reads the persisted challenges. Absent or malformed data leaves the list empty.
func (t *Tracker) Load() {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := kv.GetJSON[[]models.MultiDayChallenge](t.kv, Key)
	if !ok || v == nil {
		return
	}
	for i := range v {
		if v[i].Log == nil {
			v[i].Log = map[string]bool{}
		}
	}
	t.list = v
}

func (t *Tracker) persist() {
	t.kv.SetJSONAsync(Key, t.list)
}

// Create adds an active challenge. Blank names or a non-positive target are ignored.
func (t *Tracker) Create(name string, targetDays int) (models.MultiDayChallenge, bool) {
	n, ok := models.CleanTitle(name)
	if !ok || targetDays <= 0 {
		return models.MultiDayChallenge{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	c := models.MultiDayChallenge{
		ID:         models.NewID("c"),
		Name:       n,
		TargetDays: targetDays,
		Log:        map[string]bool{},
		Active:     true,
		CreatedAt:  t.clock().UnixMilli(),
	}
	t.list = append([]models.MultiDayChallenge{c}, t.list...)
	t.persist()
	return c, true
}

// MarkToday adds today to the log. It reports false when the challenge is
// unknown, cancelled, or already marked today.
func (t *Tracker) MarkToday(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 || !t.list[i].Active {
		return false
	}
	today := t.clock.Today()
	if t.list[i].Log[today] {
		return false
	}
	t.list[i].Log[today] = true
	t.persist()
	return true
}

// Cancel deactivates a challenge. Its log is kept.
func (t *Tracker) Cancel(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.list[i].Active = false
	t.persist()
	return true
}

// Rename changes a challenge's name. Blank names are ignored.
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
	t.list[i].Name = n
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
	t.list = slices.Delete(t.list, i, i+1)
	t.persist()
	return true
}

func (t *Tracker) index(id string) int {
	return slices.IndexFunc(t.list, func(c models.MultiDayChallenge) bool { return c.ID == id })
}

// List returns deep copies of all challenges, newest first.
func (t *Tracker) List() []models.MultiDayChallenge {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.MultiDayChallenge, len(t.list))
	for i, c := range t.list {
		out[i] = clone(c)
	}
	return out
}

func (t *Tracker) Get(id string) (models.MultiDayChallenge, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return models.MultiDayChallenge{}, false
	}
	return clone(t.list[i]), true
}

func clone(c models.MultiDayChallenge) models.MultiDayChallenge {
	c.Log = maps.Clone(c.Log)
	return c
}

// MarksOn counts the challenges whose log contains day.
func (t *Tracker) MarksOn(day string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return MarksOn(t.list, day)
}

// MarksOn counts the challenges in list whose log contains day.
func MarksOn(list []models.MultiDayChallenge, day string) int {
	n := 0
	for _, c := range list {
		if c.MarkedOn(day) {
			n++
		}
	}
	return n
}

// ActiveCount returns how many challenges can still be marked.
func (t *Tracker) ActiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.list {
		if c.Active {
			n++
		}
	}
	return n
}
