// ABOUTME: Daily state store: routines, tasks, habits with per-day counts, the daily challenge.
// ABOUTME: Owns the day-rollover lifecycle; every mutation is applied in memory then persisted async.
package daily

import (
	"errors"
	"sync"

	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/logger"
	"github.com/harperreed/betterself/internal/models"
)

// Persisted keys, relative to the adapter namespace.
const (
	KeyLastReset      = "lastResetDate"
	KeyMorning        = "morningRoutine"
	KeyNight          = "nightRoutine"
	KeyTasks          = "tasks"
	KeyHabits         = "habits"
	KeyHabitCounts    = "habitCountsToday"
	KeyChallenge      = "dailyChallenge"
	KeyLegacyHabitsOK = "habitsDoneToday" // read once for migration, never written
	TMIPrefix         = "tmi:"
)

// ErrAlreadyLoaded is returned by a second call to Load.
var ErrAlreadyLoaded = errors.New("daily store already loaded")

// ListID names a checklist.
type ListID string

const (
	ListMorning ListID = "morning"
	ListNight   ListID = "night"
	ListTasks   ListID = "tasks"
)

// ParseListID accepts the list names used by the CLI and MCP tools.
func ParseListID(s string) (ListID, bool) {
	switch ListID(s) {
	case ListMorning, ListNight, ListTasks:
		return ListID(s), true
	}
	return "", false
}

// Store holds today's state. Methods are safe for concurrent use.
type Store struct {
	kv    *kv.Adapter
	clock daykey.Clock

	mu        sync.Mutex
	loaded    bool
	lastReset string
	morning   []models.ChecklistItem
	night     []models.ChecklistItem
	tasks     []models.ChecklistItem
	habits    []models.Habit
	counts    models.HabitCounts
	challenge models.Challenge
	tmi       string
}

// New creates a store over adapter. A nil clock means the system clock.
func New(adapter *kv.Adapter, clock daykey.Clock) *Store {
	if clock == nil {
		clock = daykey.System
	}
	return &Store{
		kv:      adapter,
		clock:   clock,
		morning: models.DefaultMorningRoutine(),
		night:   models.DefaultNightRoutine(),
		tasks:   []models.ChecklistItem{},
		habits:  models.DefaultHabits(),
		counts:  models.HabitCounts{},
	}
}

// Load reads persisted state, falling back to defaults for absent or
// malformed keys, and runs the daily reset when the marker is stale.
// The reset is complete before Load returns.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return ErrAlreadyLoaded
	}
	s.loaded = true
	today := s.clock.Today()

	s.lastReset, _ = kv.GetJSON[string](s.kv, KeyLastReset)

	if v, ok := kv.GetJSON[[]models.ChecklistItem](s.kv, KeyMorning); ok && v != nil {
		s.morning = v
	}
	if v, ok := kv.GetJSON[[]models.ChecklistItem](s.kv, KeyNight); ok && v != nil {
		s.night = v
	}
	if v, ok := kv.GetJSON[[]models.ChecklistItem](s.kv, KeyTasks); ok && v != nil {
		s.tasks = v
	} else {
		s.tasks = []models.ChecklistItem{}
	}
	if v, ok := kv.GetJSON[[]models.Habit](s.kv, KeyHabits); ok && v != nil {
		s.habits = v
	}

	if v, ok := kv.GetJSON[models.HabitCounts](s.kv, KeyHabitCounts); ok && v != nil {
		s.counts = v
	} else if legacy, ok := kv.GetJSON[map[string]bool](s.kv, KeyLegacyHabitsOK); ok {
		s.counts = s.migrateLegacy(legacy)
	}
	s.sanitizeCounts()

	if v, ok := kv.GetJSON[models.Challenge](s.kv, KeyChallenge); ok {
		s.challenge = v
	} else {
		s.challenge = models.Challenge{Title: models.ChallengeFor(today)}
		s.kv.SetJSONAsync(KeyChallenge, s.challenge)
	}

	s.tmi, _ = kv.GetJSON[string](s.kv, TMIPrefix+today)

	if daykey.ResetNeeded(s.lastReset, today) {
		logger.Info("daily reset", "last", s.lastReset, "today", today)
		s.resetLocked(today)
	}
	return nil
}

// migrateLegacy seeds counts from the old boolean view: done means the full goal.
func (s *Store) migrateLegacy(legacy map[string]bool) models.HabitCounts {
	counts := models.HabitCounts{}
	for _, h := range s.habits {
		if legacy[h.ID] {
			counts[h.ID] = h.Goal()
		}
	}
	logger.Debug("migrated legacy habit flags", "habits", len(counts))
	return counts
}

// sanitizeCounts drops counts for unknown habits and clamps the rest.
func (s *Store) sanitizeCounts() {
	for id, c := range s.counts {
		h, ok := s.findHabit(id)
		if !ok {
			delete(s.counts, id)
			continue
		}
		s.counts[id] = models.ClampCount(c, h.Goal())
	}
}

// ResetDay clears every done flag, today's counts, the challenge flag and
// today's TMI, then sets the marker to today. Calling it twice is the same as once.
// When the marker names an earlier day the challenge title is re-picked from
// the pool; a same-day reset keeps the current title.
func (s *Store) ResetDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(s.clock.Today())
}

// CheckRollover runs ResetDay if the marker is no longer today and reports
// whether it did.
func (s *Store) CheckRollover() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.clock.Today()
	if !daykey.ResetNeeded(s.lastReset, today) {
		return false
	}
	logger.Info("day rollover", "last", s.lastReset, "today", today)
	s.resetLocked(today)
	return true
}

func (s *Store) resetLocked(today string) {
	if today != s.lastReset {
		s.challenge = models.Challenge{Title: models.ChallengeFor(today)}
	}
	clearDone(s.morning)
	clearDone(s.night)
	clearDone(s.tasks)
	s.counts = models.HabitCounts{}
	s.challenge.Done = false
	s.tmi = ""
	s.lastReset = today

	s.kv.SetJSONAsync(KeyMorning, s.morning)
	s.kv.SetJSONAsync(KeyNight, s.night)
	s.kv.SetJSONAsync(KeyTasks, s.tasks)
	s.kv.SetJSONAsync(KeyHabitCounts, s.counts)
	s.kv.SetJSONAsync(KeyChallenge, s.challenge)
	s.kv.DeleteAsync(TMIPrefix + today)
	s.kv.SetJSONAsync(KeyLastReset, s.lastReset)
}

func clearDone(items []models.ChecklistItem) {
	for i := range items {
		items[i].Done = false
	}
}

// Today returns the current day key according to the store's clock.
func (s *Store) Today() string {
	return s.clock.Today()
}

// LastReset returns the last reset marker.
func (s *Store) LastReset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReset
}

// ToggleChecklistItem flips done on itemID in list. Reports false if nothing matched.
func (s *Store) ToggleChecklistItem(list ListID, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, key := s.listLocked(list)
	for i := range items {
		if items[i].ID == itemID {
			items[i].Done = !items[i].Done
			s.kv.SetJSONAsync(key, items)
			return true
		}
	}
	return false
}

func (s *Store) listLocked(list ListID) ([]models.ChecklistItem, string) {
	switch list {
	case ListMorning:
		return s.morning, KeyMorning
	case ListNight:
		return s.night, KeyNight
	case ListTasks:
		return s.tasks, KeyTasks
	}
	return nil, ""
}

// AddTask prepends a task. Blank titles are ignored.
func (s *Store) AddTask(title string) (models.ChecklistItem, bool) {
	t, ok := models.CleanTitle(title)
	if !ok {
		return models.ChecklistItem{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item := models.ChecklistItem{ID: models.NewID("t"), Title: t}
	s.tasks = append([]models.ChecklistItem{item}, s.tasks...)
	s.kv.SetJSONAsync(KeyTasks, s.tasks)
	return item, true
}

// RemoveTask deletes a task by id.
func (s *Store) RemoveTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			s.kv.SetJSONAsync(KeyTasks, s.tasks)
			return true
		}
	}
	return false
}

// AddHabit prepends a habit with a goal of once per day.
func (s *Store) AddHabit(title string) (models.Habit, bool) {
	t, ok := models.CleanTitle(title)
	if !ok {
		return models.Habit{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h := models.Habit{ID: models.NewID("h"), Title: t, PerDay: 1}
	s.habits = append([]models.Habit{h}, s.habits...)
	s.kv.SetJSONAsync(KeyHabits, s.habits)
	return h, true
}

// RemoveHabit deletes the habit and its count for today.
func (s *Store) RemoveHabit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i:i], s.habits[i+1:]...)
			delete(s.counts, id)
			s.kv.SetJSONAsync(KeyHabits, s.habits)
			s.kv.SetJSONAsync(KeyHabitCounts, s.counts)
			return true
		}
	}
	return false
}

// BumpHabitCount adds delta to today's count, clamped to [0, perDay].
// Unknown ids are a no-op.
func (s *Store) BumpHabitCount(id string, delta int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.findHabit(id)
	if !ok {
		return 0, false
	}
	next := models.ClampCount(s.counts[id]+delta, h.Goal())
	s.counts[id] = next
	s.kv.SetJSONAsync(KeyHabitCounts, s.counts)
	return next, true
}

// ToggleHabitToday flips a habit between 0 and its full goal.
func (s *Store) ToggleHabitToday(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.findHabit(id)
	if !ok {
		return 0, false
	}
	next := h.Goal()
	if s.counts[id] >= h.Goal() {
		next = 0
	}
	s.counts[id] = next
	s.kv.SetJSONAsync(KeyHabitCounts, s.counts)
	return next, true
}

// SetHabitPerDay sets the goal, clamped to [1,24], and re-clamps today's count.
func (s *Store) SetHabitPerDay(id string, n int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	per := models.ClampPerDay(n)
	for i := range s.habits {
		if s.habits[i].ID != id {
			continue
		}
		s.habits[i].PerDay = per
		if c, ok := s.counts[id]; ok {
			s.counts[id] = models.ClampCount(c, per)
			s.kv.SetJSONAsync(KeyHabitCounts, s.counts)
		}
		s.kv.SetJSONAsync(KeyHabits, s.habits)
		return per, true
	}
	return 0, false
}

// ResetHabitsToDefault restores the starter habits and clears today's counts.
func (s *Store) ResetHabitsToDefault() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits = models.DefaultHabits()
	s.counts = models.HabitCounts{}
	s.kv.SetJSONAsync(KeyHabits, s.habits)
	s.kv.SetJSONAsync(KeyHabitCounts, s.counts)
}

func (s *Store) findHabit(id string) (models.Habit, bool) {
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// SetChallengeDone sets whether today's challenge is done.
func (s *Store) SetChallengeDone(done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenge.Done = done
	s.kv.SetJSONAsync(KeyChallenge, s.challenge)
}

// SetChallengeTitle replaces the daily challenge text until the next day
// starts. Blank titles are ignored.
func (s *Store) SetChallengeTitle(title string) bool {
	t, ok := models.CleanTitle(title)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenge.Title = t
	s.kv.SetJSONAsync(KeyChallenge, s.challenge)
	return true
}

// SetTMI records today's most important task. An empty string clears it.
func (s *Store) SetTMI(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tmi = text
	key := TMIPrefix + s.clock.Today()
	if text == "" {
		s.kv.DeleteAsync(key)
		return
	}
	s.kv.SetJSONAsync(key, text)
}
