// ABOUTME: Read accessors for the daily store. Every accessor returns a copy.
// ABOUTME: The habit "done today" view is derived from counts on each read.
package daily

import (
	"maps"
	"slices"

	"github.com/harperreed/betterself/internal/models"
)

// Progress holds the completed fraction of each daily list, each in [0,1].
type Progress struct {
	Morning float64 `json:"morning"`
	Night   float64 `json:"night"`
	Tasks   float64 `json:"tasks"`
	Habits  float64 `json:"habits"`
}

// HabitStatus is a habit joined with today's count.
type HabitStatus struct {
	models.Habit
	Count int  `json:"count"`
	Done  bool `json:"done"`
}

// State is a point-in-time copy of everything the store holds.
type State struct {
	Day       string                 `json:"day"`
	LastReset string                 `json:"lastReset"`
	Morning   []models.ChecklistItem `json:"morningRoutine"`
	Night     []models.ChecklistItem `json:"nightRoutine"`
	Tasks     []models.ChecklistItem `json:"tasks"`
	Habits    []HabitStatus          `json:"habits"`
	Challenge models.Challenge       `json:"dailyChallenge"`
	TMI       string                 `json:"tmi"`
	Progress  Progress               `json:"progress"`
}

func (s *Store) MorningRoutine() []models.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.morning)
}

func (s *Store) NightRoutine() []models.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.night)
}

// Tasks returns the task list, most recent first.
func (s *Store) Tasks() []models.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// List returns the items of a named checklist.
func (s *Store) List(list ListID) []models.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, _ := s.listLocked(list)
	return slices.Clone(items)
}

func (s *Store) Habits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.habits)
}

// Habit looks up a habit by id.
func (s *Store) Habit(id string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findHabit(id)
}

// HabitCount returns today's count for id; absent means 0.
func (s *Store) HabitCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[id]
}

func (s *Store) HabitCounts() models.HabitCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.counts)
}

// HabitsDoneToday maps every habit id to whether today's goal is met.
func (s *Store) HabitsDoneToday() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := make(map[string]bool, len(s.habits))
	for _, h := range s.habits {
		done[h.ID] = s.counts[h.ID] >= h.Goal()
	}
	return done
}

// HabitStatuses returns the habits in list order with today's progress.
func (s *Store) HabitStatuses() []HabitStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.habitStatusesLocked()
}

func (s *Store) habitStatusesLocked() []HabitStatus {
	out := make([]HabitStatus, 0, len(s.habits))
	for _, h := range s.habits {
		c := s.counts[h.ID]
		out = append(out, HabitStatus{Habit: h, Count: c, Done: c >= h.Goal()})
	}
	return out
}

func (s *Store) Challenge() models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenge
}

// TMI returns today's most important task.
func (s *Store) TMI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tmi
}

// Progress computes today's completion fractions. Empty lists count as 0.
func (s *Store) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *Store) progressLocked() Progress {
	habitsDone := 0
	for _, h := range s.habits {
		if s.counts[h.ID] >= h.Goal() {
			habitsDone++
		}
	}
	return Progress{
		Morning: doneFraction(s.morning),
		Night:   doneFraction(s.night),
		Tasks:   doneFraction(s.tasks),
		Habits:  fraction(habitsDone, len(s.habits)),
	}
}

// Snapshot returns a copy of the whole store.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Day:       s.clock.Today(),
		LastReset: s.lastReset,
		Morning:   slices.Clone(s.morning),
		Night:     slices.Clone(s.night),
		Tasks:     slices.Clone(s.tasks),
		Habits:    s.habitStatusesLocked(),
		Challenge: s.challenge,
		TMI:       s.tmi,
		Progress:  s.progressLocked(),
	}
}

func doneFraction(items []models.ChecklistItem) float64 {
	done := 0
	for _, it := range items {
		if it.Done {
			done++
		}
	}
	return fraction(done, len(items))
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
