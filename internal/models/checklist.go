// ABOUTME: Daily checklist entities: routine items, tasks, habits, the daily challenge.
// ABOUTME: Also carries the first-run defaults and the perDay/count clamping rules.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Bounds for Habit.PerDay.
const (
	MinPerDay = 1
	MaxPerDay = 24
)

// ChecklistItem is one line of a routine or the task list.
type ChecklistItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Habit is a repeatable activity with a per-day goal.
// Streak is persisted for compatibility but nothing updates it.
type Habit struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Streak int    `json:"streak"`
	PerDay int    `json:"perDay"`
}

// Challenge is the single daily challenge.
type Challenge struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// HabitCounts maps habit id to today's completion count.
type HabitCounts map[string]int

// NewID returns "<prefix>_<uuid>".
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// CleanTitle trims s and reports whether anything is left.
func CleanTitle(s string) (string, bool) {
	t := strings.TrimSpace(s)
	return t, t != ""
}

// ClampPerDay forces n into [MinPerDay, MaxPerDay].
func ClampPerDay(n int) int {
	return clamp(n, MinPerDay, MaxPerDay)
}

// ClampCount forces count into [0, perDay].
func ClampCount(count, perDay int) int {
	return clamp(count, 0, perDay)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Goal returns PerDay, treating a zero or corrupt value as 1.
func (h Habit) Goal() int {
	if h.PerDay < MinPerDay {
		return MinPerDay
	}
	return ClampPerDay(h.PerDay)
}

// DefaultMorningRoutine returns a fresh copy of the first-run morning routine.
func DefaultMorningRoutine() []ChecklistItem {
	return []ChecklistItem{
		{ID: "m-bed", Title: "Make the bed"},
		{ID: "m-water", Title: "Hydrate"},
		{ID: "m-breathe", Title: "4-7-8 breathing (1 cycle)"},
		{ID: "m-tmi", Title: "Tidy up"},
		{ID: "m-gratitude", Title: "Gratitude"},
	}
}

// DefaultNightRoutine returns a fresh copy of the first-run night routine.
func DefaultNightRoutine() []ChecklistItem {
	return []ChecklistItem{
		{ID: "n-off", Title: "Disconnect screens"},
		{ID: "n-teeth", Title: "Dental hygiene"},
		{ID: "n-clothes", Title: "Lay out tomorrow's clothes"},
		{ID: "n-review", Title: "Reflect on the day"},
	}
}

// DefaultHabits returns a fresh copy of the starter habit list.
func DefaultHabits() []Habit {
	return []Habit{
		{ID: "h-read", Title: "Read 15 minutes", PerDay: 1},
		{ID: "h-exercise", Title: "Exercise", PerDay: 1},
		{ID: "h-breath", Title: "Breathing techniques", PerDay: 1},
		{ID: "h-social", Title: "Socialize", PerDay: 1},
		{ID: "h-water", Title: "Hydrate", PerDay: 2},
		{ID: "h-outdoor", Title: "Go outside", PerDay: 1},
		{ID: "h-grat", Title: "Gratitude", PerDay: 2},
	}
}
