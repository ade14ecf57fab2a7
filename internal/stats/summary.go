// ABOUTME: Summary cards for the statistics view.
// ABOUTME: Pure function of today's progress plus the streak and challenge lists.
package stats

import (
	"math"

	"github.com/harperreed/betterself/internal/daily"
	"github.com/harperreed/betterself/internal/models"
)

// Inputs gathers what Summarize reads.
type Inputs struct {
	Today      string
	Progress   daily.Progress
	Habits     int
	Challenges []models.MultiDayChallenge
	Streaks    []models.StreakMonitor
}

// Summary is the set of headline numbers.
type Summary struct {
	HabitsPercent    int     `json:"habitsPercent"`
	Rating           float64 `json:"rating"` // 0..5, one decimal
	TotalHabits      int     `json:"totalHabits"`
	ActiveChallenges int     `json:"activeChallenges"`
	MarksToday       int     `json:"marksToday"`
	BestStreakDays   int     `json:"bestStreakDays"`
}

// Summarize computes the headline numbers.
func Summarize(in Inputs) Summary {
	p := in.Progress
	avg := (p.Morning + p.Habits + p.Tasks + p.Night) / 4

	s := Summary{
		HabitsPercent: clampPercent(int(math.Round(HabitPercent(p)))),
		Rating:        math.Round(avg*5*10) / 10,
		TotalHabits:   in.Habits,
	}
	for _, c := range in.Challenges {
		if c.Active {
			s.ActiveChallenges++
		}
		if c.MarkedOn(in.Today) {
			s.MarksToday++
		}
	}
	for _, m := range in.Streaks {
		if d := m.ElapsedDays(in.Today); d > s.BestStreakDays {
			s.BestStreakDays = d
		}
	}
	return s
}
