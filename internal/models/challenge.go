// ABOUTME: MultiDayChallenge, a target-day challenge with one mark per calendar day.
// ABOUTME: Progress, completion and remaining days are derived from the log.
package models

import "sort"

// MultiDayChallenge is a long-running challenge. Log is keyed by day key,
// so a day can only be marked once.
type MultiDayChallenge struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TargetDays int             `json:"targetDays"`
	Log        map[string]bool `json:"log"`
	Active     bool            `json:"active"`
	CreatedAt  int64           `json:"createdAt"` // unix millis
}

// Count is the number of marked days.
func (c MultiDayChallenge) Count() int {
	n := 0
	for _, marked := range c.Log {
		if marked {
			n++
		}
	}
	return n
}

// MarkedOn reports whether day is in the log.
func (c MultiDayChallenge) MarkedOn(day string) bool {
	return c.Log[day]
}

// Progress is Count/TargetDays clamped to [0,1].
func (c MultiDayChallenge) Progress() float64 {
	if c.TargetDays <= 0 {
		return 0
	}
	p := float64(c.Count()) / float64(c.TargetDays)
	if p > 1 {
		return 1
	}
	return p
}

func (c MultiDayChallenge) Completed() bool {
	return c.TargetDays > 0 && c.Count() >= c.TargetDays
}

func (c MultiDayChallenge) Remaining() int {
	r := c.TargetDays - c.Count()
	if r < 0 {
		return 0
	}
	return r
}

// Days returns the marked day keys in order.
func (c MultiDayChallenge) Days() []string {
	days := make([]string, 0, len(c.Log))
	for d, marked := range c.Log {
		if marked {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	return days
}
