// ABOUTME: StreakMonitor tracks days elapsed since the last relapse.
// ABOUTME: Elapsed days are always derived from lastResetISO, never stored.
package models

import "github.com/harperreed/betterself/internal/daykey"

// StreakMonitor counts days since the monitored event last happened.
type StreakMonitor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LastResetISO string `json:"lastResetISO"`
}

// ElapsedDays returns whole days from LastResetISO to today.
// A missing or malformed marker counts as today.
func (m StreakMonitor) ElapsedDays(today string) int {
	if !daykey.Valid(m.LastResetISO) {
		return 0
	}
	return daykey.DaysBetweenKeys(today, m.LastResetISO)
}
