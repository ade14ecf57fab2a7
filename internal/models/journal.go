// ABOUTME: JournalEntry, the per-day reflection record.
// ABOUTME: Three gratitude and three affirmation slots; never touched by the daily reset.
package models

import "strings"

// JournalEntry is keyed by day outside the struct.
type JournalEntry struct {
	TMI          string    `json:"tmi" yaml:"tmi"`
	Gratitude    [3]string `json:"gratitude" yaml:"gratitude"`
	Affirmations [3]string `json:"affirmations" yaml:"affirmations"`
	Victories    string    `json:"victories" yaml:"victories"`
	Notes        string    `json:"notes" yaml:"notes"`
}

// IsEmpty reports whether every field is blank.
func (e JournalEntry) IsEmpty() bool {
	if strings.TrimSpace(e.TMI+e.Victories+e.Notes) != "" {
		return false
	}
	for i := range e.Gratitude {
		if strings.TrimSpace(e.Gratitude[i]) != "" || strings.TrimSpace(e.Affirmations[i]) != "" {
			return false
		}
	}
	return true
}
