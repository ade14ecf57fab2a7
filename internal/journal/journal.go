// ABOUTME: Per-day journal entries stored under journal:<day>.
// ABOUTME: Entries are day-scoped and untouched by the daily reset.
package journal

import (
	"strings"

	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/models"
)

// Prefix is the key prefix for journal entries.
const Prefix = "journal:"

// Journal reads and writes entries through the adapter. It holds no state
// of its own, so it is safe for concurrent use.
type Journal struct {
	kv *kv.Adapter
}

func New(adapter *kv.Adapter) *Journal {
	return &Journal{kv: adapter}
}

// Get returns the entry for day. Absent or malformed entries come back blank.
func (j *Journal) Get(day string) models.JournalEntry {
	e, _ := kv.GetJSON[models.JournalEntry](j.kv, Prefix+day)
	return e
}

// Save stores the entry for day. A blank entry deletes the record.
// It reports false for a malformed day key.
func (j *Journal) Save(day string, e models.JournalEntry) bool {
	if !daykey.Valid(day) {
		return false
	}
	if e.IsEmpty() {
		j.kv.DeleteAsync(Prefix + day)
		return true
	}
	j.kv.SetJSONAsync(Prefix+day, e)
	return true
}

// Days lists the days that have an entry, oldest first.
func (j *Journal) Days() []string {
	keys := j.kv.Keys(Prefix)
	days := make([]string, 0, len(keys))
	for _, k := range keys {
		d := strings.TrimPrefix(k, Prefix)
		if daykey.Valid(d) {
			days = append(days, d)
		}
	}
	return days
}

// Field names accepted by Set.
const (
	FieldTMI         = "tmi"
	FieldGratitude   = "gratitude"
	FieldAffirmation = "affirmation"
	FieldVictories   = "victories"
	FieldNotes       = "notes"
)

// Set updates one field of the entry for day and saves it. slot selects
// the gratitude or affirmation line (1-3) and is ignored otherwise.
func (j *Journal) Set(day, field string, slot int, value string) (models.JournalEntry, bool) {
	e := j.Get(day)
	switch field {
	case FieldTMI:
		e.TMI = value
	case FieldVictories:
		e.Victories = value
	case FieldNotes:
		e.Notes = value
	case FieldGratitude, FieldAffirmation:
		if slot < 1 || slot > len(e.Gratitude) {
			return e, false
		}
		if field == FieldGratitude {
			e.Gratitude[slot-1] = value
		} else {
			e.Affirmations[slot-1] = value
		}
	default:
		return e, false
	}
	if !j.Save(day, e) {
		return e, false
	}
	return e, true
}
