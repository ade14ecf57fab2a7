// ABOUTME: Calendar-day keys (YYYY-MM-DD) derived from wall-clock time.
// ABOUTME: Single source of truth for "what day is it" and day arithmetic.
package daykey

import (
	"iter"
	"time"
)

// Format is the canonical day-key layout. Keys sort lexicographically by date.
const Format = "2006-01-02"

// Clock returns the current instant. Components take a Clock so tests can pin the day.
type Clock func() time.Time

// System is the wall clock in local time.
var System Clock = time.Now

// Fixed returns a Clock pinned to noon (local) of the given day key.
// It panics on a malformed key; it is meant for tests and fixtures.
func Fixed(day string) Clock {
	t, err := Parse(day)
	if err != nil {
		panic("daykey: invalid fixed day " + day)
	}
	noon := t.Add(12 * time.Hour)
	return func() time.Time { return noon }
}

// Key returns the day key for t in t's own location.
func Key(t time.Time) string {
	return t.Format(Format)
}

// Today returns the day key for the clock's current instant.
func (c Clock) Today() string {
	return Key(c())
}

// Parse returns local midnight of the day named by key.
func Parse(key string) (time.Time, error) {
	return time.ParseInLocation(Format, key, time.Local)
}

// DaysBetween returns the whole calendar days from b to a.
// Callers pass a >= b; a reversed pair yields 0, never a negative count.
func DaysBetween(a, b time.Time) int {
	// Compare dates on a UTC grid so DST transitions do not shave an hour off a day.
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	// time.Duration saturates near 292 years, so count on Unix seconds.
	days := int((da.Unix() - db.Unix()) / 86400)
	if days < 0 {
		return 0
	}
	return days
}

// DaysBetweenKeys is DaysBetween on day keys. Malformed keys count as the same day.
func DaysBetweenKeys(a, b string) int {
	ta, err := Parse(a)
	if err != nil {
		return 0
	}
	tb, err := Parse(b)
	if err != nil {
		return 0
	}
	return DaysBetween(ta, tb)
}

// Valid reports whether s is a well-formed day key.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// ResetNeeded reports whether the daily reset must run, given the last
// reset marker and today's key. Any mismatch, including an empty marker, resets.
func ResetNeeded(marker, today string) bool {
	return marker != today
}

// Trailing yields the n day keys ending at today, oldest first.
// The sequence can be ranged over any number of times.
func Trailing(today time.Time, n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		y, m, d := today.Date()
		for i := n - 1; i >= 0; i-- {
			day := time.Date(y, m, d-i, 12, 0, 0, 0, today.Location())
			if !yield(Key(day)) {
				return
			}
		}
	}
}
