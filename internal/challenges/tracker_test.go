// ABOUTME: Tests for the multi-day challenge tracker.
// ABOUTME: Covers one mark per day, cancellation freezing, and the completion scenario.
package challenges

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/models"
)

type dayClock struct{ day string }

func (c *dayClock) now() time.Time { return daykey.Fixed(c.day)() }

func newTracker(t *testing.T, mem *kv.MemoryBackend, c *dayClock) (*Tracker, *kv.Adapter) {
	t.Helper()
	a := kv.New(mem)
	t.Cleanup(func() { _ = a.Close() })
	tr := New(a, c.now)
	tr.Load()
	return tr, a
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		target int
		ok     bool
	}{
		{"valid", "Walk 20 min", 30, true},
		{"blank name", "  ", 30, false},
		{"zero target", "Walk", 0, false},
		{"negative target", "Walk", -3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := newTracker(t, kv.NewMemory(), &dayClock{day: "2024-01-01"})
			c, ok := tr.Create(tt.title, tt.target)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				assert.Empty(t, tr.List())
				return
			}
			assert.True(t, c.Active)
			assert.Empty(t, c.Log)
			assert.Equal(t, tt.target, c.TargetDays)
			assert.NotZero(t, c.CreatedAt)
		})
	}
}

func TestMarkTodayTwiceIsNoop(t *testing.T) {
	tr, _ := newTracker(t, kv.NewMemory(), &dayClock{day: "2024-01-01"})
	c, _ := tr.Create("Read", 5)

	assert.True(t, tr.MarkToday(c.ID))
	assert.False(t, tr.MarkToday(c.ID))

	got, _ := tr.Get(c.ID)
	assert.Equal(t, 1, got.Count())
}

func TestCompletionScenario(t *testing.T) {
	mem := kv.NewMemory()
	seeded := []models.MultiDayChallenge{{
		ID:         "c_1",
		Name:       "Walk",
		TargetDays: 3,
		Log:        map[string]bool{"2024-01-01": true, "2024-01-02": true},
		Active:     true,
	}}
	data, err := json.Marshal(seeded)
	require.NoError(t, err)
	require.NoError(t, mem.Set(kv.Namespace+Key, data))

	tr, _ := newTracker(t, mem, &dayClock{day: "2024-01-03"})
	require.True(t, tr.MarkToday("c_1"))

	c, _ := tr.Get("c_1")
	assert.True(t, c.Completed())
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, 1.0, c.Progress())
}

func TestCancelFreezesMarking(t *testing.T) {
	clock := &dayClock{day: "2024-01-01"}
	tr, _ := newTracker(t, kv.NewMemory(), clock)
	c, _ := tr.Create("Meditate", 10)
	tr.MarkToday(c.ID)

	assert.True(t, tr.Cancel(c.ID))
	clock.day = "2024-01-02"
	assert.False(t, tr.MarkToday(c.ID))

	got, _ := tr.Get(c.ID)
	assert.False(t, got.Active)
	assert.Equal(t, 1, got.Count(), "cancel keeps the log")

	assert.True(t, tr.Rename(c.ID, "Meditate daily"), "cancelled challenges can be renamed")
	assert.Equal(t, 0, tr.ActiveCount())
}

func TestRenameDelete(t *testing.T) {
	tr, a := newTracker(t, kv.NewMemory(), &dayClock{day: "2024-01-01"})
	c, _ := tr.Create("Run", 7)

	assert.False(t, tr.Rename(c.ID, ""))
	assert.False(t, tr.Rename("c_none", "x"))
	assert.True(t, tr.Delete(c.ID))
	assert.False(t, tr.Delete(c.ID))
	assert.False(t, tr.MarkToday(c.ID))

	stored, ok := kv.GetJSON[[]models.MultiDayChallenge](a, Key)
	require.True(t, ok)
	assert.Empty(t, stored)
}

func TestGetReturnsCopy(t *testing.T) {
	tr, _ := newTracker(t, kv.NewMemory(), &dayClock{day: "2024-01-01"})
	c, _ := tr.Create("Run", 7)

	got, _ := tr.Get(c.ID)
	got.Log["2023-12-31"] = true

	again, _ := tr.Get(c.ID)
	assert.Equal(t, 0, again.Count(), "callers must not mutate tracker state")
}

func TestMarksOn(t *testing.T) {
	clock := &dayClock{day: "2024-01-01"}
	tr, _ := newTracker(t, kv.NewMemory(), clock)
	a, _ := tr.Create("A", 5)
	b, _ := tr.Create("B", 5)
	tr.Create("C", 5)

	tr.MarkToday(a.ID)
	tr.MarkToday(b.ID)
	clock.day = "2024-01-02"
	tr.MarkToday(a.ID)

	assert.Equal(t, 2, tr.MarksOn("2024-01-01"))
	assert.Equal(t, 1, tr.MarksOn("2024-01-02"))
	assert.Equal(t, 0, tr.MarksOn("2024-01-03"))
	assert.Equal(t, 3, tr.ActiveCount())
}

func TestLoadToleratesNullLog(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(kv.Namespace+Key, []byte(`[{"id":"c_1","name":"x","targetDays":2,"log":null,"active":true}]`)))

	tr, _ := newTracker(t, mem, &dayClock{day: "2024-01-01"})
	assert.True(t, tr.MarkToday("c_1"))
}

func TestPersistRoundTrip(t *testing.T) {
	mem := kv.NewMemory()
	clock := &dayClock{day: "2024-01-01"}
	tr, a := newTracker(t, mem, clock)
	c, _ := tr.Create("Run", 7)
	tr.Create("Swim", 3)
	tr.MarkToday(c.ID)
	a.Flush()

	tr2, _ := newTracker(t, mem, clock)
	assert.Equal(t, tr.List(), tr2.List())
}
