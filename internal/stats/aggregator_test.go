// ABOUTME: Tests for history snapshots, trailing series and summary cards.
// ABOUTME: Series are checked for laziness, restartability and default-to-zero days.
package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/betterself/internal/daily"
	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/models"
)

func newAggregator(t *testing.T, mem *kv.MemoryBackend, day string) (*Aggregator, *kv.Adapter) {
	t.Helper()
	a := kv.New(mem)
	t.Cleanup(func() { _ = a.Close() })
	agg := New(a, daykey.Fixed(day))
	agg.Load()
	return agg, a
}

func collect(seq func(func(string, int) bool)) ([]string, []int) {
	var days []string
	var vals []int
	seq(func(d string, v int) bool {
		days = append(days, d)
		vals = append(vals, v)
		return true
	})
	return days, vals
}

func TestSnapshotToday(t *testing.T) {
	agg, a := newAggregator(t, kv.NewMemory(), "2024-01-10")

	assert.True(t, agg.SnapshotToday(42.4))
	assert.False(t, agg.SnapshotToday(41.6), "same rounded value is not rewritten")
	assert.True(t, agg.SnapshotToday(50))

	stored, ok := kv.GetJSON[History](a, Key)
	require.True(t, ok)
	assert.Equal(t, History{"2024-01-10": 50}, stored)
}

func TestSnapshotClampsAndRejects(t *testing.T) {
	agg, _ := newAggregator(t, kv.NewMemory(), "2024-01-10")

	assert.False(t, agg.SnapshotToday(math.NaN()))
	assert.False(t, agg.SnapshotToday(math.Inf(1)))
	assert.Empty(t, agg.History())

	agg.SnapshotToday(130)
	assert.Equal(t, 100, agg.History()["2024-01-10"])
	agg.SnapshotToday(-4)
	assert.Equal(t, 0, agg.History()["2024-01-10"])
}

func TestSeries(t *testing.T) {
	mem := kv.NewMemory()
	_ = mem.Set(kv.Namespace+Key, []byte(`{"2024-01-08":40,"2024-01-10":250,"2023-12-01":90}`))
	agg, _ := newAggregator(t, mem, "2024-01-10")

	days, vals := collect(agg.Series(3))
	assert.Equal(t, []string{"2024-01-08", "2024-01-09", "2024-01-10"}, days)
	assert.Equal(t, []int{40, 0, 100}, vals)

	again, _ := collect(agg.Series(3))
	assert.Equal(t, days, again, "series must be restartable")

	d12, _ := collect(agg.Series(TrendDays))
	assert.Len(t, d12, 12)
}

func TestSeriesSeesLaterSnapshots(t *testing.T) {
	agg, _ := newAggregator(t, kv.NewMemory(), "2024-01-10")
	seq := agg.Series(1)

	agg.SnapshotToday(75)
	_, vals := collect(seq)
	assert.Equal(t, []int{75}, vals)
}

func TestSeriesEarlyStop(t *testing.T) {
	agg, _ := newAggregator(t, kv.NewMemory(), "2024-01-10")
	n := 0
	for range agg.Series(30) {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestChallengeSeries(t *testing.T) {
	agg, _ := newAggregator(t, kv.NewMemory(), "2024-01-07")
	list := []models.MultiDayChallenge{
		{ID: "c_1", Log: map[string]bool{"2024-01-01": true, "2024-01-07": true}},
		{ID: "c_2", Log: map[string]bool{"2024-01-07": true, "2023-12-31": true}},
		{ID: "c_3"},
	}

	days, vals := collect(agg.ChallengeSeries(ChallengeDays, list))
	assert.Equal(t, "2024-01-01", days[0])
	assert.Equal(t, "2024-01-07", days[6])
	assert.Equal(t, []int{1, 0, 0, 0, 0, 0, 2}, vals)
}

func TestSummarize(t *testing.T) {
	in := Inputs{
		Today: "2024-01-10",
		Progress: daily.Progress{
			Morning: 1,
			Night:   0.5,
			Tasks:   0,
			Habits:  0.5,
		},
		Habits: 7,
		Challenges: []models.MultiDayChallenge{
			{Active: true, Log: map[string]bool{"2024-01-10": true}},
			{Active: false, Log: map[string]bool{"2024-01-10": true}},
			{Active: true},
		},
		Streaks: []models.StreakMonitor{
			{LastResetISO: "2024-01-01"},
			{LastResetISO: "2024-01-08"},
			{LastResetISO: "bogus"},
		},
	}

	got := Summarize(in)
	assert.Equal(t, Summary{
		HabitsPercent:    50,
		Rating:           2.5,
		TotalHabits:      7,
		ActiveChallenges: 2,
		MarksToday:       2,
		BestStreakDays:   9,
	}, got)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(Inputs{Today: "2024-01-10"}))
}
