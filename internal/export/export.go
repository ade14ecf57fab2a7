// ABOUTME: Export and import of the full betterself state.
// ABOUTME: Supports JSON, YAML and Markdown export; JSON import writes back through MultiSet.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/betterself/internal/app"
	"github.com/harperreed/betterself/internal/challenges"
	"github.com/harperreed/betterself/internal/daily"
	"github.com/harperreed/betterself/internal/journal"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/models"
	"github.com/harperreed/betterself/internal/stats"
	"github.com/harperreed/betterself/internal/streaks"
)

// Version of the export format.
const Version = "1.0"

// ExportData represents the full export format.
type ExportData struct {
	Version        string                         `json:"version"`
	ExportedAt     time.Time                      `json:"exported_at"`
	Tool           string                         `json:"tool"`
	Day            string                         `json:"day"`
	LastReset      string                         `json:"last_reset"`
	MorningRoutine []models.ChecklistItem         `json:"morning_routine"`
	NightRoutine   []models.ChecklistItem         `json:"night_routine"`
	Tasks          []models.ChecklistItem         `json:"tasks"`
	Habits         []models.Habit                 `json:"habits"`
	HabitCounts    models.HabitCounts             `json:"habit_counts"`
	DailyChallenge models.Challenge               `json:"daily_challenge"`
	TMI            map[string]string              `json:"tmi"`
	Streaks        []models.StreakMonitor         `json:"streaks"`
	Challenges     []models.MultiDayChallenge     `json:"challenges"`
	History        stats.History                  `json:"history"`
	Journal        map[string]models.JournalEntry `json:"journal"`
}

// Collect snapshots everything the App holds.
func Collect(a *app.App) *ExportData {
	state := a.Daily.Snapshot()

	tmi := map[string]string{}
	for _, k := range a.KV.Keys(daily.TMIPrefix) {
		if v, ok := kv.GetJSON[string](a.KV, k); ok && v != "" {
			tmi[strings.TrimPrefix(k, daily.TMIPrefix)] = v
		}
	}

	entries := map[string]models.JournalEntry{}
	for _, day := range a.Journal.Days() {
		entries[day] = a.Journal.Get(day)
	}

	return &ExportData{
		Version:        Version,
		ExportedAt:     time.Now(),
		Tool:           "betterself",
		Day:            state.Day,
		LastReset:      state.LastReset,
		MorningRoutine: state.Morning,
		NightRoutine:   state.Night,
		Tasks:          state.Tasks,
		Habits:         a.Daily.Habits(),
		HabitCounts:    a.Daily.HabitCounts(),
		DailyChallenge: state.Challenge,
		TMI:            tmi,
		Streaks:        a.Streaks.List(),
		Challenges:     a.Challenges.List(),
		History:        a.Stats.History(),
		Journal:        entries,
	}
}

// JSON exports data as indented JSON.
func JSON(d *ExportData) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML exports data in a human-oriented YAML layout.
func YAML(d *ExportData) ([]byte, error) {
	out := yamlExport{
		Version:    d.Version,
		ExportedAt: d.ExportedAt.Format(time.RFC3339),
		Tool:       d.Tool,
		Day:        d.Day,
		Routines: map[string][]yamlItem{
			"morning": toYAMLItems(d.MorningRoutine),
			"night":   toYAMLItems(d.NightRoutine),
		},
		Tasks:     toYAMLItems(d.Tasks),
		Challenge: yamlItem{Title: d.DailyChallenge.Title, Done: d.DailyChallenge.Done},
		TMI:       d.TMI,
		History:   d.History,
		Journal:   d.Journal,
	}

	for _, h := range d.Habits {
		out.Habits = append(out.Habits, yamlHabit{
			ID:     h.ID,
			Title:  h.Title,
			PerDay: h.Goal(),
			Today:  d.HabitCounts[h.ID],
		})
	}
	for _, s := range d.Streaks {
		out.Streaks = append(out.Streaks, yamlStreak{
			ID:        s.ID,
			Name:      s.Name,
			LastReset: s.LastResetISO,
			Days:      s.ElapsedDays(d.Day),
		})
	}
	for _, c := range d.Challenges {
		out.Challenges = append(out.Challenges, yamlChallenge{
			ID:         c.ID,
			Name:       c.Name,
			TargetDays: c.TargetDays,
			Active:     c.Active,
			Completed:  c.Completed(),
			Days:       c.Days(),
		})
	}

	return yaml.Marshal(out)
}

type yamlExport struct {
	Version    string                         `yaml:"version"`
	ExportedAt string                         `yaml:"exported_at"`
	Tool       string                         `yaml:"tool"`
	Day        string                         `yaml:"day"`
	Routines   map[string][]yamlItem          `yaml:"routines"`
	Tasks      []yamlItem                     `yaml:"tasks"`
	Habits     []yamlHabit                    `yaml:"habits"`
	Challenge  yamlItem                       `yaml:"daily_challenge"`
	TMI        map[string]string              `yaml:"tmi,omitempty"`
	Streaks    []yamlStreak                   `yaml:"streaks,omitempty"`
	Challenges []yamlChallenge                `yaml:"challenges,omitempty"`
	History    stats.History                  `yaml:"history,omitempty"`
	Journal    map[string]models.JournalEntry `yaml:"journal,omitempty"`
}

type yamlItem struct {
	ID    string `yaml:"id,omitempty"`
	Title string `yaml:"title"`
	Done  bool   `yaml:"done"`
}

type yamlHabit struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	PerDay int    `yaml:"per_day"`
	Today  int    `yaml:"today"`
}

type yamlStreak struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	LastReset string `yaml:"last_reset"`
	Days      int    `yaml:"days"`
}

type yamlChallenge struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	TargetDays int      `yaml:"target_days"`
	Active     bool     `yaml:"active"`
	Completed  bool     `yaml:"completed"`
	Days       []string `yaml:"days,omitempty"`
}

func toYAMLItems(items []models.ChecklistItem) []yamlItem {
	out := make([]yamlItem, 0, len(items))
	for _, it := range items {
		out = append(out, yamlItem{ID: it.ID, Title: it.Title, Done: it.Done})
	}
	return out
}

// Markdown renders a readable report. Journal entries and history before
// since (a day key, may be empty) are left out.
func Markdown(d *ExportData, since string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# betterself Export - %s\n\n", d.Day))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", d.ExportedAt.Format(time.RFC3339)))

	if tmi := d.TMI[d.Day]; tmi != "" {
		sb.WriteString(fmt.Sprintf("**Most important task:** %s\n\n", tmi))
	}

	writeChecklist(&sb, "Morning Routine", d.MorningRoutine)
	writeChecklist(&sb, "Night Routine", d.NightRoutine)
	writeChecklist(&sb, "Tasks", d.Tasks)

	if len(d.Habits) > 0 {
		sb.WriteString("## Habits\n\n")
		sb.WriteString("| Habit | Today | Goal |\n")
		sb.WriteString("|-------|-------|------|\n")
		for _, h := range d.Habits {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d |\n", h.Title, d.HabitCounts[h.ID], h.Goal()))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Daily Challenge\n\n")
	sb.WriteString(fmt.Sprintf("- [%s] %s\n\n", check(d.DailyChallenge.Done), d.DailyChallenge.Title))

	if len(d.Streaks) > 0 {
		sb.WriteString("## Streaks\n\n")
		sb.WriteString("| Streak | Days | Since |\n")
		sb.WriteString("|--------|------|-------|\n")
		for _, s := range d.Streaks {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n", s.Name, s.ElapsedDays(d.Day), s.LastResetISO))
		}
		sb.WriteString("\n")
	}

	if len(d.Challenges) > 0 {
		sb.WriteString("## Challenges\n\n")
		sb.WriteString("| Challenge | Progress | Status |\n")
		sb.WriteString("|-----------|----------|--------|\n")
		for _, c := range d.Challenges {
			status := "active"
			switch {
			case c.Completed():
				status = "completed"
			case !c.Active:
				status = "cancelled"
			}
			sb.WriteString(fmt.Sprintf("| %s | %d/%d | %s |\n", c.Name, c.Count(), c.TargetDays, status))
		}
		sb.WriteString("\n")
	}

	if days := sortedDays(d.History, since); len(days) > 0 {
		sb.WriteString("## Habit History\n\n")
		sb.WriteString("| Date | Completion |\n")
		sb.WriteString("|------|------------|\n")
		for _, day := range days {
			sb.WriteString(fmt.Sprintf("| %s | %d%% |\n", day, d.History[day]))
		}
		sb.WriteString("\n")
	}

	if days := sortedDays(d.Journal, since); len(days) > 0 {
		sb.WriteString("## Journal\n\n")
		for _, day := range days {
			writeJournal(&sb, day, d.Journal[day])
		}
	}

	return sb.String()
}

func writeChecklist(sb *strings.Builder, title string, items []models.ChecklistItem) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", check(it.Done), it.Title))
	}
	sb.WriteString("\n")
}

func writeJournal(sb *strings.Builder, day string, e models.JournalEntry) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", day))
	if e.TMI != "" {
		sb.WriteString(fmt.Sprintf("**TMI:** %s\n\n", e.TMI))
	}
	writeSlots(sb, "Gratitude", e.Gratitude)
	writeSlots(sb, "Affirmations", e.Affirmations)
	if e.Victories != "" {
		sb.WriteString(fmt.Sprintf("**Victories:** %s\n\n", e.Victories))
	}
	if e.Notes != "" {
		sb.WriteString(fmt.Sprintf("**Notes:** %s\n\n", e.Notes))
	}
}

func writeSlots(sb *strings.Builder, title string, slots [3]string) {
	var lines []string
	for _, s := range slots {
		if strings.TrimSpace(s) != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("**%s:**\n\n", title))
	for i, l := range lines {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, l))
	}
	sb.WriteString("\n")
}

func check(done bool) string {
	if done {
		return "x"
	}
	return " "
}

func sortedDays[V any](m map[string]V, since string) []string {
	days := make([]string, 0, len(m))
	for day := range m {
		if since == "" || day >= since {
			days = append(days, day)
		}
	}
	sort.Strings(days)
	return days
}

// ParseJSON decodes an export produced by JSON.
func ParseJSON(data []byte) (*ExportData, error) {
	var d ExportData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if d.Version == "" {
		return nil, errors.New("not a betterself export: missing version")
	}
	return &d, nil
}

// Import writes every collection in d through adapter. Keys are written
// independently; the returned map holds the ones that failed. A running
// App does not see the imported data until it is reopened.
func Import(adapter *kv.Adapter, d *ExportData) (map[string]error, error) {
	entries := map[string]any{
		daily.KeyMorning:     d.MorningRoutine,
		daily.KeyNight:       d.NightRoutine,
		daily.KeyTasks:       d.Tasks,
		daily.KeyHabits:      d.Habits,
		daily.KeyHabitCounts: d.HabitCounts,
		daily.KeyChallenge:   d.DailyChallenge,
		streaks.Key:          d.Streaks,
		challenges.Key:       d.Challenges,
		stats.Key:            d.History,
	}
	if d.LastReset != "" {
		entries[daily.KeyLastReset] = d.LastReset
	}
	for day, text := range d.TMI {
		entries[daily.TMIPrefix+day] = text
	}
	for day, e := range d.Journal {
		entries[journal.Prefix+day] = e
	}

	raw := make(map[string][]byte, len(entries))
	for k, v := range entries {
		if isNil(v) {
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", k, err)
		}
		raw[k] = data
	}
	return adapter.MultiSet(raw), nil
}

// isNil reports whether v holds a nil slice or map, which means the
// export left the collection out.
func isNil(v any) bool {
	switch x := v.(type) {
	case []models.ChecklistItem:
		return x == nil
	case []models.Habit:
		return x == nil
	case models.HabitCounts:
		return x == nil
	case []models.StreakMonitor:
		return x == nil
	case []models.MultiDayChallenge:
		return x == nil
	case stats.History:
		return x == nil
	}
	return false
}
