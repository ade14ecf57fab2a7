// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs the root command against a temp sqlite store and checks the output.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/harperreed/betterself/internal/app"
	"github.com/harperreed/betterself/internal/daykey"
)

// runCLI executes the root command with a sqlite store in dataDir.
// Flag variables are reset first because cobra keeps them between runs.
func runCLI(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dataDir, "config"))

	flagBackend, flagDataDir, flagDebug = "", "", false
	exportOutput, exportSince = "", ""
	tmiClear, routineNight = false, false
	journalDay, journalList = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--backend", "sqlite", "--data-dir", dataDir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dataDir, args...)
	if err != nil {
		t.Fatalf("betterself %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "betterself" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "betterself")
	}
	for _, name := range []string{"backend", "data-dir", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"today", "routine", "task", "habit", "daily", "tmi", "streak", "challenge",
		"journal", "stats", "reset", "export", "import", "mcp", "sync", "install-skill"}
	have := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestTodayShowsDefaults(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "today")
	assertContains(t, out, "Make the bed", "Dental hygiene", "Hydrate", "0/2", "(not set)")
}

func TestTaskLifecycle(t *testing.T) {
	dir := t.TempDir()

	assertContains(t, mustRun(t, dir, "task", "add", "Pay", "rent"), "Added task Pay rent", "(t_")
	assertContains(t, mustRun(t, dir, "task", "list"), "[ ] Pay rent")
	assertContains(t, mustRun(t, dir, "task", "done", "t_"), "[x] Pay rent")
	assertContains(t, mustRun(t, dir, "task", "rm", "t_"), "Removed task Pay rent")
	assertContains(t, mustRun(t, dir, "task", "list"), "(empty)")

	if _, err := runCLI(t, dir, "task", "add", "   "); err == nil {
		t.Error("Expected error for blank task")
	}
}

func TestRoutineToggle(t *testing.T) {
	dir := t.TempDir()

	assertContains(t, mustRun(t, dir, "routine", "toggle", "m-bed"), "[x] Make the bed")
	assertContains(t, mustRun(t, dir, "routine", "toggle", "n-teeth"), "[x] Dental hygiene")
	assertContains(t, mustRun(t, dir, "routine", "toggle", "n-te", "--night"), "[ ] Dental hygiene")
	assertContains(t, mustRun(t, dir, "routine", "list"), "[x] Make the bed", " 20%")
}

func TestHabitCommands(t *testing.T) {
	dir := t.TempDir()

	assertContains(t, mustRun(t, dir, "habit", "bump", "h-water"), "[ ] Hydrate 1/2")
	assertContains(t, mustRun(t, dir, "habit", "bump", "h-water", "5"), "[x] Hydrate 2/2")
	assertContains(t, mustRun(t, dir, "habit", "goal", "h-water", "3"), "[ ] Hydrate 2/3")
	assertContains(t, mustRun(t, dir, "habit", "toggle", "h-water"), "[x] Hydrate 3/3")
	assertContains(t, mustRun(t, dir, "habit", "add", "Stretch"), "Added habit Stretch")
	assertContains(t, mustRun(t, dir, "habit", "list"), "Stretch", "3/3")
	assertContains(t, mustRun(t, dir, "habit", "defaults"), "Restored 7 default habits")
	assertContains(t, mustRun(t, dir, "habit", "list"), "0/2")

	if _, err := runCLI(t, dir, "habit", "goal", "h-water", "lots"); err == nil {
		t.Error("Expected error for non-numeric goal")
	}
}

func TestHabitChangeRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "habit", "toggle", "h-water")

	var export struct {
		History map[string]int `json:"history"`
	}
	if err := json.Unmarshal([]byte(mustRun(t, dir, "export", "json")), &export); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if got := export.History[daykey.Key(time.Now())]; got != 14 {
		t.Errorf("history for today = %d, want 14 (1 of 7 habits) without opening stats", got)
	}
}

func TestIDResolutionErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "habit", "bump", "h-")
	if !errors.Is(err, app.ErrAmbiguous) {
		t.Errorf("Expected ErrAmbiguous, got %v", err)
	}
	_, err = runCLI(t, dir, "habit", "bump", "nope")
	if !errors.Is(err, app.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDailyAndTMI(t *testing.T) {
	dir := t.TempDir()

	assertContains(t, mustRun(t, dir, "daily", "title", "Call", "a", "friend"), "[ ] Call a friend")
	assertContains(t, mustRun(t, dir, "daily", "done"), "[x] Call a friend")
	assertContains(t, mustRun(t, dir, "daily", "undo"), "[ ] Call a friend")

	assertContains(t, mustRun(t, dir, "tmi"), "No TMI set")
	assertContains(t, mustRun(t, dir, "tmi", "Finish", "the", "deck"), "TMI: Finish the deck")
	assertContains(t, mustRun(t, dir, "today"), "Finish the deck", "Call a friend")
	assertContains(t, mustRun(t, dir, "tmi", "--clear"), "Cleared")
	assertContains(t, mustRun(t, dir, "tmi"), "No TMI set")
}

func TestStreakCommands(t *testing.T) {
	dir := t.TempDir()

	assertContains(t, mustRun(t, dir, "streak", "add", "No", "sugar"), "Started No sugar")
	assertContains(t, mustRun(t, dir, "streak", "list"), "No sugar", "0 days")
	assertContains(t, mustRun(t, dir, "streak", "relapse", "s_"), "already restarted today")
	assertContains(t, mustRun(t, dir, "streak", "rename", "s_", "No", "candy"), "Renamed to No candy")
	assertContains(t, mustRun(t, dir, "streak", "rm", "s_"), "Deleted streak No candy")
	assertContains(t, mustRun(t, dir, "streak", "list"), "No streaks yet.")
}

func TestChallengeCommands(t *testing.T) {
	dir := t.TempDir()

	assertContains(t, mustRun(t, dir, "challenge", "add", "Run", "5k", "2"), "Created Run 5k (2 days)")
	assertContains(t, mustRun(t, dir, "challenge", "mark", "c_"), "1/2", "active")
	assertContains(t, mustRun(t, dir, "challenge", "mark", "c_"), "already marked today")
	assertContains(t, mustRun(t, dir, "challenge", "cancel", "c_"), "Cancelled Run 5k")
	assertContains(t, mustRun(t, dir, "challenge", "list"), "cancelled")

	if _, err := runCLI(t, dir, "challenge", "mark", "c_"); err == nil {
		t.Error("Expected error marking a cancelled challenge")
	}
	if _, err := runCLI(t, dir, "challenge", "add", "Run", "0"); err == nil {
		t.Error("Expected error for zero target")
	}

	assertContains(t, mustRun(t, dir, "challenge", "rm", "c_"), "Deleted challenge Run 5k")
}

func TestJournalCommands(t *testing.T) {
	dir := t.TempDir()

	assertContains(t, mustRun(t, dir, "journal", "set", "gratitude", "1", "Coffee"), "Saved gratitude")
	assertContains(t, mustRun(t, dir, "journal", "set", "notes", "Long", "walk", "--day", "2024-01-05"), "2024-01-05")
	assertContains(t, mustRun(t, dir, "journal", "show"), "Gratitude 1", "Coffee")
	assertContains(t, mustRun(t, dir, "journal", "show", "--day", "2024-01-05"), "Long walk")
	assertContains(t, mustRun(t, dir, "journal", "show", "--list"), "2024-01-05")

	tests := [][]string{
		{"journal", "set", "gratitude", "4", "x"},
		{"journal", "set", "gratitude"},
		{"journal", "set", "mood", "x"},
		{"journal", "show", "--day", "yesterday"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			if _, err := runCLI(t, dir, args...); err == nil {
				t.Errorf("Expected error for %v", args)
			}
		})
	}
}

func TestStatsAndReset(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "habit", "toggle", "h-read")
	assertContains(t, mustRun(t, dir, "stats"), "Habits today       14%", "Habits tracked     7", "Habit completion", "Challenge marks")

	assertContains(t, mustRun(t, dir, "reset"), "Reset")
	assertContains(t, mustRun(t, dir, "stats"), "Habits today       0%")
}

func TestExportImportRoundTrip(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	file := filepath.Join(t.TempDir(), "backup.json")

	mustRun(t, src, "task", "add", "Pay rent")
	mustRun(t, src, "streak", "add", "No sugar")
	mustRun(t, src, "export", "json", "-o", file)

	mustRun(t, dst, "import", file)
	assertContains(t, mustRun(t, dst, "task", "list"), "Pay rent")
	assertContains(t, mustRun(t, dst, "streak", "list"), "No sugar")
}

func TestExportFormats(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "task", "add", "Pay rent")

	assertContains(t, mustRun(t, dir, "export", "json"), `"tool": "betterself"`)
	assertContains(t, mustRun(t, dir, "export", "yaml"), "routines:")
	assertContains(t, mustRun(t, dir, "export", "markdown"), "# betterself Export", "- [ ] Pay rent")

	if _, err := runCLI(t, dir, "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if _, err := runCLI(t, dir, "export", "markdown", "--since", "last week"); err == nil {
		t.Error("Expected error for bad --since")
	}
}

func TestSyncNeedsCharm(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "sync")
	if !errors.Is(err, app.ErrSyncUnsupported) {
		t.Errorf("Expected ErrSyncUnsupported, got %v", err)
	}
}

func TestUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "--backend", "mongo", "today")
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}
}

func TestBar(t *testing.T) {
	color.NoColor = true
	tests := []struct {
		in   float64
		want string
	}{
		{0, "..........   0%"},
		{0.5, "#####.....  50%"},
		{1, "########## 100%"},
		{2, "########## 100%"},
		{-1, "..........   0%"},
	}
	for _, tt := range tests {
		if got := bar(tt.in); got != tt.want {
			t.Errorf("bar(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string no truncation", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact length", input: "hello", maxLen: 5, want: "hello"},
		{name: "needs truncation", input: "hello world this is long", maxLen: 10, want: "hello w..."},
		{name: "multi-byte runes stay whole", input: "Café con leche cada mañana", maxLen: 8, want: "Café ..."},
		{name: "tiny width", input: "hábitos", maxLen: 2, want: "há"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Errorf("padRight should not cut, got %q", got)
	}
	if got := padRight("añ", 4); got != "añ  " {
		t.Errorf("padRight should count runes, got %q", got)
	}
}

func TestColumn(t *testing.T) {
	if got := column("Meditación", 12); got != "Meditación  " {
		t.Errorf("column = %q", got)
	}
	got := column("Ordena un cajón o carpeta hoy mismo", 16)
	if got != "Ordena un caj..." {
		t.Errorf("column = %q", got)
	}
	if !utf8.ValidString(column("ññññññññññ", 6)) {
		t.Error("column split a multi-byte rune")
	}
}

func TestListTruncatesLongTitles(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "streak", "add", "No doomscrolling before breakfast on weekdays")
	out := mustRun(t, dir, "streak", "list")
	assertContains(t, out, "No doomscrolling before b...")
	if strings.Contains(out, "weekdays") {
		t.Errorf("long streak name should be cut to its column:\n%s", out)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("m-bed"); got != "m-bed" {
		t.Errorf("shortID(m-bed) = %q", got)
	}
	if got := shortID("t_1b4e28ba-2fa1-11d2-883f-0016d3cca427"); got != "t_1b4e28ba" {
		t.Errorf("shortID = %q", got)
	}
}
