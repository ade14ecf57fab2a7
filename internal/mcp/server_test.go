// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Calls handlers directly against an App on an in-memory backend.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/betterself/internal/app"
	"github.com/harperreed/betterself/internal/daily"
	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/models"
)

type testClock struct {
	day string
}

func (c *testClock) now() time.Time {
	return daykey.Fixed(c.day)()
}

func setupServer(t *testing.T) (*Server, *testClock) {
	t.Helper()
	clock := &testClock{day: "2024-01-05"}
	a := app.New(kv.NewMemory(), clock.now)
	t.Cleanup(func() { _ = a.Close() })
	if err := a.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	server, err := NewServer(a, "")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, clock
}

func TestNewServer(t *testing.T) {
	server, _ := setupServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.app == nil {
		t.Error("Expected non-nil app")
	}
}

func TestHandleToggleItem(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     toggleItemInput
		wantErr   bool
		errSubstr string
	}{
		{name: "morning by id", input: toggleItemInput{List: "morning", ID: "m-bed"}},
		{name: "night by prefix", input: toggleItemInput{List: "night", ID: "n-of"}},
		{name: "ambiguous prefix", input: toggleItemInput{List: "morning", ID: "m-"}, wantErr: true, errSubstr: "ambiguous"},
		{name: "unknown list", input: toggleItemInput{List: "evening", ID: "m-bed"}, wantErr: true, errSubstr: "unknown list"},
		{name: "unknown item", input: toggleItemInput{List: "morning", ID: "zzz"}, wantErr: true, errSubstr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleToggleItem(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error = %v, want substring %q", err, tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(out.Message, ": done") {
				t.Errorf("Message = %q, want done", out.Message)
			}
		})
	}

	if p := server.app.Daily.Progress(); p.Morning != 0.2 {
		t.Errorf("Morning progress = %v, want 0.2", p.Morning)
	}
}

func TestHandleTasks(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAddTask(ctx, &mcp.CallToolRequest{}, titleInput{Title: "   "}); err == nil {
		t.Error("Expected error for blank title")
	}

	_, item, err := server.handleAddTask(ctx, &mcp.CallToolRequest{}, titleInput{Title: "  Pay rent "})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if item.Title != "Pay rent" {
		t.Errorf("Title = %q, want trimmed", item.Title)
	}

	if _, _, err := server.handleToggleItem(ctx, &mcp.CallToolRequest{}, toggleItemInput{List: "tasks", ID: item.ID}); err != nil {
		t.Fatalf("toggle task: %v", err)
	}
	if !server.app.Daily.Tasks()[0].Done {
		t.Error("Expected task to be done")
	}

	if _, _, err := server.handleRemoveTask(ctx, &mcp.CallToolRequest{}, idInput{ID: item.ID}); err != nil {
		t.Fatalf("remove task: %v", err)
	}
	if len(server.app.Daily.Tasks()) != 0 {
		t.Error("Expected no tasks after removal")
	}
}

func TestHandleHabits(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	_, out, err := server.handleBumpHabit(ctx, &mcp.CallToolRequest{}, bumpHabitInput{ID: "h-water"})
	if err != nil {
		t.Fatalf("bump: %v", err)
	}
	if out.Count != 1 || out.Goal != 2 {
		t.Errorf("h-water = %d/%d, want 1/2", out.Count, out.Goal)
	}

	_, out, _ = server.handleBumpHabit(ctx, &mcp.CallToolRequest{}, bumpHabitInput{ID: "h-water", Delta: 5})
	if out.Count != 2 {
		t.Errorf("Count = %d, want clamp to 2", out.Count)
	}

	_, out, _ = server.handleSetHabitGoal(ctx, &mcp.CallToolRequest{}, setHabitGoalInput{ID: "h-water", PerDay: 1})
	if out.Goal != 1 || out.Count != 1 {
		t.Errorf("after goal 1: %d/%d, want 1/1", out.Count, out.Goal)
	}

	_, out, _ = server.handleToggleHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: "h-read"})
	if out.Count != 1 {
		t.Errorf("toggle h-read count = %d, want 1", out.Count)
	}

	if _, _, err := server.handleBumpHabit(ctx, &mcp.CallToolRequest{}, bumpHabitInput{ID: "nope"}); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	_, added, err := server.handleAddHabit(ctx, &mcp.CallToolRequest{}, titleInput{Title: "Stretch"})
	if err != nil {
		t.Fatalf("add habit: %v", err)
	}
	if added.Goal != 1 || added.Count != 0 {
		t.Errorf("new habit = %d/%d, want 0/1", added.Count, added.Goal)
	}
	if _, _, err := server.handleRemoveHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: added.ID}); err != nil {
		t.Fatalf("remove habit: %v", err)
	}

	// 2 of 7 default habits done
	if got := server.app.Stats.History()["2024-01-05"]; got != 29 {
		t.Errorf("history = %d, want 29", got)
	}

	if _, _, err := server.handleResetHabits(ctx, &mcp.CallToolRequest{}, emptyInput{}); err != nil {
		t.Fatal(err)
	}
	if got := server.app.Daily.HabitCount("h-water"); got != 0 {
		t.Errorf("h-water count after defaults = %d, want 0", got)
	}
}

func TestHandleDailyChallengeAndTMI(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	_, ch, err := server.handleSetDailyChallenge(ctx, &mcp.CallToolRequest{}, setDailyChallengeInput{Done: true, Title: "Call a friend"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !ch.Done || ch.Title != "Call a friend" {
		t.Errorf("challenge = %+v", ch)
	}

	_, out, _ := server.handleSetTMI(ctx, &mcp.CallToolRequest{}, setTMIInput{Text: "Ship it"})
	if out.Message != "TMI: Ship it" {
		t.Errorf("Message = %q", out.Message)
	}
	_, out, _ = server.handleSetTMI(ctx, &mcp.CallToolRequest{}, setTMIInput{Text: ""})
	if !strings.Contains(out.Message, "Cleared") {
		t.Errorf("Message = %q", out.Message)
	}
}

func TestToolCallRollsOver(t *testing.T) {
	server, clock := setupServer(t)
	ctx := context.Background()

	server.handleToggleItem(ctx, &mcp.CallToolRequest{}, toggleItemInput{List: "morning", ID: "m-bed"})
	server.handleSetTMI(ctx, &mcp.CallToolRequest{}, setTMIInput{Text: "Yesterday's thing"})

	clock.day = "2024-01-06"
	_, out, err := server.handleGetToday(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	state := out.(daily.State)
	if state.Day != "2024-01-06" || state.LastReset != "2024-01-06" {
		t.Errorf("state day = %s, lastReset = %s", state.Day, state.LastReset)
	}
	if state.Morning[0].Done {
		t.Error("Expected morning routine to be cleared on a new day")
	}
	if state.TMI != "" {
		t.Errorf("TMI = %q, want empty on a new day", state.TMI)
	}
	if want := models.ChallengeFor("2024-01-06"); state.Challenge.Title != want {
		t.Errorf("daily challenge = %q, want the new day's pick %q", state.Challenge.Title, want)
	}
}

func TestHandleStreaks(t *testing.T) {
	server, clock := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAddStreak(ctx, &mcp.CallToolRequest{}, nameInput{Name: ""}); err == nil {
		t.Error("Expected error for blank name")
	}
	_, out, err := server.handleAddStreak(ctx, &mcp.CallToolRequest{}, nameInput{Name: "No sugar"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	m := out.(streakOutput)

	clock.day = "2024-01-09"
	_, out, _ = server.handleListStreaks(ctx, &mcp.CallToolRequest{}, emptyInput{})
	list := out.([]streakOutput)
	if len(list) != 1 || list[0].Days != 4 {
		t.Fatalf("streaks = %+v, want one at 4 days", list)
	}

	_, out, _ = server.handleRelapseStreak(ctx, &mcp.CallToolRequest{}, idInput{ID: m.ID})
	if got := out.(streakOutput).Days; got != 0 {
		t.Errorf("Days after relapse = %d, want 0", got)
	}

	_, out, _ = server.handleRenameStreak(ctx, &mcp.CallToolRequest{}, renameInput{ID: m.ID, Name: "No candy"})
	if got := out.(streakOutput).Name; got != "No candy" {
		t.Errorf("Name = %q", got)
	}

	if _, _, err := server.handleDeleteStreak(ctx, &mcp.CallToolRequest{}, idInput{ID: m.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, out, _ = server.handleListStreaks(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if _, ok := out.(map[string]any); !ok {
		t.Errorf("Expected empty-list message, got %T", out)
	}
}

func TestHandleChallenges(t *testing.T) {
	server, clock := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleCreateChallenge(ctx, &mcp.CallToolRequest{}, createChallengeInput{Name: "Run", TargetDays: 0}); err == nil {
		t.Error("Expected error for zero target")
	}
	_, out, err := server.handleCreateChallenge(ctx, &mcp.CallToolRequest{}, createChallengeInput{Name: "Run 5k", TargetDays: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := out.(challengeOutput).ID

	server.handleMarkChallenge(ctx, &mcp.CallToolRequest{}, idInput{ID: id})
	clock.day = "2024-01-06"
	_, out, _ = server.handleMarkChallenge(ctx, &mcp.CallToolRequest{}, idInput{ID: id})
	c := out.(challengeOutput)
	if c.Count != 2 || c.Percent != 100 || !c.Completed {
		t.Errorf("challenge = %+v, want completed", c)
	}

	_, out, _ = server.handleCancelChallenge(ctx, &mcp.CallToolRequest{}, idInput{ID: id})
	if out.(challengeOutput).Active {
		t.Error("Expected challenge to be inactive")
	}
	if _, _, err := server.handleMarkChallenge(ctx, &mcp.CallToolRequest{}, idInput{ID: id}); err == nil {
		t.Error("Expected error marking a cancelled challenge")
	}

	if _, _, err := server.handleDeleteChallenge(ctx, &mcp.CallToolRequest{}, idInput{ID: id}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(server.app.Challenges.List()) != 0 {
		t.Error("Expected no challenges")
	}
}

func TestHandleJournal(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   setJournalInput
		wantErr bool
	}{
		{name: "gratitude slot", input: setJournalInput{Field: "gratitude", Slot: 2, Value: "Coffee"}},
		{name: "notes on a past day", input: setJournalInput{Day: "2024-01-01", Field: "notes", Value: "New year"}},
		{name: "slot out of range", input: setJournalInput{Field: "affirmation", Slot: 4, Value: "x"}, wantErr: true},
		{name: "unknown field", input: setJournalInput{Field: "mood", Value: "x"}, wantErr: true},
		{name: "bad day", input: setJournalInput{Day: "yesterday", Field: "notes", Value: "x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := server.handleSetJournal(ctx, &mcp.CallToolRequest{}, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	_, out, err := server.handleGetJournal(ctx, &mcp.CallToolRequest{}, dayInput{})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(out)
	if !strings.Contains(string(data), "Coffee") || !strings.Contains(string(data), "2024-01-05") {
		t.Errorf("journal = %s", data)
	}
}

func TestHandleGetStats(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	server.handleToggleHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: "h-read"})
	server.handleCreateChallenge(ctx, &mcp.CallToolRequest{}, createChallengeInput{Name: "Run", TargetDays: 3})

	_, out, err := server.handleGetStats(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatal(err)
	}
	s := out.(statsOutput)
	if s.HabitsPercent != 14 || s.TotalHabits != 7 || s.ActiveChallenges != 1 {
		t.Errorf("summary = %+v", s.Summary)
	}
	if len(s.HabitTrend) != 12 || len(s.ChallengeTrend) != 7 {
		t.Errorf("trend lengths = %d, %d", len(s.HabitTrend), len(s.ChallengeTrend))
	}
	if last := s.HabitTrend[len(s.HabitTrend)-1]; last.Day != "2024-01-05" || last.Value != 14 {
		t.Errorf("last trend point = %+v", last)
	}
}

func TestHandleResetDay(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	server.handleBumpHabit(ctx, &mcp.CallToolRequest{}, bumpHabitInput{ID: "h-read"})
	if _, _, err := server.handleResetDay(ctx, &mcp.CallToolRequest{}, emptyInput{}); err != nil {
		t.Fatal(err)
	}
	if got := server.app.Daily.HabitCount("h-read"); got != 0 {
		t.Errorf("count after reset = %d", got)
	}
}

func TestHandleTodayResource(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != todayURI {
		t.Errorf("URI = %s, want %s", result.Contents[0].URI, todayURI)
	}

	var state daily.State
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &state); err != nil {
		t.Fatalf("Failed to parse resource: %v", err)
	}
	if state.Day != "2024-01-05" || len(state.Habits) != 7 {
		t.Errorf("state day = %s with %d habits", state.Day, len(state.Habits))
	}
}

func TestHandleStatsResource(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()
	server.app.Streaks.Add("No sugar")

	result, err := server.handleStatsResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text := result.Contents[0].Text
	for _, want := range []string{`"summary"`, `"history"`, `"No sugar"`} {
		if !strings.Contains(text, want) {
			t.Errorf("stats resource missing %s", want)
		}
	}
}
