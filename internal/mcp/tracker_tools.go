// ABOUTME: MCP tools for streak monitors, multi-day challenges, the journal and stats.
// ABOUTME: Streak and challenge outputs carry derived counts alongside the stored record.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/models"
	"github.com/harperreed/betterself/internal/stats"
)

func (s *Server) registerTrackerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_streak",
		Description: "Start a streak monitor counting days since today",
	}, s.handleAddStreak)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "relapse_streak",
		Description: "Restart a streak from today",
	}, s.handleRelapseStreak)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_streak",
		Description: "Rename a streak monitor",
	}, s.handleRenameStreak)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_streak",
		Description: "Delete a streak monitor",
	}, s.handleDeleteStreak)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_streaks",
		Description: "List streak monitors with days elapsed since each last reset",
	}, s.handleListStreaks)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_challenge",
		Description: "Create a multi-day challenge with a target number of days",
	}, s.handleCreateChallenge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "mark_challenge",
		Description: "Mark today on an active challenge",
	}, s.handleMarkChallenge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "cancel_challenge",
		Description: "Deactivate a challenge, keeping its log",
	}, s.handleCancelChallenge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_challenge",
		Description: "Rename a multi-day challenge",
	}, s.handleRenameChallenge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_challenge",
		Description: "Delete a multi-day challenge",
	}, s.handleDeleteChallenge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_challenges",
		Description: "List multi-day challenges with progress",
	}, s.handleListChallenges)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_journal",
		Description: "Get the journal entry for a day (defaults to today)",
	}, s.handleGetJournal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_journal",
		Description: "Set one journal field: tmi, gratitude, affirmation, victories or notes",
	}, s.handleSetJournal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get summary cards plus the habit and challenge trend series",
	}, s.handleGetStats)
}

type nameInput struct {
	Name string `json:"name" jsonschema:"Display name; must not be blank"`
}

type renameInput struct {
	ID   string `json:"id" jsonschema:"ID or ID prefix"`
	Name string `json:"name" jsonschema:"New name; must not be blank"`
}

type streakOutput struct {
	models.StreakMonitor
	Days int `json:"days"`
}

type createChallengeInput struct {
	Name       string `json:"name" jsonschema:"Challenge name"`
	TargetDays int    `json:"target_days" jsonschema:"Number of days to complete the challenge (at least 1)"`
}

type challengeOutput struct {
	models.MultiDayChallenge
	Count     int  `json:"count"`
	Percent   int  `json:"percent"`
	Completed bool `json:"completed"`
}

type dayInput struct {
	Day string `json:"day,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type setJournalInput struct {
	Day   string `json:"day,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	Field string `json:"field" jsonschema:"One of tmi, gratitude, affirmation, victories, notes"`
	Slot  int    `json:"slot,omitempty" jsonschema:"Line 1-3 for gratitude and affirmation"`
	Value string `json:"value" jsonschema:"Text to store; empty clears the field"`
}

type seriesPoint struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}

type statsOutput struct {
	stats.Summary
	HabitTrend     []seriesPoint `json:"habitTrend"`
	ChallengeTrend []seriesPoint `json:"challengeTrend"`
}

func (s *Server) streakView(m models.StreakMonitor) streakOutput {
	return streakOutput{StreakMonitor: m, Days: s.app.Streaks.ElapsedDays(m)}
}

func challengeView(c models.MultiDayChallenge) challengeOutput {
	return challengeOutput{
		MultiDayChallenge: c,
		Count:             c.Count(),
		Percent:           int(c.Progress()*100 + 0.5),
		Completed:         c.Completed(),
	}
}

func (s *Server) handleAddStreak(ctx context.Context, req *mcp.CallToolRequest, input nameInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	m, ok := s.app.Streaks.Add(input.Name)
	if !ok {
		return nil, nil, errors.New("streak name must not be blank")
	}
	return nil, s.streakView(m), nil
}

func (s *Server) handleRelapseStreak(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	id, err := s.app.ResolveStreak(input.ID)
	if err != nil {
		return nil, nil, err
	}
	s.app.Streaks.Relapse(id)
	m, _ := s.app.Streaks.Get(id)
	return nil, s.streakView(m), nil
}

func (s *Server) handleRenameStreak(ctx context.Context, req *mcp.CallToolRequest, input renameInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	id, err := s.app.ResolveStreak(input.ID)
	if err != nil {
		return nil, nil, err
	}
	if !s.app.Streaks.Rename(id, input.Name) {
		return nil, nil, errors.New("streak name must not be blank")
	}
	m, _ := s.app.Streaks.Get(id)
	return nil, s.streakView(m), nil
}

func (s *Server) handleDeleteStreak(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.begin()
	id, err := s.app.ResolveStreak(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	s.app.Streaks.Delete(id)
	return nil, simpleOutput{Message: "Deleted streak " + id}, nil
}

func (s *Server) handleListStreaks(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	list := s.app.Streaks.List()
	if len(list) == 0 {
		return nil, map[string]any{"message": "No streaks yet."}, nil
	}
	out := make([]streakOutput, len(list))
	for i, m := range list {
		out[i] = s.streakView(m)
	}
	return nil, out, nil
}

func (s *Server) handleCreateChallenge(ctx context.Context, req *mcp.CallToolRequest, input createChallengeInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	c, ok := s.app.Challenges.Create(input.Name, input.TargetDays)
	if !ok {
		return nil, nil, errors.New("challenge needs a name and a target of at least 1 day")
	}
	return nil, challengeView(c), nil
}

func (s *Server) handleMarkChallenge(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	id, err := s.app.ResolveChallenge(input.ID)
	if err != nil {
		return nil, nil, err
	}
	if !s.app.Challenges.MarkToday(id) {
		return nil, nil, fmt.Errorf("challenge %s is not active", id)
	}
	c, _ := s.app.Challenges.Get(id)
	return nil, challengeView(c), nil
}

func (s *Server) handleCancelChallenge(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	id, err := s.app.ResolveChallenge(input.ID)
	if err != nil {
		return nil, nil, err
	}
	s.app.Challenges.Cancel(id)
	c, _ := s.app.Challenges.Get(id)
	return nil, challengeView(c), nil
}

func (s *Server) handleRenameChallenge(ctx context.Context, req *mcp.CallToolRequest, input renameInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	id, err := s.app.ResolveChallenge(input.ID)
	if err != nil {
		return nil, nil, err
	}
	if !s.app.Challenges.Rename(id, input.Name) {
		return nil, nil, errors.New("challenge name must not be blank")
	}
	c, _ := s.app.Challenges.Get(id)
	return nil, challengeView(c), nil
}

func (s *Server) handleDeleteChallenge(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.begin()
	id, err := s.app.ResolveChallenge(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	s.app.Challenges.Delete(id)
	return nil, simpleOutput{Message: "Deleted challenge " + id}, nil
}

func (s *Server) handleListChallenges(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	list := s.app.Challenges.List()
	if len(list) == 0 {
		return nil, map[string]any{"message": "No challenges yet."}, nil
	}
	out := make([]challengeOutput, len(list))
	for i, c := range list {
		out[i] = challengeView(c)
	}
	return nil, out, nil
}

func (s *Server) journalDay(day string) (string, error) {
	if day == "" {
		return s.app.Today(), nil
	}
	if !daykey.Valid(day) {
		return "", fmt.Errorf("invalid day %q (want YYYY-MM-DD)", day)
	}
	return day, nil
}

func (s *Server) handleGetJournal(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	day, err := s.journalDay(input.Day)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"day": day, "entry": s.app.Journal.Get(day)}, nil
}

func (s *Server) handleSetJournal(ctx context.Context, req *mcp.CallToolRequest, input setJournalInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	day, err := s.journalDay(input.Day)
	if err != nil {
		return nil, nil, err
	}
	e, ok := s.app.Journal.Set(day, input.Field, input.Slot, input.Value)
	if !ok {
		return nil, nil, fmt.Errorf("cannot set journal field %q slot %d", input.Field, input.Slot)
	}
	return nil, map[string]any{"day": day, "entry": e}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	s.app.SnapshotStats()
	out := statsOutput{Summary: s.app.Summary()}
	for day, v := range s.app.Stats.Series(stats.TrendDays) {
		out.HabitTrend = append(out.HabitTrend, seriesPoint{Day: day, Value: v})
	}
	for day, v := range s.app.Stats.ChallengeSeries(stats.ChallengeDays, s.app.Challenges.List()) {
		out.ChallengeTrend = append(out.ChallengeTrend, seriesPoint{Day: day, Value: v})
	}
	return nil, out, nil
}
