// ABOUTME: MCP tools for today's checklists, habits, daily challenge and TMI.
// ABOUTME: Every handler resolves short ids and reports no-ops as errors.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/betterself/internal/daily"
	"github.com/harperreed/betterself/internal/models"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_today",
		Description: "Get today's routines, tasks, habits, daily challenge, TMI and progress",
	}, s.handleGetToday)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_item",
		Description: "Toggle a morning, night or task checklist item",
	}, s.handleToggleItem)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a task for today",
	}, s.handleAddTask)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_task",
		Description: "Remove a task by ID or ID prefix",
	}, s.handleRemoveTask)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Add a habit with a daily goal of 1",
	}, s.handleAddHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_habit",
		Description: "Remove a habit and today's count for it",
	}, s.handleRemoveHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "bump_habit",
		Description: "Change today's count for a habit by delta, clamped to 0..goal",
	}, s.handleBumpHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_habit",
		Description: "Mark a habit fully done today, or clear it if already done",
	}, s.handleToggleHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_habit_goal",
		Description: "Set how many times per day a habit should be done (1-24)",
	}, s.handleSetHabitGoal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_habits",
		Description: "Replace the habit list with the default habits",
	}, s.handleResetHabits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_daily_challenge",
		Description: "Set the daily challenge's done flag and optionally its title",
	}, s.handleSetDailyChallenge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_tmi",
		Description: "Set today's most important task; empty text clears it",
	}, s.handleSetTMI)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_day",
		Description: "Start today over: clear all checkmarks, counts and TMI",
	}, s.handleResetDay)
}

// Tool input/output types

type emptyInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

type toggleItemInput struct {
	List string `json:"list" jsonschema:"Checklist: morning, night or tasks"`
	ID   string `json:"id" jsonschema:"Item ID or prefix"`
}

type titleInput struct {
	Title string `json:"title" jsonschema:"Title, trimmed; must not be blank"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"ID or ID prefix"`
}

type bumpHabitInput struct {
	ID    string `json:"id" jsonschema:"Habit ID or prefix"`
	Delta int    `json:"delta,omitempty" jsonschema:"Amount to add to today's count (default 1, may be negative)"`
}

type setHabitGoalInput struct {
	ID     string `json:"id" jsonschema:"Habit ID or prefix"`
	PerDay int    `json:"per_day" jsonschema:"Times per day, clamped to 1-24"`
}

type habitOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Count   int    `json:"count"`
	Goal    int    `json:"goal"`
	Message string `json:"message"`
}

type setDailyChallengeInput struct {
	Done  bool   `json:"done" jsonschema:"Whether the daily challenge is done"`
	Title string `json:"title,omitempty" jsonschema:"New title for today's challenge"`
}

type setTMIInput struct {
	Text string `json:"text" jsonschema:"Most important task for today"`
}

// Tool handlers

func (s *Server) handleGetToday(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.begin()
	return nil, s.app.Daily.Snapshot(), nil
}

func (s *Server) handleToggleItem(ctx context.Context, req *mcp.CallToolRequest, input toggleItemInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.begin()
	list, ok := daily.ParseListID(input.List)
	if !ok {
		return nil, simpleOutput{}, fmt.Errorf("unknown list: %q (want morning, night or tasks)", input.List)
	}
	id, err := s.app.ResolveItem(list, input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	s.app.Daily.ToggleChecklistItem(list, id)
	for _, it := range s.app.Daily.List(list) {
		if it.ID == id {
			return nil, simpleOutput{Message: fmt.Sprintf("%s: %s", it.Title, doneWord(it.Done))}, nil
		}
	}
	return nil, simpleOutput{Message: "Toggled " + id}, nil
}

func (s *Server) handleAddTask(ctx context.Context, req *mcp.CallToolRequest, input titleInput) (*mcp.CallToolResult, models.ChecklistItem, error) {
	s.begin()
	item, ok := s.app.Daily.AddTask(input.Title)
	if !ok {
		return nil, models.ChecklistItem{}, errors.New("task title must not be blank")
	}
	return nil, item, nil
}

func (s *Server) handleRemoveTask(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.begin()
	id, err := s.app.ResolveItem(daily.ListTasks, input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	s.app.Daily.RemoveTask(id)
	return nil, simpleOutput{Message: "Removed task " + id}, nil
}

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input titleInput) (*mcp.CallToolResult, habitOutput, error) {
	s.begin()
	h, ok := s.app.Daily.AddHabit(input.Title)
	if !ok {
		return nil, habitOutput{}, errors.New("habit title must not be blank")
	}
	s.app.SnapshotStats()
	return nil, s.habitResult(h.ID, "Added habit "+h.Title), nil
}

func (s *Server) handleRemoveHabit(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.begin()
	id, err := s.app.ResolveHabit(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	s.app.Daily.RemoveHabit(id)
	s.app.SnapshotStats()
	return nil, simpleOutput{Message: "Removed habit " + id}, nil
}

func (s *Server) handleBumpHabit(ctx context.Context, req *mcp.CallToolRequest, input bumpHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	s.begin()
	id, err := s.app.ResolveHabit(input.ID)
	if err != nil {
		return nil, habitOutput{}, err
	}
	delta := input.Delta
	if delta == 0 {
		delta = 1
	}
	s.app.Daily.BumpHabitCount(id, delta)
	s.app.SnapshotStats()
	return nil, s.habitResult(id, ""), nil
}

func (s *Server) handleToggleHabit(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, habitOutput, error) {
	s.begin()
	id, err := s.app.ResolveHabit(input.ID)
	if err != nil {
		return nil, habitOutput{}, err
	}
	s.app.Daily.ToggleHabitToday(id)
	s.app.SnapshotStats()
	return nil, s.habitResult(id, ""), nil
}

func (s *Server) handleSetHabitGoal(ctx context.Context, req *mcp.CallToolRequest, input setHabitGoalInput) (*mcp.CallToolResult, habitOutput, error) {
	s.begin()
	id, err := s.app.ResolveHabit(input.ID)
	if err != nil {
		return nil, habitOutput{}, err
	}
	s.app.Daily.SetHabitPerDay(id, input.PerDay)
	s.app.SnapshotStats()
	return nil, s.habitResult(id, ""), nil
}

func (s *Server) handleResetHabits(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.begin()
	s.app.Daily.ResetHabitsToDefault()
	s.app.SnapshotStats()
	return nil, simpleOutput{Message: fmt.Sprintf("Restored %d default habits", len(s.app.Daily.Habits()))}, nil
}

func (s *Server) handleSetDailyChallenge(ctx context.Context, req *mcp.CallToolRequest, input setDailyChallengeInput) (*mcp.CallToolResult, models.Challenge, error) {
	s.begin()
	if input.Title != "" && !s.app.Daily.SetChallengeTitle(input.Title) {
		return nil, models.Challenge{}, errors.New("challenge title must not be blank")
	}
	s.app.Daily.SetChallengeDone(input.Done)
	return nil, s.app.Daily.Challenge(), nil
}

func (s *Server) handleSetTMI(ctx context.Context, req *mcp.CallToolRequest, input setTMIInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.begin()
	s.app.Daily.SetTMI(input.Text)
	if s.app.Daily.TMI() == "" {
		return nil, simpleOutput{Message: "Cleared today's TMI"}, nil
	}
	return nil, simpleOutput{Message: "TMI: " + s.app.Daily.TMI()}, nil
}

func (s *Server) handleResetDay(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.begin()
	s.app.Daily.ResetDay()
	s.app.SnapshotStats()
	return nil, simpleOutput{Message: "Reset " + s.app.Today()}, nil
}

func (s *Server) habitResult(id, message string) habitOutput {
	h, _ := s.app.Daily.Habit(id)
	out := habitOutput{
		ID:    h.ID,
		Title: h.Title,
		Count: s.app.Daily.HabitCount(id),
		Goal:  h.Goal(),
	}
	out.Message = message
	if out.Message == "" {
		out.Message = fmt.Sprintf("%s: %d/%d", h.Title, out.Count, out.Goal)
	}
	return out
}

func doneWord(done bool) string {
	if done {
		return "done"
	}
	return "not done"
}
