// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio MCP server with a rollover watcher until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and keeps the tracker open, so
a cron watcher (rollover_schedule, default "@every 1m") resets the day
when the date changes. Every tool call also checks for a new day.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "betterself": {
        "command": "betterself",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_today            Today's lists, habits, challenge, TMI, progress
  toggle_item          Tick a morning/night/task item
  add_task             Add a task
  remove_task          Remove a task
  add_habit            Add a habit
  remove_habit         Remove a habit
  bump_habit           Change today's count for a habit
  toggle_habit         Mark a habit done or clear it
  set_habit_goal       Set a habit's per-day goal
  reset_habits         Restore the default habits
  set_daily_challenge  Mark or retitle the daily challenge
  set_tmi              Set today's most important task
  reset_day            Start today over
  add_streak           Start a streak
  relapse_streak       Restart a streak today
  rename_streak        Rename a streak
  delete_streak        Delete a streak
  list_streaks         List streaks with days elapsed
  create_challenge     Create a multi-day challenge
  mark_challenge       Mark today on a challenge
  cancel_challenge     Cancel a challenge
  rename_challenge     Rename a challenge
  delete_challenge     Delete a challenge
  list_challenges      List challenges with progress
  get_journal          Read a journal entry
  set_journal          Write one journal field
  get_stats            Summary cards and trends

AVAILABLE RESOURCES:

  betterself://today   Today's state
  betterself://stats   Summary, history and streaks`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(bs, cfg.GetRolloverSchedule())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
