// ABOUTME: CLI commands for habits and their per-day counts.
// ABOUTME: bump and goal take integers; counts are clamped to 0..goal.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"h"},
	Short:   "Daily habits",
	Long: `Manage habits. Each habit has a per-day goal (1-24) and a count for today.
A habit is done when its count reaches the goal.

EXAMPLES:

  betterself habit list
  betterself habit add "Stretch"
  betterself habit bump h-water          # +1
  betterself habit bump h-water -- -1    # undo one
  betterself habit goal h-water 3        # three times a day
  betterself habit toggle h-read         # jump to done, or clear
  betterself habit defaults              # restore the starter habits`,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with today's counts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printHabits(cmd.OutOrStdout(), "Habits   "+bar(bs.Daily.Progress().Habits), bs.Daily.HabitStatuses())
		return nil
	},
}

var habitAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, ok := bs.Daily.AddHabit(joinArgs(args))
		if !ok {
			return errors.New("habit title must not be blank")
		}
		bs.SnapshotStats()
		green.Fprintf(cmd.OutOrStdout(), "✓ Added habit %s ", h.Title)
		faint.Fprintf(cmd.OutOrStdout(), "(%s)\n", shortID(h.ID))
		return nil
	},
}

var habitRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Remove a habit",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveHabit(args[0])
		if err != nil {
			return err
		}
		h, _ := bs.Daily.Habit(id)
		bs.Daily.RemoveHabit(id)
		bs.SnapshotStats()
		warn.Fprintf(cmd.OutOrStdout(), "✗ Removed habit %s\n", h.Title)
		return nil
	},
}

var habitBumpCmd = &cobra.Command{
	Use:   "bump <id> [delta]",
	Short: "Add to today's count (default +1)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveHabit(args[0])
		if err != nil {
			return err
		}
		delta := 1
		if len(args) == 2 {
			delta, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}
		}
		bs.Daily.BumpHabitCount(id, delta)
		bs.SnapshotStats()
		printHabitLine(cmd, id)
		return nil
	},
}

var habitGoalCmd = &cobra.Command{
	Use:   "goal <id> <per-day>",
	Short: "Set how many times per day (1-24)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveHabit(args[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid goal %q: %w", args[1], err)
		}
		bs.Daily.SetHabitPerDay(id, n)
		bs.SnapshotStats()
		printHabitLine(cmd, id)
		return nil
	},
}

var habitToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark done for today, or clear if already done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveHabit(args[0])
		if err != nil {
			return err
		}
		bs.Daily.ToggleHabitToday(id)
		bs.SnapshotStats()
		printHabitLine(cmd, id)
		return nil
	},
}

var habitDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Replace all habits with the starter set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bs.Daily.ResetHabitsToDefault()
		bs.SnapshotStats()
		warn.Fprintf(cmd.OutOrStdout(), "↺ Restored %d default habits\n", len(bs.Daily.Habits()))
		return nil
	},
}

func printHabitLine(cmd *cobra.Command, id string) {
	h, ok := bs.Daily.Habit(id)
	if !ok {
		return
	}
	count := bs.Daily.HabitCount(id)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d/%d\n", checkbox(count >= h.Goal()), h.Title, count, h.Goal())
}

func init() {
	habitCmd.AddCommand(habitListCmd, habitAddCmd, habitRmCmd, habitBumpCmd, habitGoalCmd, habitToggleCmd, habitDefaultsCmd)
	rootCmd.AddCommand(habitCmd)
}
