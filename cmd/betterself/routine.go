// ABOUTME: CLI commands for the morning/night routines and today's tasks.
// ABOUTME: Items are addressed by id or unique id prefix.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/app"
	"github.com/harperreed/betterself/internal/daily"
	"github.com/harperreed/betterself/internal/models"
)

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r"},
	Short:   "Morning and night routines",
	Long: `Show and tick the morning and night routine checklists.

EXAMPLES:

  betterself routine list
  betterself routine toggle m-bed
  betterself routine toggle n-teeth
  betterself routine toggle n-te --night   # only search the night list`,
}

var routineNight bool

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show both routines",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		p := bs.Daily.Progress()
		printChecklist(w, "Morning  "+bar(p.Morning), bs.Daily.MorningRoutine())
		fmt.Fprintln(w)
		printChecklist(w, "Night    "+bar(p.Night), bs.Daily.NightRoutine())
		return nil
	},
}

var routineToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Tick or untick a routine item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if routineNight {
			return toggleItem(cmd, daily.ListNight, args[0])
		}
		// Morning first, then night, so "n-teeth" works without --night.
		if _, err := bs.ResolveItem(daily.ListMorning, args[0]); errors.Is(err, app.ErrNotFound) {
			return toggleItem(cmd, daily.ListNight, args[0])
		}
		return toggleItem(cmd, daily.ListMorning, args[0])
	},
}

func toggleItem(cmd *cobra.Command, list daily.ListID, input string) error {
	id, err := bs.ResolveItem(list, input)
	if err != nil {
		return err
	}
	bs.Daily.ToggleChecklistItem(list, id)
	for _, it := range bs.Daily.List(list) {
		if it.ID == id {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", checkbox(it.Done), it.Title)
		}
	}
	return nil
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Today's tasks",
	Long: `Manage today's task list. New tasks go on top.
Task checkmarks clear at the start of a new day; the tasks stay.

EXAMPLES:

  betterself task add "Pay rent"
  betterself task done t_1b4e
  betterself task rm t_1b4e
  betterself task list`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, ok := bs.Daily.AddTask(joinArgs(args))
		if !ok {
			return errors.New("task title must not be blank")
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Added task %s ", item.Title)
		faint.Fprintf(cmd.OutOrStdout(), "(%s)\n", shortID(item.ID))
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle"},
	Short:   "Tick or untick a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleItem(cmd, daily.ListTasks, args[0])
	},
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Remove a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveItem(daily.ListTasks, args[0])
		if err != nil {
			return err
		}
		title := findTitle(bs.Daily.Tasks(), id)
		bs.Daily.RemoveTask(id)
		warn.Fprintf(cmd.OutOrStdout(), "✗ Removed task %s\n", title)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printChecklist(cmd.OutOrStdout(), "Tasks    "+bar(bs.Daily.Progress().Tasks), bs.Daily.Tasks())
		return nil
	},
}

func findTitle(items []models.ChecklistItem, id string) string {
	for _, it := range items {
		if it.ID == id {
			return it.Title
		}
	}
	return id
}

func init() {
	routineToggleCmd.Flags().BoolVarP(&routineNight, "night", "n", false, "toggle an item on the night routine")
	routineCmd.AddCommand(routineListCmd, routineToggleCmd)
	taskCmd.AddCommand(taskAddCmd, taskDoneCmd, taskRmCmd, taskListCmd)
	rootCmd.AddCommand(routineCmd)
	rootCmd.AddCommand(taskCmd)
}
