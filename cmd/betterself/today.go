// ABOUTME: CLI commands for the daily dashboard and manual day reset.
// ABOUTME: today prints every list with progress bars; reset starts the day over.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/daily"
)

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t", "dash"},
	Short:   "Show today's dashboard",
	Long: `Show everything for today: most important task, daily challenge,
morning and night routines, tasks, habits with their counts, and progress.

EXAMPLES:

  betterself today
  betterself t`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printDashboard(cmd.OutOrStdout(), bs.Daily.Snapshot())
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start today over",
	Long: `Clear every checkmark, habit count, the daily challenge's done flag and
today's TMI, exactly as happens automatically at the start of a new day.

Lists, habits, streaks, challenges and the journal are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bs.Daily.ResetDay()
		bs.SnapshotStats()
		warn.Fprintf(cmd.OutOrStdout(), "↺ Reset %s\n", bs.Today())
		return nil
	},
}

func printDashboard(w io.Writer, st daily.State) {
	bold.Fprintf(w, "betterself · %s\n\n", st.Day)

	if st.TMI != "" {
		fmt.Fprintf(w, "TMI        %s\n", st.TMI)
	} else {
		faint.Fprintln(w, "TMI        (not set)")
	}
	fmt.Fprintf(w, "Challenge  %s %s\n\n", checkbox(st.Challenge.Done), st.Challenge.Title)

	printChecklist(w, "Morning  "+bar(st.Progress.Morning), st.Morning)
	fmt.Fprintln(w)
	printChecklist(w, "Night    "+bar(st.Progress.Night), st.Night)
	fmt.Fprintln(w)
	printChecklist(w, "Tasks    "+bar(st.Progress.Tasks), st.Tasks)
	fmt.Fprintln(w)
	printHabits(w, "Habits   "+bar(st.Progress.Habits), st.Habits)
}

func printHabits(w io.Writer, title string, habits []daily.HabitStatus) {
	bold.Fprintln(w, title)
	if len(habits) == 0 {
		faint.Fprintln(w, "  (none)")
		return
	}
	for _, h := range habits {
		fmt.Fprintf(w, "  %s %s %d/%d %s\n",
			checkbox(h.Done), column(h.Title, 28), h.Count, h.Goal(), faint.Sprint(shortID(h.ID)))
	}
}

func init() {
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(resetCmd)
}
