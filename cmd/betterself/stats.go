// ABOUTME: CLI command for statistics: summary cards plus trend charts.
// ABOUTME: Snapshots today's habit completion before printing.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
	Long: `Show today's habit completion, an overall rating out of 5, active
challenges, challenge marks today and the best streak. Below them, a
habit completion trend for the last 12 days and challenge marks for the
last 7 days.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		bs.SnapshotStats()
		s := bs.Summary()

		bold.Fprintf(w, "Stats · %s\n\n", bs.Today())
		fmt.Fprintf(w, "  Habits today       %d%%\n", s.HabitsPercent)
		fmt.Fprintf(w, "  Rating             %.1f / 5\n", s.Rating)
		fmt.Fprintf(w, "  Habits tracked     %d\n", s.TotalHabits)
		fmt.Fprintf(w, "  Active challenges  %d\n", s.ActiveChallenges)
		fmt.Fprintf(w, "  Marked today       %d\n", s.MarksToday)
		fmt.Fprintf(w, "  Best streak        %d days\n\n", s.BestStreakDays)

		bold.Fprintln(w, "Habit completion")
		for day, v := range bs.Stats.Series(stats.TrendDays) {
			fmt.Fprintf(w, "  %s %s\n", faint.Sprint(day[5:]), bar(float64(v)/100))
		}
		fmt.Fprintln(w)

		bold.Fprintln(w, "Challenge marks")
		for day, n := range bs.Stats.ChallengeSeries(stats.ChallengeDays, bs.Challenges.List()) {
			fmt.Fprintf(w, "  %s %s %d\n", faint.Sprint(day[5:]), green.Sprint(strings.Repeat("■", n)), n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
