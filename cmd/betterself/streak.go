// ABOUTME: CLI commands for streak monitors.
// ABOUTME: A streak counts whole days since its last reset; relapse restarts it today.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:     "streak",
	Aliases: []string{"s"},
	Short:   "Days-since counters",
	Long: `Track how long it has been since you last gave in to something.

EXAMPLES:

  betterself streak add "No sugar"
  betterself streak list
  betterself streak relapse s_9f2c       # back to 0 days
  betterself streak rename s_9f2c "No candy"
  betterself streak rm s_9f2c`,
}

var streakAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Start a streak today",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, ok := bs.Streaks.Add(joinArgs(args))
		if !ok {
			return errors.New("streak name must not be blank")
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Started %s ", m.Name)
		faint.Fprintf(cmd.OutOrStdout(), "(%s)\n", shortID(m.ID))
		return nil
	},
}

var streakRelapseCmd = &cobra.Command{
	Use:   "relapse <id>",
	Short: "Restart a streak from today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveStreak(args[0])
		if err != nil {
			return err
		}
		before, _ := bs.Streaks.Get(id)
		days := bs.Streaks.ElapsedDays(before)
		if !bs.Streaks.Relapse(id) {
			faint.Fprintf(cmd.OutOrStdout(), "%s already restarted today\n", before.Name)
			return nil
		}
		warn.Fprintf(cmd.OutOrStdout(), "↺ %s back to 0 days (was %d)\n", before.Name, days)
		return nil
	},
}

var streakRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a streak",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveStreak(args[0])
		if err != nil {
			return err
		}
		if !bs.Streaks.Rename(id, joinArgs(args[1:])) {
			return errors.New("streak name must not be blank")
		}
		m, _ := bs.Streaks.Get(id)
		green.Fprintf(cmd.OutOrStdout(), "✓ Renamed to %s\n", m.Name)
		return nil
	},
}

var streakRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a streak",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveStreak(args[0])
		if err != nil {
			return err
		}
		m, _ := bs.Streaks.Get(id)
		bs.Streaks.Delete(id)
		warn.Fprintf(cmd.OutOrStdout(), "✗ Deleted streak %s\n", m.Name)
		return nil
	},
}

var streakListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List streaks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		list := bs.Streaks.List()
		if len(list) == 0 {
			fmt.Fprintln(w, "No streaks yet.")
			return nil
		}
		for _, m := range list {
			fmt.Fprintf(w, "%s %s %s %s\n",
				faint.Sprint(shortID(m.ID)),
				column(m.Name, 28),
				bold.Sprintf("%4d days", bs.Streaks.ElapsedDays(m)),
				faint.Sprint("since "+m.LastResetISO))
		}
		return nil
	},
}

func init() {
	streakCmd.AddCommand(streakAddCmd, streakRelapseCmd, streakRenameCmd, streakRmCmd, streakListCmd)
	rootCmd.AddCommand(streakCmd)
}
