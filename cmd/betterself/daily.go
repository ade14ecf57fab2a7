// ABOUTME: CLI commands for the daily challenge and today's most important task.
// ABOUTME: The challenge title rotates each day unless set by hand.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Today's rotating challenge",
	Long: `Each day picks one challenge from a fixed pool. Mark it done, undo it,
or replace its title for today.

EXAMPLES:

  betterself daily show
  betterself daily done
  betterself daily title "Call a friend"`,
}

var dailyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's challenge",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printChallenge(cmd)
		return nil
	},
}

var dailyDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "Mark today's challenge done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bs.Daily.SetChallengeDone(true)
		printChallenge(cmd)
		return nil
	},
}

var dailyUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Mark today's challenge not done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bs.Daily.SetChallengeDone(false)
		printChallenge(cmd)
		return nil
	},
}

var dailyTitleCmd = &cobra.Command{
	Use:   "title <text>",
	Short: "Replace today's challenge title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !bs.Daily.SetChallengeTitle(joinArgs(args)) {
			return errors.New("challenge title must not be blank")
		}
		printChallenge(cmd)
		return nil
	},
}

func printChallenge(cmd *cobra.Command) {
	c := bs.Daily.Challenge()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", checkbox(c.Done), c.Title)
}

var tmiClear bool

var tmiCmd = &cobra.Command{
	Use:   "tmi [text]",
	Short: "Show or set today's most important task",
	Long: `Show or set today's most important task. It is kept per day and
is not carried over to tomorrow.

EXAMPLES:

  betterself tmi                      # show
  betterself tmi "Finish the deck"    # set
  betterself tmi --clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch {
		case tmiClear:
			bs.Daily.SetTMI("")
			warn.Fprintln(w, "✗ Cleared today's TMI")
		case len(args) > 0:
			bs.Daily.SetTMI(joinArgs(args))
			green.Fprintf(w, "✓ TMI: %s\n", bs.Daily.TMI())
		case bs.Daily.TMI() == "":
			faint.Fprintln(w, "No TMI set for today.")
		default:
			fmt.Fprintln(w, bs.Daily.TMI())
		}
		return nil
	},
}

func init() {
	tmiCmd.Flags().BoolVar(&tmiClear, "clear", false, "clear today's TMI")
	dailyCmd.AddCommand(dailyShowCmd, dailyDoneCmd, dailyUndoCmd, dailyTitleCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(tmiCmd)
}
