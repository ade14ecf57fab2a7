// ABOUTME: CLI commands for multi-day challenges.
// ABOUTME: Each active challenge can be marked once per day until cancelled.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/models"
)

var challengeCmd = &cobra.Command{
	Use:     "challenge",
	Aliases: []string{"c"},
	Short:   "Multi-day challenges",
	Long: `Create challenges with a target number of days and mark each day you
do them. Cancelled challenges keep their log.

EXAMPLES:

  betterself challenge add "Run 5k" 30
  betterself challenge mark c_41d0
  betterself challenge list
  betterself challenge cancel c_41d0`,
}

var challengeAddCmd = &cobra.Command{
	Use:   "add <name> <target-days>",
	Short: "Create a challenge",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return fmt.Errorf("invalid target days %q: %w", args[len(args)-1], err)
		}
		c, ok := bs.Challenges.Create(joinArgs(args[:len(args)-1]), target)
		if !ok {
			return errors.New("challenge needs a name and a target of at least 1 day")
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Created %s (%d days) ", c.Name, c.TargetDays)
		faint.Fprintf(cmd.OutOrStdout(), "(%s)\n", shortID(c.ID))
		return nil
	},
}

var challengeMarkCmd = &cobra.Command{
	Use:   "mark <id>",
	Short: "Mark today on a challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveChallenge(args[0])
		if err != nil {
			return err
		}
		c, _ := bs.Challenges.Get(id)
		if !c.Active {
			return fmt.Errorf("challenge %s is cancelled", c.Name)
		}
		if !bs.Challenges.MarkToday(id) {
			faint.Fprintf(cmd.OutOrStdout(), "%s already marked today\n", c.Name)
			return nil
		}
		c, _ = bs.Challenges.Get(id)
		printChallengeLine(cmd, c)
		return nil
	},
}

var challengeCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Stop a challenge, keeping its log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveChallenge(args[0])
		if err != nil {
			return err
		}
		bs.Challenges.Cancel(id)
		c, _ := bs.Challenges.Get(id)
		warn.Fprintf(cmd.OutOrStdout(), "■ Cancelled %s\n", c.Name)
		return nil
	},
}

var challengeRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a challenge",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveChallenge(args[0])
		if err != nil {
			return err
		}
		if !bs.Challenges.Rename(id, joinArgs(args[1:])) {
			return errors.New("challenge name must not be blank")
		}
		c, _ := bs.Challenges.Get(id)
		green.Fprintf(cmd.OutOrStdout(), "✓ Renamed to %s\n", c.Name)
		return nil
	},
}

var challengeRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a challenge and its log",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bs.ResolveChallenge(args[0])
		if err != nil {
			return err
		}
		c, _ := bs.Challenges.Get(id)
		bs.Challenges.Delete(id)
		warn.Fprintf(cmd.OutOrStdout(), "✗ Deleted challenge %s\n", c.Name)
		return nil
	},
}

var challengeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List challenges",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := bs.Challenges.List()
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No challenges yet.")
			return nil
		}
		for _, c := range list {
			printChallengeLine(cmd, c)
		}
		return nil
	},
}

func printChallengeLine(cmd *cobra.Command, c models.MultiDayChallenge) {
	status := "active"
	switch {
	case c.Completed():
		status = green.Sprint("completed")
	case !c.Active:
		status = faint.Sprint("cancelled")
	}
	today := checkbox(c.MarkedOn(bs.Today()))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %d/%d %s\n",
		today, faint.Sprint(shortID(c.ID)), column(c.Name, 24), bar(c.Progress()), c.Count(), c.TargetDays, status)
}

func init() {
	challengeCmd.AddCommand(challengeAddCmd, challengeMarkCmd, challengeCancelCmd, challengeRenameCmd, challengeRmCmd, challengeListCmd)
	rootCmd.AddCommand(challengeCmd)
}
