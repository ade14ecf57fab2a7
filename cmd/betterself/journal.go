// ABOUTME: CLI commands for the per-day journal.
// ABOUTME: show prints an entry; set writes one field or numbered line.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/journal"
	"github.com/harperreed/betterself/internal/models"
)

var (
	journalDay  string
	journalList bool
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Daily journal",
	Long: `Keep a short journal for each day: a TMI line, three gratitudes,
three affirmations, victories and notes.

FIELDS:

  tmi, victories, notes      free text
  gratitude N, affirmation N line N of 3

EXAMPLES:

  betterself journal show
  betterself journal show --day 2024-01-05
  betterself journal show --list            # days with entries
  betterself journal set gratitude 1 "Coffee with Sam"
  betterself journal set notes "Long walk" --day 2024-01-05`,
}

var journalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a journal entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if journalList {
			days := bs.Journal.Days()
			if len(days) == 0 {
				fmt.Fprintln(w, "No journal entries yet.")
			}
			for _, d := range days {
				fmt.Fprintln(w, d)
			}
			return nil
		}
		day, err := resolveDay(journalDay)
		if err != nil {
			return err
		}
		printJournal(cmd, day, bs.Journal.Get(day))
		return nil
	},
}

var journalSetCmd = &cobra.Command{
	Use:   "set <field> [slot] <text>",
	Short: "Set one journal field",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := resolveDay(journalDay)
		if err != nil {
			return err
		}
		field, rest := strings.ToLower(args[0]), args[1:]
		slot := 0
		if field == journal.FieldGratitude || field == journal.FieldAffirmation {
			if len(rest) == 0 {
				return fmt.Errorf("%s needs a line number 1-3", field)
			}
			slot, err = strconv.Atoi(rest[0])
			if err != nil {
				return fmt.Errorf("invalid line number %q: %w", rest[0], err)
			}
			rest = rest[1:]
		}
		if _, ok := bs.Journal.Set(day, field, slot, joinArgs(rest)); !ok {
			return fmt.Errorf("cannot set %s (line %d) for %s", field, slot, day)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Saved %s for %s\n", field, day)
		return nil
	},
}

func resolveDay(day string) (string, error) {
	if day == "" {
		return bs.Today(), nil
	}
	if !daykey.Valid(day) {
		return "", fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", day)
	}
	return day, nil
}

func printJournal(cmd *cobra.Command, day string, e models.JournalEntry) {
	w := cmd.OutOrStdout()
	bold.Fprintf(w, "Journal · %s\n", day)
	if e.IsEmpty() {
		faint.Fprintln(w, "  (empty)")
		return
	}
	line := func(label, text string) {
		if text != "" {
			fmt.Fprintf(w, "  %s %s\n", faint.Sprint(padRight(label, 12)), text)
		}
	}
	line("TMI", e.TMI)
	for i, g := range e.Gratitude {
		line(fmt.Sprintf("Gratitude %d", i+1), g)
	}
	for i, a := range e.Affirmations {
		line(fmt.Sprintf("Affirm %d", i+1), a)
	}
	line("Victories", e.Victories)
	line("Notes", e.Notes)
}

func init() {
	journalCmd.PersistentFlags().StringVar(&journalDay, "day", "", "day to read or write (YYYY-MM-DD, default today)")
	journalShowCmd.Flags().BoolVar(&journalList, "list", false, "list days that have entries")
	journalCmd.AddCommand(journalShowCmd, journalSetCmd)
	rootCmd.AddCommand(journalCmd)
}
