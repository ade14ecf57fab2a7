// ABOUTME: Output helpers shared by the CLI commands.
// ABOUTME: Checkboxes, progress bars and fixed-width columns.
package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/harperreed/betterself/internal/models"
)

var (
	faint = color.New(color.Faint)
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	warn  = color.New(color.FgYellow)
)

func checkbox(done bool) string {
	if done {
		return green.Sprint("[x]")
	}
	return "[ ]"
}

// bar renders a 0..1 fraction as a 10-cell bar with a percentage.
func bar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*10 + 0.5)
	return fmt.Sprintf("%s%s %3d%%",
		green.Sprint(strings.Repeat("#", filled)),
		faint.Sprint(strings.Repeat(".", 10-filled)),
		int(fraction*100+0.5))
}

func printChecklist(w io.Writer, title string, items []models.ChecklistItem) {
	bold.Fprintln(w, title)
	if len(items) == 0 {
		faint.Fprintln(w, "  (empty)")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "  %s %s %s\n", checkbox(it.Done), column(it.Title, 32), faint.Sprint(shortID(it.ID)))
	}
}

// shortID trims generated ids to a prefix that is almost always unique.
func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

// column fits s into a fixed-width list column.
func column(s string, width int) string {
	return padRight(truncate(s, width), width)
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
