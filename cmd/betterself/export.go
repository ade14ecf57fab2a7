// ABOUTME: CLI commands for exporting and importing betterself data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/export"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export betterself data",
	Long: `Export betterself data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown report (for sharing or notes)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include history and journal days since this date (markdown only)

EXAMPLES:

  betterself export json                        # Export all data as JSON
  betterself export json -o backup.json         # Save to file
  betterself export yaml                        # Export as YAML
  betterself export markdown --since 2024-01-01 # Journal and history from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		d := export.Collect(bs)

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = export.JSON(d)
		case "yaml":
			data, err = export.YAML(d)
		case "markdown", "md":
			if exportSince != "" && !daykey.Valid(exportSince) {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
			}
			data = []byte(export.Markdown(d, exportSince))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import betterself data from JSON",
	Long: `Import betterself data from a JSON backup file.

Every collection present in the file replaces the stored one: routines,
tasks, habits, today's counts, streaks, challenges, history, TMIs and
journal entries. Collections missing from the file are left alone.

EXAMPLES:

  betterself import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		d, err := export.ParseJSON(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		failed, err := export.Import(bs.KV, d)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if len(failed) > 0 {
			keys := make([]string, 0, len(failed))
			for k := range failed {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				color.Yellow("⚠ %s: %v", k, failed[k])
			}
			return fmt.Errorf("import failed for %d keys", len(failed))
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include days since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
