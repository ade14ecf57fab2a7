// ABOUTME: Root Cobra command for the betterself CLI.
// ABOUTME: Opens and loads the App in PersistentPreRunE and flushes it in PersistentPostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/app"
	"github.com/harperreed/betterself/internal/config"
	"github.com/harperreed/betterself/internal/logger"
)

var (
	cfg *config.Config
	bs  *app.App

	flagBackend string
	flagDataDir string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "betterself",
	Short: "Daily routines, habits, streaks and challenges",
	Long: `betterself tracks the small things you do every day.

WHAT IT TRACKS:

  Routines     a morning and a night checklist
  Tasks        today's to-dos and one most important task (TMI)
  Habits       daily habits with a per-day goal (e.g. water x2)
  Daily        one challenge per day, picked fresh each morning
  Streaks      days since you last slipped on something
  Challenges   multi-day challenges you mark once per day
  Journal      gratitude, affirmations, victories and notes per day

Checkmarks, habit counts and the TMI reset at the start of every new day.

QUICK START:

  $ betterself today                  # Dashboard for today
  $ betterself routine toggle m-bed   # Tick a morning routine item
  $ betterself habit bump h-water     # Log one glass of water
  $ betterself tmi "Ship the report"  # Set today's most important task
  $ betterself streak add "No sugar"  # Start counting days
  $ betterself challenge add "Run" 30 # A 30-day challenge

IDs can be shortened to any unique prefix.

STORAGE:

  Data lives in ~/.local/share/betterself (sqlite by default).
  Use --backend badger|charm|memory or set "backend" in
  ~/.config/betterself/config.json. The charm backend syncs across
  devices with 'betterself sync'. Badger admits one process at a
  time, so keep sqlite if the CLI should work while 'betterself mcp'
  is running.

MCP INTEGRATION:

  Run 'betterself mcp' to serve the tracker to MCP clients:

  {
    "mcpServers": {
      "betterself": { "command": "betterself", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsApp(cmd) {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagBackend != "" {
			cfg.Backend = flagBackend
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}

		if err := logger.Init(logger.Config{Debug: flagDebug, DataDir: cfg.GetDataDir()}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		bs, err = app.Open(cfg)
		if err != nil {
			return err
		}
		if err := bs.Load(); err != nil {
			_ = bs.Close()
			bs = nil
			return fmt.Errorf("failed to load state: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if bs == nil {
			return nil
		}
		err := bs.Close()
		bs = nil
		return err
	},
}

// needsApp reports whether cmd touches stored data.
func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion", "install-skill", "unlink", "repair", "wipe":
		return false
	}
	return cmd.Runnable()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, badger, charm or memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/betterself)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log debug output to stderr")
}
