// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports sync now, link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/betterself/internal/app"
	"github.com/harperreed/betterself/internal/kv"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync data across devices",
	Long: `Sync betterself data across devices using Charm Cloud.

Requires the charm backend (--backend charm, or "backend": "charm" in
config.json). Data is E2E encrypted with your SSH key before upload.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     betterself sync link

  2. On other devices, link with the same Charm account:
     betterself sync link

  3. Sync:
     betterself sync

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  repair      Repair database corruption
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Set "sync": true in config.json to push after every write.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bs.Sync(); err != nil {
			if errors.Is(err, app.ErrSyncUnsupported) {
				return fmt.Errorf("%w: the %s backend is local only, use --backend charm", err, cfg.GetBackend())
			}
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("✓ Synced")
		return nil
	},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.
If you already have an account, you'll be prompted to link via charm.sh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")

		// Sync immediately after linking
		if err := bs.Sync(); err != nil {
			color.Yellow("⚠ Initial sync skipped: %v", err)
		} else {
			color.Green("✓ Initial sync complete")
		}

		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local data.
You can link again later with 'betterself sync link'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "unlink")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local data is preserved.")

		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Backend:", cfg.GetBackend())
		fmt.Fprintln(w, "Data dir:", cfg.GetDataDir())

		cb, ok := bs.KV.Backend().(*kv.CharmBackend)
		if !ok {
			faint.Fprintln(w, "\nSync is only available with the charm backend.")
			return nil
		}

		id, err := cb.ID()
		if err != nil {
			warn.Fprintln(w, "Not linked to Charm")
			fmt.Fprintln(w, "\nRun 'betterself sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(w, "Charm ID:", id)
		if cb.IsReadOnly() {
			warn.Fprintln(w, "⚠ Read-only: another process (MCP server?) holds the database")
		}
		fmt.Fprintln(w)

		green.Fprintln(w, "✓ Connected to Charm")
		fmt.Fprintf(w, "  Tasks: %d\n", len(bs.Daily.Tasks()))
		fmt.Fprintf(w, "  Habits: %d\n", len(bs.Daily.Habits()))
		fmt.Fprintf(w, "  Streaks: %d\n", len(bs.Streaks.List()))
		fmt.Fprintf(w, "  Challenges: %d\n", len(bs.Challenges.List()))
		fmt.Fprintf(w, "  Journal days: %d\n", len(bs.Journal.Days()))

		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	Long: `Delete all cloud backups and local Charm data.

This is a DESTRUCTIVE operation. ALL data will be permanently deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will PERMANENTLY DELETE all cloud backups and local betterself data.")
		fmt.Print("Type 'wipe' to confirm: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := charmkv.Wipe(kv.CharmDatabase)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Data wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)

		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair the local Charm database by checkpointing WAL, removing SHM files,
checking integrity, and vacuuming.

Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing betterself database...")
		result, err := charmkv.Repair(kv.CharmDatabase, force)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !force {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		color.Green("\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local data and restore from Charm Cloud.

This is a destructive operation. All local data will be lost and restored from cloud.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cb, ok := bs.KV.Backend().(*kv.CharmBackend)
		if !ok {
			return fmt.Errorf("reset needs the charm backend (current: %s)", cfg.GetBackend())
		}

		fmt.Println("This will DELETE all local betterself data and restore from cloud.")
		fmt.Print("Continue? [y/N]: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Canceled.")
			return nil
		}

		bs.KV.Flush()
		if err := cb.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	rootCmd.AddCommand(syncCmd)
}
