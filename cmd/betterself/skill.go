// ABOUTME: Install the betterself skill for AI coding assistants.
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/.
package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install the betterself skill",
	Long: `Install the betterself skill definition.

This copies SKILL.md to ~/.claude/skills/betterself/
so your assistant can run betterself commands contextually.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd.OutOrStdout(), cmd.InOrStdin(), home)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "betterself", "SKILL.md")
}

func installSkill(w io.Writer, in io.Reader, home string) error {
	path := skillPath(home)
	skillDir := filepath.Dir(path)

	fmt.Fprintln(w, "This will install the betterself skill, enabling your assistant to:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  • Tick off routines and tasks")
	fmt.Fprintln(w, "  • Log habits and check streaks")
	fmt.Fprintln(w, "  • Write in your journal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Destination:")
	fmt.Fprintf(w, "  %s\n", path)
	fmt.Fprintln(w)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintln(w, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(w)
	}

	if !skillSkipConfirm {
		fmt.Fprint(w, "Install the betterself skill? [y/N] ")
		response, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(w, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(w)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	green.Fprintln(w, "✓ Installed betterself skill successfully!")
	return nil
}
