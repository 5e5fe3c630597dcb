package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"helowrite.dev/helowrite/internal/config"
)

// newDailyCmd creates the daily command
func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Open today's daily note in the Obsidian vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := config.NewStore()
			vault := store.ObsidianVaultPath()
			if vault == "" {
				return fmt.Errorf("no Obsidian vault configured; run 'helowrite config set obsidian_vault_path <dir>' first")
			}

			path, err := ensureDailyNote(vault, time.Now())
			if err != nil {
				return err
			}

			return openEditor(store, path)
		},
	}
}

// ensureDailyNote returns the path of the daily note for the given day,
// creating it with a date heading when it does not exist yet.
func ensureDailyNote(vault string, now time.Time) (string, error) {
	day := now.Format("2006-01-02")
	path := filepath.Join(vault, day+".md")

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check daily note: %w", err)
	}

	heading := fmt.Sprintf("# %s\n\n", day)
	if err := os.WriteFile(path, []byte(heading), 0o644); err != nil {
		return "", fmt.Errorf("failed to create daily note: %w", err)
	}
	return path, nil
}
