// Package cli wires the cobra command surface for the editor.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"helowrite.dev/helowrite/internal/config"
	helowriteerrors "helowrite.dev/helowrite/internal/errors"
	"helowrite.dev/helowrite/internal/gitsync"
	"helowrite.dev/helowrite/internal/output"
	"helowrite.dev/helowrite/internal/session"
	"helowrite.dev/helowrite/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "helowrite [file]",
		Short: "HeloWrite is a minimal terminal editor for markdown notes",
		Long: `HeloWrite is a minimal terminal editor for markdown notes.

Open a file to edit it. Ctrl+S saves, Alt+G commits and pushes the file,
Alt+H pulls remote changes, F5 lists recent files, Ctrl+Q quits.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore()

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else if store.OpenLastFile() {
				path = store.LastFilePath()
			}
			if path == "" {
				return fmt.Errorf("%w; pass a file argument or enable open_last_file", helowriteerrors.ErrNoFileOpen)
			}

			return openEditor(store, path)
		},
	}

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newRecentCmd())
	rootCmd.AddCommand(newDailyCmd())

	return rootCmd
}

// openEditor opens the editor on path and blocks until the user quits. The
// application log lives next to the config file; the TUI owns the terminal
// while it runs, so console output is muted for the duration.
func openEditor(store *config.Store, path string) error {
	splog, err := output.NewSplogWithFile(filepath.Join(store.Dir(), "helowrite.log"))
	if err != nil {
		splog = output.NewSplog()
	}
	defer splog.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	doc, content, err := session.Open(abs)
	if err != nil {
		splog.Error("failed to open %s: %v", path, err)
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	splog.Debug("opening %s", abs)
	splog.SetQuiet(true)

	syncer := gitsync.NewSyncer(gitsync.DefaultLogPath(store))
	runErr := tui.Run(store, syncer, doc, content)

	splog.SetQuiet(false)
	if runErr != nil {
		splog.Error("editor exited with error: %v", runErr)
	}
	return runErr
}
