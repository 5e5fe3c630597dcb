package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"helowrite.dev/helowrite/internal/config"
)

// newRecentCmd creates the recent command
func newRecentCmd() *cobra.Command {
	var listOnly bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Pick a recently edited file and open it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := config.NewStore()
			files := store.RecentFiles()
			if len(files) == 0 {
				return fmt.Errorf("no recent files")
			}

			if listOnly {
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}

			var choice string
			prompt := &survey.Select{
				Message: "Open recent file:",
				Options: files,
			}
			if err := survey.AskOne(prompt, &choice); err != nil {
				return err
			}

			return openEditor(store, choice)
		},
	}

	cmd.Flags().BoolVar(&listOnly, "list", false, "print the recent files without opening one")

	return cmd
}
