package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"helowrite.dev/helowrite/internal/config"
	"helowrite.dev/helowrite/internal/output"
)

// configKey binds a settings key name to its typed accessor pair.
type configKey struct {
	name string
	get  func(*config.Store) string
	set  func(*config.Store, string) error
}

func boolKey(name string, get func(*config.Store) bool, set func(*config.Store, bool) error) configKey {
	return configKey{
		name: name,
		get: func(s *config.Store) string {
			if get(s) {
				return "1"
			}
			return "0"
		},
		set: func(s *config.Store, value string) error {
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %q (want 1/0 or true/false)", name, value)
			}
			return set(s, enabled)
		},
	}
}

func intKey(name string, get func(*config.Store) int, set func(*config.Store, int) error) configKey {
	return configKey{
		name: name,
		get:  func(s *config.Store) string { return strconv.Itoa(get(s)) },
		set: func(s *config.Store, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %q (want an integer)", name, value)
			}
			return set(s, n)
		},
	}
}

func stringKey(name string, get func(*config.Store) string, set func(*config.Store, string) error) configKey {
	return configKey{name: name, get: get, set: set}
}

// configKeys is the full set of keys the config command exposes, in display
// order.
func configKeys() []configKey {
	return []configKey{
		stringKey("theme", (*config.Store).Theme, (*config.Store).SetTheme),
		intKey("editor_width", (*config.Store).EditorWidth, (*config.Store).SetEditorWidth),
		stringKey("cursor_color", (*config.Store).CursorColor, (*config.Store).SetCursorColor),
		intKey("bottom_padding", (*config.Store).BottomPadding, (*config.Store).SetBottomPadding),
		intKey("distraction_top_padding", (*config.Store).DistractionTopPadding, (*config.Store).SetDistractionTopPadding),
		boolKey("auto_save_enabled", (*config.Store).AutoSaveEnabled, (*config.Store).SetAutoSaveEnabled),
		intKey("auto_save_interval", (*config.Store).AutoSaveInterval, (*config.Store).SetAutoSaveInterval),
		boolKey("scrollbar_enabled", (*config.Store).ScrollbarEnabled, (*config.Store).SetScrollbarEnabled),
		boolKey("distraction_free", (*config.Store).DistractionFree, (*config.Store).SetDistractionFree),
		boolKey("show_word_count_distraction_free", (*config.Store).ShowWordCountDistractionFree, (*config.Store).SetShowWordCountDistractionFree),
		boolKey("space_between_paragraphs", (*config.Store).SpaceBetweenParagraphs, (*config.Store).SetSpaceBetweenParagraphs),
		boolKey("open_last_file", (*config.Store).OpenLastFile, (*config.Store).SetOpenLastFile),
		stringKey("obsidian_vault_path", (*config.Store).ObsidianVaultPath, (*config.Store).SetObsidianVaultPath),
	}
}

func lookupConfigKey(name string) (configKey, bool) {
	for _, k := range configKeys() {
		if k.name == name {
			return k, true
		}
	}
	return configKey{}, false
}

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set editor configuration",
		Long: `Get and set editor configuration values.

Examples:
  helowrite config list
  helowrite config get theme
  helowrite config set theme helowrite-light
  helowrite config set auto_save_enabled 1`,
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigListCmd())

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := lookupConfigKey(args[0])
			if !ok {
				return fmt.Errorf("unknown configuration key: %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.get(config.NewStore()))
			return nil
		},
	}
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := lookupConfigKey(args[0])
			if !ok {
				return fmt.Errorf("unknown configuration key: %s", args[0])
			}
			if err := key.set(config.NewStore(), args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.StyleSuccess(fmt.Sprintf("%s = %s", args[0], args[1])))
			return nil
		},
	}
}

// newConfigListCmd creates the config list command
func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := config.NewStore()
			for _, key := range configKeys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key.name, key.get(store))
			}
			return nil
		},
	}
}
