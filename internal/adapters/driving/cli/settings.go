package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Setting keys accepted by "settings set".
const (
	keyDataDir       = "storage.data_dir"
	keyShowImages    = "ui.show_images"
	keyConfirmDelete = "ui.confirm_delete"
)

var settingKeys = []string{keyDataDir, keyShowImages, keyConfirmDelete}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.basket/config.toml.

Keys:
  storage.data_dir   directory holding the database (empty for the default)
  ui.show_images     show image markers in the list (true/false)
  ui.confirm_delete  ask before "item remove" on a terminal (true/false)`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("getting settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	dir := settings.Storage.DataDir
	if dir == "" {
		dir = "(default)"
	}
	cmd.Printf("  Data dir: %s\n", dir)
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Show images: %s\n", yesNo(settings.UI.ShowImages))
	cmd.Printf("  Confirm delete: %s\n", yesNo(settings.UI.ConfirmDelete))

	if configPath != "" {
		cmd.Println()
		cmd.Printf("Config file: %s\n", configPath)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	switch key {
	case keyDataDir:
		if err := settingsService.SetDataDir(value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	case keyShowImages, keyConfirmDelete:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: expected true or false", value, key)
		}
		if key == keyShowImages {
			err = settingsService.SetShowImages(b)
		} else {
			err = settingsService.SetConfirmDelete(b)
		}
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	default:
		return fmt.Errorf("unknown setting %q (valid keys: %s)", key, strings.Join(settingKeys, ", "))
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
