package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagTheme         string
	flagResetTutorial bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show the persisted settings, or change them.

Themes:
  system - follow the terminal background
  dark   - bright colors for dark terminals
  light  - deep colors for light terminals

Examples:
  flappy settings
  flappy settings --theme dark
  flappy settings --reset-tutorial`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: system, dark, light")
	settingsCmd.Flags().BoolVar(&flagResetTutorial, "reset-tutorial", false, "Show the how-to-play overlay again on next start")
}

func runSettings(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	settings, err := store.LoadSettings()
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("theme") {
		theme, err := config.ParseTheme(flagTheme)
		if err != nil {
			return err
		}
		settings.Theme = theme
		changed = true
	}
	if flagResetTutorial {
		settings.TutorialCompleted = false
		changed = true
	}

	if changed {
		if err := store.SaveSettings(settings); err != nil {
			return err
		}
	}

	fmt.Printf("theme:              %s\n", settings.Theme)
	fmt.Printf("tutorial completed: %t\n", settings.TutorialCompleted)
	return nil
}
