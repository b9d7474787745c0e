package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/platform/tui"
	"github.com/vovakirdan/arcade-engine/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to pick the starting
level and Enter to play. After a game ends, Esc returns to the menu.
Tab opens the settlement history.

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --player alice`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open profile database: %w", err)
	}
	defer store.Close()

	e := localEngine(store, logger)
	return tui.RunMenu(cmd.Context(), e, store, settings.Player)
}
